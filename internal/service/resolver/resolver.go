package resolver

import (
	"context"
	"fmt"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"gitee.com/aquaflow/purifier-notify/internal/repository"
)

// Resolver 把接收者用户ID解析成指定渠道的投递地址
type Resolver interface {
	Resolve(ctx context.Context, userID int64, channel domain.Channel) (string, error)
}

type resolver struct {
	repo repository.ContactRepository
}

func NewResolver(repo repository.ContactRepository) Resolver {
	return &resolver{repo: repo}
}

func (r *resolver) Resolve(ctx context.Context, userID int64, channel domain.Channel) (string, error) {
	contact, err := r.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	var target string
	switch channel {
	case domain.ChannelPush:
		target = contact.DeviceToken
	case domain.ChannelWhatsApp:
		target = contact.WhatsAppNumber
	case domain.ChannelEmail:
		target = contact.Email
	default:
		return "", fmt.Errorf("%w: channel = %q", errs.ErrInvalidParameter, channel)
	}

	if target == "" {
		return "", fmt.Errorf("%w: userID=%d channel=%s", errs.ErrRecipientAddressMissing, userID, channel)
	}
	return target, nil
}
