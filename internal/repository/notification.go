package repository

import (
	"context"
	"database/sql"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// NotificationRepository 通知台账仓库
type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) (domain.Notification, error)
	GetByID(ctx context.Context, id uint64) (domain.Notification, error)
	ListByUserID(ctx context.Context, userID int64, offset, limit int) ([]domain.Notification, error)
	MarkSent(ctx context.Context, id uint64, sentAt time.Time) error
	MarkFailed(ctx context.Context, id uint64) error
}

type notificationRepository struct {
	dao dao.NotificationDAO
}

func NewNotificationRepository(d dao.NotificationDAO) NotificationRepository {
	return &notificationRepository{dao: d}
}

func (r *notificationRepository) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	created, err := r.dao.Create(ctx, r.toEntity(notification))
	if err != nil {
		return domain.Notification{}, err
	}
	return r.toDomain(created), nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint64) (domain.Notification, error) {
	entity, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Notification{}, err
	}
	return r.toDomain(entity), nil
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID int64, offset, limit int) ([]domain.Notification, error) {
	entities, err := r.dao.ListByUserID(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(_ int, src dao.Notification) domain.Notification {
		return r.toDomain(src)
	}), nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uint64, sentAt time.Time) error {
	return r.dao.MarkSent(ctx, id, sentAt.UnixMilli())
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.dao.MarkFailed(ctx, id)
}

func (r *notificationRepository) toEntity(n domain.Notification) dao.Notification {
	return dao.Notification{
		ID:      n.ID,
		UserID:  n.UserID,
		Channel: n.Channel.String(),
		Message: n.Message,
		Status:  n.Status.String(),
		SentAt: sql.NullInt64{
			Int64: n.SentAt.UnixMilli(),
			Valid: !n.SentAt.IsZero(),
		},
	}
}

func (r *notificationRepository) toDomain(n dao.Notification) domain.Notification {
	var sentAt time.Time
	if n.SentAt.Valid {
		sentAt = time.UnixMilli(n.SentAt.Int64)
	}
	return domain.Notification{
		ID:      n.ID,
		UserID:  n.UserID,
		Channel: domain.Channel(n.Channel),
		Message: n.Message,
		Status:  domain.SendStatus(n.Status),
		SentAt:  sentAt,
		Ctime:   n.Ctime,
		Utime:   n.Utime,
	}
}
