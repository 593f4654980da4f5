package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
)

const (
	ContactPrefix = "contact"

	DefaultExpiredTime = 10 * time.Minute
)

var ErrKeyNotFound = errors.New("key not found")

type ContactCache interface {
	Get(ctx context.Context, userID int64) (domain.UserContact, error)
	Set(ctx context.Context, contact domain.UserContact) error
	Del(ctx context.Context, userID int64) error
}

func ContactKey(userID int64) string {
	return fmt.Sprintf("%s:%d", ContactPrefix, userID)
}
