package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/repository/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{
		rdb: rdb,
	}
}

func (c *Cache) Get(ctx context.Context, userID int64) (domain.UserContact, error) {
	key := cache.ContactKey(userID)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.UserContact{}, cache.ErrKeyNotFound
		}
		return domain.UserContact{}, fmt.Errorf("failed to get contact from redis %w", err)
	}

	var contact domain.UserContact
	err = json.Unmarshal([]byte(val), &contact)
	if err != nil {
		return domain.UserContact{}, fmt.Errorf("failed to unmarshal contact data %w", err)
	}

	return contact, nil
}

func (c *Cache) Set(ctx context.Context, contact domain.UserContact) error {
	key := cache.ContactKey(contact.UserID)

	data, err := json.Marshal(contact)
	if err != nil {
		return fmt.Errorf("failed to marshal contact data %w", err)
	}

	err = c.rdb.Set(ctx, key, data, cache.DefaultExpiredTime).Err()
	if err != nil {
		return fmt.Errorf("failed to set contact to redis %w", err)
	}
	return nil
}

func (c *Cache) Del(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, cache.ContactKey(userID)).Err()
}
