package local

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/repository/cache"
	ca "github.com/patrickmn/go-cache"
)

// Cache 进程内联系方式缓存，挡住解析热点用户时对 redis 的重复访问
type Cache struct {
	c *ca.Cache
}

func NewCache(c *ca.Cache) *Cache {
	return &Cache{c: c}
}

func (l *Cache) Get(_ context.Context, userID int64) (domain.UserContact, error) {
	key := cache.ContactKey(userID)
	v, ok := l.c.Get(key)
	if !ok {
		return domain.UserContact{}, cache.ErrKeyNotFound
	}
	return v.(domain.UserContact), nil
}

func (l *Cache) Set(_ context.Context, contact domain.UserContact) error {
	key := cache.ContactKey(contact.UserID)
	l.c.Set(key, contact, cache.DefaultExpiredTime)
	return nil
}

func (l *Cache) Del(_ context.Context, userID int64) error {
	l.c.Delete(cache.ContactKey(userID))
	return nil
}
