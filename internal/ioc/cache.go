package ioc

import (
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/repository"
	localcache "gitee.com/aquaflow/purifier-notify/internal/repository/cache/local"
	rediscache "gitee.com/aquaflow/purifier-notify/internal/repository/cache/redis"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

func InitContactRepository(d dao.UserContactDAO, rdb *redis.Client) repository.ContactRepository {
	localC := localcache.NewCache(ca.New(5*time.Minute, 10*time.Minute))
	redisC := rediscache.NewCache(rdb)
	return repository.NewContactRepository(d, redisC, localC)
}
