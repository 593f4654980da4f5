package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/event/deadletter"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/idgen"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/retry"
	"gitee.com/aquaflow/purifier-notify/internal/queue"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
	"github.com/gotomicro/ego/core/econf"
)

func InitRetryStrategy() retry.Strategy {
	var cfg retry.Config
	if err := econf.UnmarshalKey("queue.retry", &cfg); err != nil {
		panic(err)
	}
	strategy, err := retry.NewStrategy(cfg)
	if err != nil {
		panic(err)
	}
	return strategy
}

func InitQueue(
	d dao.DeliveryJobDAO,
	gen *idgen.Generator,
	strategy retry.Strategy,
	hook *deadletter.QueueHook,
) queue.Queue {
	return queue.NewMySQLQueue(d, gen, strategy, hook)
}
