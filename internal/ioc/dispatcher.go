package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/queue"
	"gitee.com/aquaflow/purifier-notify/internal/repository"
	"gitee.com/aquaflow/purifier-notify/internal/service/channel"
	"gitee.com/aquaflow/purifier-notify/internal/service/dispatcher"
	"gitee.com/aquaflow/purifier-notify/internal/service/resolver"
	"github.com/gotomicro/ego/core/econf"
)

func InitDispatcher(
	q queue.Queue,
	r resolver.Resolver,
	sender channel.Adapter,
	ledger repository.NotificationRepository,
) *dispatcher.Dispatcher {
	var cfg dispatcher.Config
	if err := econf.UnmarshalKey("dispatcher", &cfg); err != nil {
		panic(err)
	}
	return dispatcher.NewDispatcher(q, r, sender, ledger, cfg)
}
