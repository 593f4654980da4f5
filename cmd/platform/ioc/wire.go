//go:build wireinject

package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/api/web"
	"gitee.com/aquaflow/purifier-notify/internal/ioc"
	"gitee.com/aquaflow/purifier-notify/internal/repository"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
	"gitee.com/aquaflow/purifier-notify/internal/service/dispatcher"
	"gitee.com/aquaflow/purifier-notify/internal/service/producer"
	"gitee.com/aquaflow/purifier-notify/internal/service/resolver"
	"github.com/google/wire"
)

var (
	baseSet = wire.NewSet(
		ioc.InitDB,
		ioc.InitRedisClient,
		ioc.InitDistributedLock,
		ioc.InitIDGenerator,
		ioc.InitKafkaProducer,
	)
	queueSet = wire.NewSet(
		dao.NewDeliveryJobDAO,
		ioc.InitDeadLetterHook,
		ioc.InitRetryStrategy,
		ioc.InitQueue,
	)
	ledgerSet = wire.NewSet(
		dao.NewNotificationDAO,
		repository.NewNotificationRepository,
	)
	contactSet = wire.NewSet(
		dao.NewUserContactDAO,
		ioc.InitContactRepository,
		resolver.NewResolver,
	)
	readingSet = wire.NewSet(
		dao.NewTDSReadingDAO,
		repository.NewTDSReadingRepository,
	)
	dispatchSet = wire.NewSet(
		ioc.InitChannelSender,
		ioc.InitDispatcher,
		dispatcher.NewRequeueStuckTask,
	)
	producerSet = wire.NewSet(
		producer.NewService,
		newUserDirectory,
		ioc.InitAlertNotifier,
	)
)

func InitAppWire() *App {
	wire.Build(
		baseSet,
		queueSet,
		ledgerSet,
		contactSet,
		readingSet,
		dispatchSet,
		producerSet,

		web.NewHandler,
		ioc.InitWebServer,
		ioc.InitTasks,
		wire.Struct(new(App), "*"),
	)
	return new(App)
}
