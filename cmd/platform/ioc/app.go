package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/api/web"
	"gitee.com/aquaflow/purifier-notify/internal/ioc"
	"gitee.com/aquaflow/purifier-notify/internal/repository"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
	"gitee.com/aquaflow/purifier-notify/internal/service/dispatcher"
	"gitee.com/aquaflow/purifier-notify/internal/service/producer"
	"gitee.com/aquaflow/purifier-notify/internal/service/resolver"
	"github.com/gotomicro/ego/server/egin"
)

type App struct {
	Web   *egin.Component
	Tasks []ioc.Task
}

func newUserDirectory(repo repository.ContactRepository) producer.UserDirectory {
	return repo
}

// InitApp 手工组装。依赖关系与 wire.go 里的声明保持一致
func InitApp() *App {
	db := ioc.InitDB()
	rdb := ioc.InitRedisClient()
	dclient := ioc.InitDistributedLock(rdb)
	gen := ioc.InitIDGenerator()
	kafkaProducer := ioc.InitKafkaProducer()

	jobDAO := dao.NewDeliveryJobDAO(db)
	notificationDAO := dao.NewNotificationDAO(db)
	contactDAO := dao.NewUserContactDAO(db)
	readingDAO := dao.NewTDSReadingDAO(db)

	ledgerRepo := repository.NewNotificationRepository(notificationDAO)
	contactRepo := ioc.InitContactRepository(contactDAO, rdb)
	readingRepo := repository.NewTDSReadingRepository(readingDAO)

	hook := ioc.InitDeadLetterHook(kafkaProducer)
	strategy := ioc.InitRetryStrategy()
	q := ioc.InitQueue(jobDAO, gen, strategy, hook)

	producerSvc := producer.NewService(q, ledgerRepo, newUserDirectory(contactRepo))
	sender := ioc.InitChannelSender()
	r := resolver.NewResolver(contactRepo)
	d := ioc.InitDispatcher(q, r, sender, ledgerRepo)
	requeueTask := dispatcher.NewRequeueStuckTask(dclient, jobDAO)

	notifier := ioc.InitAlertNotifier(producerSvc)
	handler := web.NewHandler(producerSvc, ledgerRepo, readingRepo, notifier, gen)

	return &App{
		Web:   ioc.InitWebServer(handler),
		Tasks: ioc.InitTasks(d, requeueTask),
	}
}
