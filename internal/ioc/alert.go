package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/service/alert"
	"gitee.com/aquaflow/purifier-notify/internal/service/producer"
	"github.com/gotomicro/ego/core/econf"
)

func InitAlertNotifier(p producer.Service) *alert.Notifier {
	var cfg alert.Config
	if err := econf.UnmarshalKey("alert", &cfg); err != nil {
		panic(err)
	}
	return alert.NewNotifier(alert.NewEvaluator(cfg), p)
}
