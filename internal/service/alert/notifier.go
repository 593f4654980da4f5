package alert

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/service/producer"
	"github.com/gotomicro/ego/core/elog"
)

// Notifier 读数入库后的告警钩子。告警投递是尽力而为：
// 入队失败只记日志，不影响读数上报接口的结果
type Notifier struct {
	evaluator *Evaluator
	producer  producer.Service
	logger    *elog.Component
}

func NewNotifier(evaluator *Evaluator, p producer.Service) *Notifier {
	return &Notifier{
		evaluator: evaluator,
		producer:  p,
		logger:    elog.DefaultLogger,
	}
}

func (n *Notifier) OnReadingRecorded(ctx context.Context, reading domain.TDSReading) {
	cmds := n.evaluator.Evaluate(reading)
	if len(cmds) == 0 {
		return
	}
	results, err := n.producer.EnqueueMany(ctx, cmds)
	if err != nil {
		n.logger.Error("水质告警入队失败",
			elog.Int64("userID", reading.UserID),
			elog.String("deviceID", reading.DeviceID),
			elog.Any("value", reading.Value),
			elog.FieldErr(err))
	}
	n.logger.Info("触发水质告警",
		elog.Int64("userID", reading.UserID),
		elog.String("deviceID", reading.DeviceID),
		elog.Any("value", reading.Value),
		elog.Any("enqueued", len(results)))
}
