package dispatcher

import (
	"context"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/pkg/loopjob"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

// RequeueStuckTask 补偿任务：把认领后长时间停留在 PROCESSING 的任务
// 重新置为 PENDING。worker 崩溃或 Ack 丢失时靠它兜底，保证至少一次投递
type RequeueStuckTask struct {
	dclient      dlock.Client
	dao          dao.DeliveryJobDAO
	batchSize    int
	stuckTimeout time.Duration
	logger       *elog.Component
}

func NewRequeueStuckTask(dclient dlock.Client, d dao.DeliveryJobDAO) *RequeueStuckTask {
	return &RequeueStuckTask{
		dclient:      dclient,
		dao:          d,
		batchSize:    100,
		stuckTimeout: 3 * time.Minute,
		logger:       elog.DefaultLogger,
	}
}

func (t *RequeueStuckTask) Start(ctx context.Context) {
	lj := loopjob.NewInfiniteLoop(t.dclient, t.requeue, "purifier_notify_requeue_stuck")
	lj.Run(ctx)
}

func (t *RequeueStuckTask) requeue(ctx context.Context) error {
	loopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	before := time.Now().Add(-t.stuckTimeout).UnixMilli()
	affected, err := t.dao.RequeueStuckProcessing(loopCtx, t.batchSize, before)
	if err != nil {
		return err
	}
	if affected > 0 {
		t.logger.Warn("回收卡死任务", elog.Int64("count", affected))
	}
	if int(affected) < t.batchSize {
		// 没凑满一批说明暂时没有更多卡死任务，歇一会
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Second):
		}
	}
	return nil
}
