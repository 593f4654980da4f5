package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"gitee.com/aquaflow/purifier-notify/internal/queue"
	"gitee.com/aquaflow/purifier-notify/internal/repository"
	"gitee.com/aquaflow/purifier-notify/internal/service/channel"
	"gitee.com/aquaflow/purifier-notify/internal/service/resolver"
	"github.com/gotomicro/ego/core/elog"
)

type Config struct {
	// Workers 并发 worker 数
	Workers int `json:"workers" yaml:"workers"`
	// SendTimeout 单次投递的超时
	SendTimeout time.Duration `json:"sendTimeout" yaml:"sendTimeout"`
	// PollInterval 队列为空时的轮询间隔
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval"`
}

// Dispatcher 投递调度器：worker 池持续认领到期任务，
// 解析地址后经渠道适配器投递，按结果回写队列与台账
type Dispatcher struct {
	queue    queue.Queue
	resolver resolver.Resolver
	sender   channel.Adapter
	ledger   repository.NotificationRepository
	cfg      Config
	logger   *elog.Component
}

func NewDispatcher(
	q queue.Queue,
	r resolver.Resolver,
	sender channel.Adapter,
	ledger repository.NotificationRepository,
	cfg Config,
) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Dispatcher{
		queue:    q,
		resolver: r,
		sender:   sender,
		ledger:   ledger,
		cfg:      cfg,
		logger:   elog.DefaultLogger,
	}
}

// Start 启动 worker 池，阻塞到 ctx 取消且所有 worker 退出
func (d *Dispatcher) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < d.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.workerLoop(ctx)
		}()
	}
	wg.Wait()
}

func (d *Dispatcher) workerLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		job, err := d.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, errs.ErrNoPendingJob) {
				select {
				case <-ctx.Done():
					return
				case <-time.After(d.cfg.PollInterval):
				}
				continue
			}
			d.logger.Error("认领任务失败", elog.FieldErr(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(d.cfg.PollInterval):
			}
			continue
		}
		d.process(ctx, job)
	}
}

// process 处理单个任务。worker 崩溃不能拖垮整个池，
// panic 统一按一次可重试失败上报
func (d *Dispatcher) process(ctx context.Context, job domain.DeliveryJob) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("投递任务panic",
				elog.Any("jobID", job.ID),
				elog.Any("panic", r))
			d.nack(ctx, job, fmt.Errorf("%w: panic: %v", errs.ErrSendNotificationFailed, r))
		}
	}()

	target, err := d.resolver.Resolve(ctx, job.RecipientUserID, job.Channel)
	if err != nil {
		d.nack(ctx, job, err)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()
	receipt, err := d.sender.Send(sendCtx, channel.Delivery{
		JobID:   job.ID,
		Channel: job.Channel,
		Target:  target,
		Title:   job.Title,
		Message: job.Message,
	})
	if err != nil {
		d.nack(ctx, job, err)
		return
	}

	if err = d.queue.Ack(ctx, job.ID); err != nil {
		// Ack 失败任务会被补偿任务重新投递，至少一次语义允许重复
		d.logger.Error("确认任务失败", elog.Any("jobID", job.ID), elog.FieldErr(err))
		return
	}
	if err = d.ledger.MarkSent(ctx, job.ID, time.Now()); err != nil {
		d.logger.Error("更新台账为成功失败", elog.Any("jobID", job.ID), elog.FieldErr(err))
	}
	d.logger.Info("投递成功",
		elog.Any("jobID", job.ID),
		elog.String("channel", job.Channel.String()),
		elog.String("providerMessageID", receipt.ProviderMessageID))
}

func (d *Dispatcher) nack(ctx context.Context, job domain.DeliveryJob, cause error) {
	status, err := d.queue.Nack(ctx, job, cause)
	if err != nil {
		d.logger.Error("上报任务失败状态失败", elog.Any("jobID", job.ID), elog.FieldErr(err))
		return
	}
	d.logger.Warn("投递失败",
		elog.Any("jobID", job.ID),
		elog.String("channel", job.Channel.String()),
		elog.String("status", status.String()),
		elog.FieldErr(cause))
	// 只有进入终态才同步台账，重试中的任务台账保持 PENDING
	if status == domain.JobStatusDead {
		if err = d.ledger.MarkFailed(ctx, job.ID); err != nil {
			d.logger.Error("更新台账为失败失败", elog.Any("jobID", job.ID), elog.FieldErr(err))
		}
	}
}
