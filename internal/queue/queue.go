package queue

import (
	"context"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
)

// Options 入队可选项
type Options struct {
	// Delay 延迟投递时长，0 表示立即可投递
	Delay time.Duration
	// MaxAttempts 重试上限，0 表示使用默认值
	MaxAttempts int32
}

// Queue 投递任务队列。至少一次语义：
// 任务被认领后若 worker 崩溃，由补偿任务重新放回队列
type Queue interface {
	// Enqueue 持久化任务并返回任务ID
	Enqueue(ctx context.Context, job domain.DeliveryJob, opts Options) (uint64, error)
	// Dequeue 认领一条到期任务，无任务时返回 errs.ErrNoPendingJob
	Dequeue(ctx context.Context) (domain.DeliveryJob, error)
	// Ack 确认任务投递成功
	Ack(ctx context.Context, id uint64) error
	// Nack 上报一次投递失败。可重试且未达上限则退避后重新可投递；
	// 否则进入 DEAD。返回任务最终落入的状态
	Nack(ctx context.Context, job domain.DeliveryJob, cause error) (domain.JobStatus, error)
}

// DeadLetterHandler 任务进入 DEAD 时的回调，用于外发死信信号。
// 回调失败不影响任务状态流转
type DeadLetterHandler interface {
	OnDeadLetter(ctx context.Context, job domain.DeliveryJob, cause error)
}
