package queue

import (
	"context"
	"fmt"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/idgen"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/retry"
	"gitee.com/aquaflow/purifier-notify/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

// mysqlQueue 以 MySQL 任务表为载体的队列实现，
// 依赖 ClaimReady 的 CAS 认领保证并发 worker 间互斥
type mysqlQueue struct {
	dao      dao.DeliveryJobDAO
	idgen    *idgen.Generator
	strategy retry.Strategy
	hook     DeadLetterHandler
	logger   *elog.Component
}

func NewMySQLQueue(d dao.DeliveryJobDAO, gen *idgen.Generator, strategy retry.Strategy, hook DeadLetterHandler) Queue {
	return &mysqlQueue{
		dao:      d,
		idgen:    gen,
		strategy: strategy,
		hook:     hook,
		logger:   elog.DefaultLogger,
	}
}

func (q *mysqlQueue) Enqueue(ctx context.Context, job domain.DeliveryJob, opts Options) (uint64, error) {
	if err := job.Validate(); err != nil {
		return 0, err
	}

	id, err := q.idgen.NextID()
	if err != nil {
		return 0, err
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultMaxAttempts
	}

	now := time.Now()
	entity := dao.DeliveryJob{
		ID:              id,
		Channel:         job.Channel.String(),
		RecipientUserID: job.RecipientUserID,
		Title:           job.Title,
		Message:         job.Message,
		MaxAttempts:     maxAttempts,
		Status:          domain.JobStatusPending.String(),
		NextAttemptAt:   now.Add(opts.Delay).UnixMilli(),
	}
	if _, err = q.dao.Create(ctx, entity); err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrQueueUnavailable, err)
	}
	return id, nil
}

func (q *mysqlQueue) Dequeue(ctx context.Context) (domain.DeliveryJob, error) {
	entity, err := q.dao.ClaimReady(ctx)
	if err != nil {
		return domain.DeliveryJob{}, err
	}
	return q.toDomain(entity), nil
}

func (q *mysqlQueue) Ack(ctx context.Context, id uint64) error {
	return q.dao.MarkDelivered(ctx, id)
}

func (q *mysqlQueue) Nack(ctx context.Context, job domain.DeliveryJob, cause error) (domain.JobStatus, error) {
	attempt := job.Attempt + 1

	if errs.IsNonRetryable(cause) || attempt >= job.MaxAttempts {
		if err := q.dao.MarkDead(ctx, job.ID, attempt); err != nil {
			return "", err
		}
		q.fireDeadLetter(ctx, job, attempt, cause)
		return domain.JobStatusDead, nil
	}

	nextAttemptAt := time.Now().Add(q.strategy.Interval(attempt))
	if err := q.dao.MarkFailedForRetry(ctx, job.ID, attempt, nextAttemptAt.UnixMilli()); err != nil {
		return "", err
	}
	return domain.JobStatusFailed, nil
}

func (q *mysqlQueue) fireDeadLetter(ctx context.Context, job domain.DeliveryJob, attempt int32, cause error) {
	if q.hook == nil {
		return
	}
	job.Attempt = attempt
	job.Status = domain.JobStatusDead
	q.hook.OnDeadLetter(ctx, job, cause)
}

func (q *mysqlQueue) toDomain(e dao.DeliveryJob) domain.DeliveryJob {
	return domain.DeliveryJob{
		ID:              e.ID,
		Channel:         domain.Channel(e.Channel),
		RecipientUserID: e.RecipientUserID,
		Title:           e.Title,
		Message:         e.Message,
		Attempt:         e.Attempt,
		MaxAttempts:     e.MaxAttempts,
		Status:          domain.JobStatus(e.Status),
		CreatedAt:       time.UnixMilli(e.Ctime),
		NextAttemptAt:   time.UnixMilli(e.NextAttemptAt),
	}
}
