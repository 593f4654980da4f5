package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/retry"
)

// memoryQueue 进程内队列实现，语义与 mysqlQueue 一致，供测试和本地演示使用
type memoryQueue struct {
	mu       sync.Mutex
	jobs     map[uint64]*domain.DeliveryJob
	nextID   atomic.Uint64
	strategy retry.Strategy
	hook     DeadLetterHandler
}

func NewMemoryQueue(strategy retry.Strategy, hook DeadLetterHandler) Queue {
	return &memoryQueue{
		jobs:     make(map[uint64]*domain.DeliveryJob),
		strategy: strategy,
		hook:     hook,
	}
}

func (q *memoryQueue) Enqueue(_ context.Context, job domain.DeliveryJob, opts Options) (uint64, error) {
	if err := job.Validate(); err != nil {
		return 0, err
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultMaxAttempts
	}

	now := time.Now()
	job.ID = q.nextID.Add(1)
	job.Attempt = 0
	job.MaxAttempts = maxAttempts
	job.Status = domain.JobStatusPending
	job.CreatedAt = now
	job.NextAttemptAt = now.Add(opts.Delay)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = &job
	return job.ID, nil
}

func (q *memoryQueue) Dequeue(_ context.Context) (domain.DeliveryJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	var picked *domain.DeliveryJob
	for _, j := range q.jobs {
		if j.Status != domain.JobStatusPending && j.Status != domain.JobStatusFailed {
			continue
		}
		if j.NextAttemptAt.After(now) {
			continue
		}
		if picked == nil || j.NextAttemptAt.Before(picked.NextAttemptAt) {
			picked = j
		}
	}
	if picked == nil {
		return domain.DeliveryJob{}, fmt.Errorf("%w", errs.ErrNoPendingJob)
	}
	picked.Status = domain.JobStatusProcessing
	return *picked, nil
}

func (q *memoryQueue) Ack(_ context.Context, id uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	j, ok := q.jobs[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", errs.ErrJobNotFound, id)
	}
	j.Status = domain.JobStatusDelivered
	return nil
}

func (q *memoryQueue) Nack(ctx context.Context, job domain.DeliveryJob, cause error) (domain.JobStatus, error) {
	q.mu.Lock()
	j, ok := q.jobs[job.ID]
	if !ok {
		q.mu.Unlock()
		return "", fmt.Errorf("%w: id=%d", errs.ErrJobNotFound, job.ID)
	}

	j.Attempt++
	if errs.IsNonRetryable(cause) || j.Attempt >= j.MaxAttempts {
		j.Status = domain.JobStatusDead
		dead := *j
		q.mu.Unlock()
		if q.hook != nil {
			q.hook.OnDeadLetter(ctx, dead, cause)
		}
		return domain.JobStatusDead, nil
	}

	j.Status = domain.JobStatusFailed
	j.NextAttemptAt = time.Now().Add(q.strategy.Interval(j.Attempt))
	q.mu.Unlock()
	return domain.JobStatusFailed, nil
}
