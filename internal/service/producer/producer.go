package producer

import (
	"context"
	"sync"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/queue"
	"gitee.com/aquaflow/purifier-notify/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// defaultFanOutConcurrency 广播/批量入队时的并发上限
const defaultFanOutConcurrency = 16

// UserDirectory 广播时提供全量用户ID
type UserDirectory interface {
	ListAllUserIDs(ctx context.Context) ([]int64, error)
}

// Command 一次通知投递的入队命令
type Command struct {
	Channel     domain.Channel
	UserID      int64
	Title       string
	Message     string
	Delay       time.Duration
	MaxAttempts int32
}

// Result 入队结果，JobID 同时是台账记录ID
type Result struct {
	UserID int64
	JobID  uint64
}

// Service 通知生产方入口：入队并落台账
type Service interface {
	// EnqueueOne 为单个用户入队一条通知
	EnqueueOne(ctx context.Context, cmd Command) (Result, error)
	// EnqueueMany 批量入队，部分失败时返回成功部分和聚合错误
	EnqueueMany(ctx context.Context, cmds []Command) ([]Result, error)
	// EnqueueAll 向全量用户广播同一条通知
	EnqueueAll(ctx context.Context, cmd Command) ([]Result, error)
}

type service struct {
	queue     queue.Queue
	ledger    repository.NotificationRepository
	directory UserDirectory
	logger    *elog.Component
}

func NewService(q queue.Queue, ledger repository.NotificationRepository, directory UserDirectory) Service {
	return &service{
		queue:     q,
		ledger:    ledger,
		directory: directory,
		logger:    elog.DefaultLogger,
	}
}

func (s *service) EnqueueOne(ctx context.Context, cmd Command) (Result, error) {
	job := domain.DeliveryJob{
		Channel:         cmd.Channel,
		RecipientUserID: cmd.UserID,
		Title:           cmd.Title,
		Message:         cmd.Message,
	}
	id, err := s.queue.Enqueue(ctx, job, queue.Options{
		Delay:       cmd.Delay,
		MaxAttempts: cmd.MaxAttempts,
	})
	if err != nil {
		return Result{}, err
	}

	// 台账与任务共用同一个ID。台账写失败不回滚任务，
	// 投递照常进行，只是历史查询少一条记录
	_, err = s.ledger.Create(ctx, domain.Notification{
		ID:      id,
		UserID:  cmd.UserID,
		Channel: cmd.Channel,
		Message: cmd.Message,
		Status:  domain.SendStatusPending,
	})
	if err != nil {
		s.logger.Error("写通知台账失败",
			elog.Any("jobID", id),
			elog.Int64("userID", cmd.UserID),
			elog.FieldErr(err))
	}
	return Result{UserID: cmd.UserID, JobID: id}, nil
}

func (s *service) EnqueueMany(ctx context.Context, cmds []Command) ([]Result, error) {
	if len(cmds) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(cmds))
		errList *multierror.Error
	)
	var eg errgroup.Group
	eg.SetLimit(defaultFanOutConcurrency)
	for i := range cmds {
		cmd := cmds[i]
		eg.Go(func() error {
			res, err := s.EnqueueOne(ctx, cmd)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// 收齐所有错误，不因单个失败中断其余入队
				errList = multierror.Append(errList, err)
				return nil
			}
			results = append(results, res)
			return nil
		})
	}
	_ = eg.Wait()
	return results, errList.ErrorOrNil()
}

func (s *service) EnqueueAll(ctx context.Context, cmd Command) ([]Result, error) {
	userIDs, err := s.directory.ListAllUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	cmds := make([]Command, 0, len(userIDs))
	for _, uid := range userIDs {
		c := cmd
		c.UserID = uid
		cmds = append(cmds, c)
	}
	return s.EnqueueMany(ctx, cmds)
}
