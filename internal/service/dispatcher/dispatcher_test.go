package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/retry"
	"gitee.com/aquaflow/purifier-notify/internal/queue"
	"gitee.com/aquaflow/purifier-notify/internal/service/channel"
	"gitee.com/aquaflow/purifier-notify/internal/service/producer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	targets map[int64]string
}

func (f *fakeResolver) Resolve(_ context.Context, userID int64, _ domain.Channel) (string, error) {
	target, ok := f.targets[userID]
	if !ok {
		return "", fmt.Errorf("%w: userID=%d", errs.ErrRecipientAddressMissing, userID)
	}
	return target, nil
}

// scriptedAdapter 按预设脚本依次返回错误，脚本耗尽后一直成功
type scriptedAdapter struct {
	mu     sync.Mutex
	script []error
	calls  int
}

func (a *scriptedAdapter) Send(_ context.Context, _ channel.Delivery) (channel.Receipt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if len(a.script) > 0 {
		err := a.script[0]
		a.script = a.script[1:]
		if err != nil {
			return channel.Receipt{}, err
		}
	}
	return channel.Receipt{ProviderMessageID: "msg-ok"}, nil
}

type memLedger struct {
	mu      sync.Mutex
	status  map[uint64]domain.SendStatus
	sentAt  map[uint64]time.Time
	created map[uint64]domain.Notification
}

func newMemLedger() *memLedger {
	return &memLedger{
		status:  make(map[uint64]domain.SendStatus),
		sentAt:  make(map[uint64]time.Time),
		created: make(map[uint64]domain.Notification),
	}
}

func (l *memLedger) Create(_ context.Context, n domain.Notification) (domain.Notification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.created[n.ID] = n
	l.status[n.ID] = n.Status
	return n, nil
}

func (l *memLedger) GetByID(_ context.Context, id uint64) (domain.Notification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n, ok := l.created[id]
	if !ok {
		return domain.Notification{}, errs.ErrNotificationNotFound
	}
	n.Status = l.status[id]
	n.SentAt = l.sentAt[id]
	return n, nil
}

func (l *memLedger) ListByUserID(_ context.Context, _ int64, _, _ int) ([]domain.Notification, error) {
	return nil, nil
}

func (l *memLedger) MarkSent(_ context.Context, id uint64, sentAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status[id] = domain.SendStatusSent
	l.sentAt[id] = sentAt
	return nil
}

func (l *memLedger) MarkFailed(_ context.Context, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status[id] = domain.SendStatusFailed
	return nil
}

func (l *memLedger) statusOf(id uint64) domain.SendStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status[id]
}

// drain 同步跑空队列，到期任务全部 process 一轮
func drain(ctx context.Context, t *testing.T, d *Dispatcher, q queue.Queue) {
	t.Helper()
	for {
		job, err := q.Dequeue(ctx)
		if errors.Is(err, errs.ErrNoPendingJob) {
			return
		}
		require.NoError(t, err)
		d.process(ctx, job)
	}
}

func setup(adapter channel.Adapter) (*Dispatcher, queue.Queue, *memLedger) {
	// 退避间隔为0，失败任务立即重新可投递，方便同步驱动
	q := queue.NewMemoryQueue(retry.NewFixedIntervalStrategy(0), nil)
	ledger := newMemLedger()
	r := &fakeResolver{targets: map[int64]string{100: "user@example.com"}}
	d := NewDispatcher(q, r, adapter, ledger, Config{Workers: 1})
	return d, q, ledger
}

func enqueue(ctx context.Context, t *testing.T, q queue.Queue, ledger *memLedger, userID int64) uint64 {
	t.Helper()
	id, err := q.Enqueue(ctx, domain.DeliveryJob{
		Channel:         domain.ChannelEmail,
		RecipientUserID: userID,
		Title:           "滤芯提醒",
		Message:         "请更换滤芯",
	}, queue.Options{MaxAttempts: 3})
	require.NoError(t, err)
	_, err = ledger.Create(ctx, domain.Notification{
		ID:     id,
		UserID: userID,
		Status: domain.SendStatusPending,
	})
	require.NoError(t, err)
	return id
}

func TestDispatcher_SuccessMarksLedgerSent(t *testing.T) {
	t.Parallel()
	adapter := &scriptedAdapter{}
	d, q, ledger := setup(adapter)
	ctx := t.Context()

	id := enqueue(ctx, t, q, ledger, 100)
	drain(ctx, t, d, q)

	assert.Equal(t, 1, adapter.calls)
	n, err := ledger.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.SendStatusSent, n.Status)
	assert.False(t, n.SentAt.IsZero())
}

func TestDispatcher_TransientFailuresThenSuccess(t *testing.T) {
	t.Parallel()
	adapter := &scriptedAdapter{script: []error{
		errs.ErrProviderTransient,
		errs.ErrProviderTransient,
	}}
	d, q, ledger := setup(adapter)
	ctx := t.Context()

	id := enqueue(ctx, t, q, ledger, 100)
	// 前两轮失败，任务回到队列
	drain(ctx, t, d, q)
	drain(ctx, t, d, q)
	assert.Equal(t, domain.SendStatusPending, ledger.statusOf(id))
	// 第三轮成功
	drain(ctx, t, d, q)

	assert.Equal(t, 3, adapter.calls)
	assert.Equal(t, domain.SendStatusSent, ledger.statusOf(id))
}

func TestDispatcher_ExhaustedRetriesMarksDead(t *testing.T) {
	t.Parallel()
	adapter := &scriptedAdapter{script: []error{
		errs.ErrProviderTransient,
		errs.ErrProviderTransient,
		errs.ErrProviderTransient,
		errs.ErrProviderTransient, // 不应被用到
	}}
	d, q, ledger := setup(adapter)
	ctx := t.Context()

	id := enqueue(ctx, t, q, ledger, 100)
	for i := 0; i < 5; i++ {
		drain(ctx, t, d, q)
	}

	// 恰好尝试 MaxAttempts 次后进入 DEAD，不再投递
	assert.Equal(t, 3, adapter.calls)
	assert.Equal(t, domain.SendStatusFailed, ledger.statusOf(id))
}

func TestDispatcher_AddressMissingDeadOnFirstAttempt(t *testing.T) {
	t.Parallel()
	adapter := &scriptedAdapter{}
	d, q, ledger := setup(adapter)
	ctx := t.Context()

	// 用户200没有任何联系方式
	id := enqueue(ctx, t, q, ledger, 200)
	drain(ctx, t, d, q)
	drain(ctx, t, d, q)

	// 解析失败不可重试，适配器从未被调用
	assert.Equal(t, 0, adapter.calls)
	assert.Equal(t, domain.SendStatusFailed, ledger.statusOf(id))
}

func TestDispatcher_PanicIsRecoveredAndNacked(t *testing.T) {
	t.Parallel()
	adapter := &panicAdapter{}
	d, q, ledger := setup(adapter)
	ctx := t.Context()

	id := enqueue(ctx, t, q, ledger, 100)
	for i := 0; i < 5; i++ {
		drain(ctx, t, d, q)
	}

	// panic 按可重试失败处理，重试耗尽后进入终态
	assert.Equal(t, domain.SendStatusFailed, ledger.statusOf(id))
}

type panicAdapter struct{}

func (a *panicAdapter) Send(_ context.Context, _ channel.Delivery) (channel.Receipt, error) {
	panic("供应商SDK内部异常")
}

// blockingAdapter 模拟挂死的供应商：Send 一直阻塞到被放行或 ctx 取消
type blockingAdapter struct {
	started   chan struct{}
	release   chan struct{}
	startOnce sync.Once
}

func newBlockingAdapter() *blockingAdapter {
	return &blockingAdapter{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (a *blockingAdapter) Send(ctx context.Context, _ channel.Delivery) (channel.Receipt, error) {
	a.startOnce.Do(func() { close(a.started) })
	select {
	case <-a.release:
		return channel.Receipt{ProviderMessageID: "msg-ok"}, nil
	case <-ctx.Done():
		return channel.Receipt{}, fmt.Errorf("%w: %w", errs.ErrProviderTransient, ctx.Err())
	}
}

func TestDispatcher_BlockedWorkerDoesNotBlockEnqueue(t *testing.T) {
	t.Parallel()
	adapter := newBlockingAdapter()
	q := queue.NewMemoryQueue(retry.NewFixedIntervalStrategy(0), nil)
	ledger := newMemLedger()
	r := &fakeResolver{targets: map[int64]string{100: "user@example.com"}}
	d := NewDispatcher(q, r, adapter, ledger, Config{Workers: 1, PollInterval: 10 * time.Millisecond})
	svc := producer.NewService(q, ledger, nil)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go d.Start(ctx)

	// 第一条任务把唯一的 worker 卡在供应商调用上
	_, err := svc.EnqueueOne(ctx, producer.Command{
		Channel: domain.ChannelEmail,
		UserID:  100,
		Title:   "滤芯提醒",
		Message: "请更换滤芯",
	})
	require.NoError(t, err)
	select {
	case <-adapter.started:
	case <-time.After(5 * time.Second):
		t.Fatal("worker 没有认领任务")
	}

	// 投递端挂死时，生产端入队必须立刻返回
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, eerr := svc.EnqueueOne(ctx, producer.Command{
			Channel: domain.ChannelEmail,
			UserID:  100,
			Title:   "滤芯提醒",
			Message: "请更换滤芯",
		})
		assert.NoError(t, eerr)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker 阻塞时入队被拖住了")
	}
	close(adapter.release)
}
