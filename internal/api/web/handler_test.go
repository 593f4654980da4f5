package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/idgen"
	"gitee.com/aquaflow/purifier-notify/internal/pkg/retry"
	"gitee.com/aquaflow/purifier-notify/internal/queue"
	"gitee.com/aquaflow/purifier-notify/internal/service/alert"
	"gitee.com/aquaflow/purifier-notify/internal/service/producer"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedger struct {
	mu      sync.Mutex
	records map[uint64]domain.Notification
}

func newStubLedger() *stubLedger {
	return &stubLedger{records: make(map[uint64]domain.Notification)}
}

func (s *stubLedger) Create(_ context.Context, n domain.Notification) (domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[n.ID] = n
	return n, nil
}

func (s *stubLedger) GetByID(_ context.Context, id uint64) (domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.records[id]
	if !ok {
		return domain.Notification{}, errs.ErrNotificationNotFound
	}
	return n, nil
}

func (s *stubLedger) ListByUserID(_ context.Context, userID int64, _, _ int) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.records {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubLedger) MarkSent(_ context.Context, _ uint64, _ time.Time) error { return nil }

func (s *stubLedger) MarkFailed(_ context.Context, _ uint64) error { return nil }

func (s *stubLedger) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type stubReadings struct{}

func (s *stubReadings) Create(_ context.Context, r domain.TDSReading) (domain.TDSReading, error) {
	return r, nil
}

type stubDirectory struct {
	userIDs []int64
}

func (s *stubDirectory) ListAllUserIDs(_ context.Context) ([]int64, error) {
	return s.userIDs, nil
}

func newTestServer(t *testing.T) (*gin.Engine, *stubLedger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledger := newStubLedger()
	q := queue.NewMemoryQueue(retry.NewFixedIntervalStrategy(time.Second), nil)
	svc := producer.NewService(q, ledger, &stubDirectory{userIDs: []int64{1, 2}})
	notifier := alert.NewNotifier(alert.NewEvaluator(alert.Config{}), svc)

	handler := NewHandler(svc, ledger, &stubReadings{}, notifier, idgen.NewGenerator())
	server := gin.New()
	handler.RegisterRoutes(server)
	return server, ledger
}

func doJSON(t *testing.T, server *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_SendToUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{
			name: "合法请求返回202",
			body: map[string]any{
				"userId": 100,
				"type":   "whatsapp",
				"payload": map[string]any{
					"message": "滤芯寿命即将耗尽",
				},
			},
			wantCode: http.StatusAccepted,
		},
		{
			name: "未知渠道返回400",
			body: map[string]any{
				"userId": 100,
				"type":   "sms",
				"payload": map[string]any{
					"message": "msg",
				},
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "缺少正文返回400",
			body: map[string]any{
				"userId": 100,
				"type":   "whatsapp",
				"payload": map[string]any{
					"title": "只有标题",
				},
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "PUSH缺少标题返回400",
			body: map[string]any{
				"userId": 100,
				"type":   "push",
				"payload": map[string]any{
					"message": "msg",
				},
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server, _ := newTestServer(t)
			recorder := doJSON(t, server, http.MethodPost, "/notification", tt.body)
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestHandler_SendToAll(t *testing.T) {
	t.Parallel()
	server, ledger := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/notification/all", map[string]any{
		"type": "email",
		"payload": map[string]any{
			"title":   "停水通知",
			"message": "今晚维护",
		},
	})
	require.Equal(t, http.StatusAccepted, recorder.Code)
	// 目录里两个用户各一条台账
	assert.Equal(t, 2, ledger.count())
}

func TestHandler_SendBatch_PartialFailure(t *testing.T) {
	t.Parallel()
	server, ledger := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/notification/batch", map[string]any{
		"userIds": []int64{10, 0, 30},
		"type":    "email",
		"payload": map[string]any{
			"title":   "提醒",
			"message": "msg",
		},
	})
	require.Equal(t, http.StatusAccepted, recorder.Code)

	var resp struct {
		Results []map[string]any `json:"results"`
		Error   string           `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, 2, ledger.count())
}

func TestHandler_GetNotification(t *testing.T) {
	t.Parallel()
	server, ledger := newTestServer(t)

	_, err := ledger.Create(context.Background(), domain.Notification{
		ID:      1001,
		UserID:  7,
		Channel: domain.ChannelEmail,
		Message: "msg",
		Status:  domain.SendStatusSent,
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/notification/1001", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/notification/9999", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_RecordReading(t *testing.T) {
	t.Parallel()

	t.Run("超标读数触发双渠道告警", func(t *testing.T) {
		t.Parallel()
		server, ledger := newTestServer(t)
		recorder := doJSON(t, server, http.MethodPost, "/reading", map[string]any{
			"userId":   100,
			"deviceId": "WP-2024-001",
			"value":    101,
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, 2, ledger.count())
	})

	t.Run("阈值边界不触发告警", func(t *testing.T) {
		t.Parallel()
		server, ledger := newTestServer(t)
		recorder := doJSON(t, server, http.MethodPost, "/reading", map[string]any{
			"userId":   100,
			"deviceId": "WP-2024-001",
			"value":    100,
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, 0, ledger.count())
	})
}
