package channel

import (
	"testing"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
	clientmocks "gitee.com/aquaflow/purifier-notify/internal/service/channel/client/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewDispatcher_MissingAdapterPanics(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	assert.Panics(t, func() {
		NewDispatcher(map[domain.Channel]Adapter{
			domain.ChannelPush: NewPushAdapter(clientmocks.NewMockPusher(ctrl)),
		})
	})
}

func TestDispatcher_RoutesByChannel(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	pusher := clientmocks.NewMockPusher(ctrl)
	messager := clientmocks.NewMockTemplateMessager(ctrl)
	mailer := clientmocks.NewMockMailer(ctrl)

	messager.EXPECT().
		SendTemplate(gomock.Any(), "+8613800000000", "水质TDS超标").
		Return("SM123", nil)

	dispatcher := NewDispatcher(map[domain.Channel]Adapter{
		domain.ChannelPush:     NewPushAdapter(pusher),
		domain.ChannelWhatsApp: NewWhatsAppAdapter(messager),
		domain.ChannelEmail:    NewEmailAdapter(mailer),
	})

	receipt, err := dispatcher.Send(t.Context(), Delivery{
		JobID:   1001,
		Channel: domain.ChannelWhatsApp,
		Target:  "+8613800000000",
		Message: "水质TDS超标",
	})
	require.NoError(t, err)
	assert.Equal(t, "SM123", receipt.ProviderMessageID)
}

func TestPushAdapter_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mock      func(ctrl *gomock.Controller) *clientmocks.MockPusher
		wantMsgID string
		wantErr   error
	}{
		{
			name: "推送成功",
			mock: func(ctrl *gomock.Controller) *clientmocks.MockPusher {
				pusher := clientmocks.NewMockPusher(ctrl)
				pusher.EXPECT().
					Push(gomock.Any(), "tok-abc", "告警", "TDS超标").
					Return("msg-1", nil)
				return pusher
			},
			wantMsgID: "msg-1",
		},
		{
			name: "token失效透传地址缺失错误",
			mock: func(ctrl *gomock.Controller) *clientmocks.MockPusher {
				pusher := clientmocks.NewMockPusher(ctrl)
				pusher.EXPECT().
					Push(gomock.Any(), "tok-abc", "告警", "TDS超标").
					Return("", errs.ErrRecipientAddressMissing)
				return pusher
			},
			wantErr: errs.ErrRecipientAddressMissing,
		},
		{
			name: "网关临时故障透传临时性错误",
			mock: func(ctrl *gomock.Controller) *clientmocks.MockPusher {
				pusher := clientmocks.NewMockPusher(ctrl)
				pusher.EXPECT().
					Push(gomock.Any(), "tok-abc", "告警", "TDS超标").
					Return("", errs.ErrProviderTransient)
				return pusher
			},
			wantErr: errs.ErrProviderTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			adapter := NewPushAdapter(tt.mock(ctrl))

			receipt, err := adapter.Send(t.Context(), Delivery{
				JobID:   1,
				Channel: domain.ChannelPush,
				Target:  "tok-abc",
				Title:   "告警",
				Message: "TDS超标",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsgID, receipt.ProviderMessageID)
		})
	}
}

func TestEmailAdapter_Send(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	mailer := clientmocks.NewMockMailer(ctrl)
	mailer.EXPECT().
		SendMail(gomock.Any(), "user@example.com", "滤芯提醒", "请更换滤芯").
		Return(nil)

	adapter := NewEmailAdapter(mailer)
	receipt, err := adapter.Send(t.Context(), Delivery{
		JobID:   1,
		Channel: domain.ChannelEmail,
		Target:  "user@example.com",
		Title:   "滤芯提醒",
		Message: "请更换滤芯",
	})
	require.NoError(t, err)
	assert.Empty(t, receipt.ProviderMessageID)
}
