package channel

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/internal/service/channel/client"
)

type pushAdapter struct {
	pusher client.Pusher
}

func NewPushAdapter(pusher client.Pusher) Adapter {
	return &pushAdapter{pusher: pusher}
}

func (a *pushAdapter) Send(ctx context.Context, d Delivery) (Receipt, error) {
	msgID, err := a.pusher.Push(ctx, d.Target, d.Title, d.Message)
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{ProviderMessageID: msgID}, nil
}
