package channel

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/internal/service/channel/client"
)

// emailAdapter SMTP 协议没有消息ID回执，Receipt 为空
type emailAdapter struct {
	mailer client.Mailer
}

func NewEmailAdapter(mailer client.Mailer) Adapter {
	return &emailAdapter{mailer: mailer}
}

func (a *emailAdapter) Send(ctx context.Context, d Delivery) (Receipt, error) {
	if err := a.mailer.SendMail(ctx, d.Target, d.Title, d.Message); err != nil {
		return Receipt{}, err
	}
	return Receipt{}, nil
}
