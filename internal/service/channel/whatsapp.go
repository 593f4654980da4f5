package channel

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/internal/service/channel/client"
)

// whatsappAdapter 模板消息没有标题，Title 被忽略
type whatsappAdapter struct {
	messager client.TemplateMessager
}

func NewWhatsAppAdapter(messager client.TemplateMessager) Adapter {
	return &whatsappAdapter{messager: messager}
}

func (a *whatsappAdapter) Send(ctx context.Context, d Delivery) (Receipt, error) {
	msgID, err := a.messager.SendTemplate(ctx, d.Target, d.Message)
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{ProviderMessageID: msgID}, nil
}
