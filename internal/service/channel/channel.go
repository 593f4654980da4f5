package channel

import (
	"context"
	"fmt"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/errs"
)

// Delivery 一次已解析地址的投递请求
type Delivery struct {
	JobID   uint64
	Channel domain.Channel
	Target  string // 渠道投递地址：设备token/WhatsApp号码/邮箱
	Title   string
	Message string
}

// Receipt 渠道供应商的投递回执
type Receipt struct {
	ProviderMessageID string
}

// Adapter 单一渠道的投递适配器。
// 失败必须归类为 errs.ErrProviderTransient / errs.ErrProviderPermanent /
// errs.ErrRecipientAddressMissing 三类之一，供队列决定是否重试
type Adapter interface {
	Send(ctx context.Context, d Delivery) (Receipt, error)
}

// Dispatcher 按渠道路由到对应适配器
type Dispatcher struct {
	adapters map[domain.Channel]Adapter
}

// NewDispatcher 要求渠道全集每个渠道都有适配器，缺了直接 panic，
// 宁可启动失败也不要运行期丢任务
func NewDispatcher(adapters map[domain.Channel]Adapter) *Dispatcher {
	for _, ch := range domain.Channels() {
		if _, ok := adapters[ch]; !ok {
			panic(fmt.Sprintf("渠道 %s 未注册适配器", ch))
		}
	}
	return &Dispatcher{adapters: adapters}
}

func (d *Dispatcher) Send(ctx context.Context, delivery Delivery) (Receipt, error) {
	adapter, ok := d.adapters[delivery.Channel]
	if !ok {
		return Receipt{}, fmt.Errorf("%w: channel = %q", errs.ErrInvalidParameter, delivery.Channel)
	}
	return adapter.Send(ctx, delivery)
}
