package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/service/channel"
	"gitee.com/aquaflow/purifier-notify/internal/service/channel/client"
	channelmetrics "gitee.com/aquaflow/purifier-notify/internal/service/channel/metrics"
	channeltracing "gitee.com/aquaflow/purifier-notify/internal/service/channel/tracing"
	"github.com/gotomicro/ego/core/econf"
)

// InitChannelSender 组装渠道适配器表，外层套指标和链路追踪装饰器
func InitChannelSender() channel.Adapter {
	var pushCfg client.DevicePushConfig
	if err := econf.UnmarshalKey("channel.push", &pushCfg); err != nil {
		panic(err)
	}
	var waCfg client.TwilioWhatsAppConfig
	if err := econf.UnmarshalKey("channel.whatsapp", &waCfg); err != nil {
		panic(err)
	}
	var smtpCfg client.SMTPConfig
	if err := econf.UnmarshalKey("channel.email", &smtpCfg); err != nil {
		panic(err)
	}

	dispatcher := channel.NewDispatcher(map[domain.Channel]channel.Adapter{
		domain.ChannelPush:     channel.NewPushAdapter(client.NewDevicePush(pushCfg)),
		domain.ChannelWhatsApp: channel.NewWhatsAppAdapter(client.NewTwilioWhatsApp(waCfg)),
		domain.ChannelEmail:    channel.NewEmailAdapter(client.NewSMTPMailer(smtpCfg)),
	})
	return channeltracing.NewAdapterDecorator(channelmetrics.NewAdapterDecorator(dispatcher))
}
