package domain

import (
	"fmt"
	"strings"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
)

// Channel 通知渠道
type Channel string

const (
	ChannelPush     Channel = "PUSH"     // App 设备推送
	ChannelWhatsApp Channel = "WHATSAPP" // WhatsApp 模板消息
	ChannelEmail    Channel = "EMAIL"    // 邮件
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelPush, ChannelWhatsApp, ChannelEmail:
		return true
	default:
		return false
	}
}

// RequiresTitle WHATSAPP 走模板消息，没有标题的概念
func (c Channel) RequiresTitle() bool {
	return c == ChannelPush || c == ChannelEmail
}

// Channels 渠道全集。Dispatcher 构造时用它校验适配器表是否完整
func Channels() []Channel {
	return []Channel{ChannelPush, ChannelWhatsApp, ChannelEmail}
}

// ChannelOf 解析外部请求中的渠道标识
func ChannelOf(typ string) (Channel, error) {
	switch strings.ToLower(typ) {
	case "push":
		return ChannelPush, nil
	case "whatsapp":
		return ChannelWhatsApp, nil
	case "email":
		return ChannelEmail, nil
	default:
		return "", fmt.Errorf("%w: type = %q", errs.ErrInvalidParameter, typ)
	}
}
