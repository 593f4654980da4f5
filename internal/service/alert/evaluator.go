package alert

import (
	"fmt"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"gitee.com/aquaflow/purifier-notify/internal/service/producer"
)

// DefaultTDSThreshold TDS 告警阈值(ppm)，严格大于才告警
const DefaultTDSThreshold = 100

type Config struct {
	// Threshold TDS 告警阈值，读数严格大于该值时触发
	Threshold int `json:"threshold" yaml:"threshold"`
	// Title 告警通知标题
	Title string `json:"title" yaml:"title"`
	// MessageTemplate 告警正文模板，两个占位符依次是设备ID和读数
	MessageTemplate string `json:"messageTemplate" yaml:"messageTemplate"`
}

// Evaluator 水质告警规则：读数超过阈值时生成投递命令。
// 告警要求即时触达，走 PUSH 和 WHATSAPP 双渠道
type Evaluator struct {
	cfg Config
}

func NewEvaluator(cfg Config) *Evaluator {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultTDSThreshold
	}
	if cfg.Title == "" {
		cfg.Title = "水质告警"
	}
	if cfg.MessageTemplate == "" {
		cfg.MessageTemplate = "净水器 %s 出水TDS值 %d ppm 超标，请检查滤芯"
	}
	return &Evaluator{cfg: cfg}
}

// Evaluate 对一条读数做规则判定，未触发时返回空
func (e *Evaluator) Evaluate(reading domain.TDSReading) []producer.Command {
	if reading.Value <= e.cfg.Threshold {
		return nil
	}

	message := fmt.Sprintf(e.cfg.MessageTemplate, reading.DeviceID, reading.Value)
	channels := []domain.Channel{domain.ChannelPush, domain.ChannelWhatsApp}
	cmds := make([]producer.Command, 0, len(channels))
	for _, ch := range channels {
		cmd := producer.Command{
			Channel: ch,
			UserID:  reading.UserID,
			Message: message,
		}
		// WhatsApp 模板消息没有标题
		if ch.RequiresTitle() {
			cmd.Title = e.cfg.Title
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}
