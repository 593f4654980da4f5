package deadletter

import (
	"context"
	"encoding/json"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/domain"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/elog"
)

// Producer 死信事件生产者
type Producer interface {
	Produce(ctx context.Context, evt Event) error
}

type producer struct {
	producer *kafka.Producer
	topic    string
}

func NewProducer(p *kafka.Producer) Producer {
	return &producer{
		producer: p,
		topic:    EventName,
	}
}

func (p *producer) Produce(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &p.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(evt.Channel),
		Value: data,
	}, deliveryChan)
	if err != nil {
		return err
	}

	select {
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if ok && m.TopicPartition.Error != nil {
			return m.TopicPartition.Error
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueHook 把队列的死信回调转成 kafka 事件。
// 发送失败只记日志，死信信号丢失不影响任务状态
type QueueHook struct {
	producer Producer
	logger   *elog.Component
}

func NewQueueHook(p Producer) *QueueHook {
	return &QueueHook{
		producer: p,
		logger:   elog.DefaultLogger,
	}
}

func (h *QueueHook) OnDeadLetter(ctx context.Context, job domain.DeliveryJob, cause error) {
	causeMsg := ""
	if cause != nil {
		causeMsg = cause.Error()
	}
	err := h.producer.Produce(ctx, Event{
		JobID:    job.ID,
		Channel:  job.Channel.String(),
		UserID:   job.RecipientUserID,
		Title:    job.Title,
		Message:  job.Message,
		Attempt:  job.Attempt,
		Cause:    causeMsg,
		DeadAtMs: time.Now().UnixMilli(),
	})
	if err != nil {
		h.logger.Error("发送死信事件失败",
			elog.Any("jobID", job.ID),
			elog.String("channel", job.Channel.String()),
			elog.FieldErr(err))
	}
}
