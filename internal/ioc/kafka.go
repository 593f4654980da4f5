package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/event/deadletter"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/econf"
)

func InitKafkaProducer() *kafka.Producer {
	type Config struct {
		Addrs string `yaml:"addrs"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("kafka", &cfg); err != nil {
		panic(err)
	}
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Addrs,
	})
	if err != nil {
		panic(err)
	}
	return producer
}

func InitDeadLetterHook(p *kafka.Producer) *deadletter.QueueHook {
	return deadletter.NewQueueHook(deadletter.NewProducer(p))
}
