package retry

import (
	"fmt"
	"time"
)

type Config struct {
	Type               string                    `json:"type" yaml:"type"` // 退避策略类型
	FixedInterval      *FixedIntervalConfig      `json:"fixedInterval" yaml:"fixedInterval"`
	ExponentialBackoff *ExponentialBackoffConfig `json:"exponentialBackoff" yaml:"exponentialBackoff"`
}

type ExponentialBackoffConfig struct {
	// 初始重试间隔
	InitialInterval time.Duration `json:"initialInterval" yaml:"initialInterval"`
	// 最大重试间隔
	MaxInterval time.Duration `json:"maxInterval" yaml:"maxInterval"`
}

type FixedIntervalConfig struct {
	Interval time.Duration `json:"interval" yaml:"interval"`
}

func NewStrategy(cfg Config) (Strategy, error) {
	// 根据 config 中的字段来检测
	switch cfg.Type {
	case "fixed":
		return NewFixedIntervalStrategy(cfg.FixedInterval.Interval), nil
	case "exponential":
		return NewExponentialBackoffStrategy(cfg.ExponentialBackoff.InitialInterval, cfg.ExponentialBackoff.MaxInterval), nil
	default:
		return nil, fmt.Errorf("unknown retry type: %s", cfg.Type)
	}
}
