package retry

import (
	"time"
)

// Strategy 退避策略：根据已尝试次数计算下一次投递前的等待间隔
type Strategy interface {
	// Interval 第 attempt 次失败后的等待间隔，attempt 从 1 开始
	Interval(attempt int32) time.Duration
}

// ExponentialBackoffStrategy 指数退避：initial * 2^(attempt-1)，封顶 max
type ExponentialBackoffStrategy struct {
	initialInterval time.Duration
	maxInterval     time.Duration
}

func NewExponentialBackoffStrategy(initialInterval, maxInterval time.Duration) *ExponentialBackoffStrategy {
	return &ExponentialBackoffStrategy{
		initialInterval: initialInterval,
		maxInterval:     maxInterval,
	}
}

func (s *ExponentialBackoffStrategy) Interval(attempt int32) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	interval := s.initialInterval << (attempt - 1)
	// 移位溢出时 interval 可能变成非正数
	if interval <= 0 || interval > s.maxInterval {
		return s.maxInterval
	}
	return interval
}

// FixedIntervalStrategy 固定间隔
type FixedIntervalStrategy struct {
	interval time.Duration
}

func NewFixedIntervalStrategy(interval time.Duration) *FixedIntervalStrategy {
	return &FixedIntervalStrategy{interval: interval}
}

func (s *FixedIntervalStrategy) Interval(_ int32) time.Duration {
	return s.interval
}
