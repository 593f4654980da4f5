package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoffStrategy(t *testing.T) {
	t.Parallel()

	s := NewExponentialBackoffStrategy(time.Second, 30*time.Second)

	testCases := []struct {
		name    string
		attempt int32
		want    time.Duration
	}{
		{
			name:    "首次失败",
			attempt: 1,
			want:    time.Second,
		},
		{
			name:    "第二次失败间隔翻倍",
			attempt: 2,
			want:    2 * time.Second,
		},
		{
			name:    "第三次失败",
			attempt: 3,
			want:    4 * time.Second,
		},
		{
			name:    "超过上限封顶",
			attempt: 10,
			want:    30 * time.Second,
		},
		{
			name:    "移位溢出封顶",
			attempt: 70,
			want:    30 * time.Second,
		},
		{
			name:    "非法次数按首次处理",
			attempt: 0,
			want:    time.Second,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, s.Interval(tc.attempt))
		})
	}
}

func TestNewStrategy(t *testing.T) {
	t.Parallel()

	t.Run("指数退避", func(t *testing.T) {
		t.Parallel()
		s, err := NewStrategy(Config{
			Type: "exponential",
			ExponentialBackoff: &ExponentialBackoffConfig{
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     time.Second,
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 200*time.Millisecond, s.Interval(2))
	})

	t.Run("固定间隔", func(t *testing.T) {
		t.Parallel()
		s, err := NewStrategy(Config{
			Type:          "fixed",
			FixedInterval: &FixedIntervalConfig{Interval: time.Second},
		})
		require.NoError(t, err)
		assert.Equal(t, time.Second, s.Interval(5))
	})

	t.Run("未知类型", func(t *testing.T) {
		t.Parallel()
		_, err := NewStrategy(Config{Type: "random"})
		require.Error(t, err)
	})
}
