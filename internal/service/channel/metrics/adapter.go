package metrics

import (
	"context"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/service/channel"
	"github.com/prometheus/client_golang/prometheus"
)

// AdapterDecorator 渠道适配器的指标装饰器，按渠道与结果维度打点
type AdapterDecorator struct {
	adapter channel.Adapter
	summary *prometheus.SummaryVec
}

func NewAdapterDecorator(adapter channel.Adapter) *AdapterDecorator {
	summary := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "purifier_notify",
		Subsystem: "channel",
		Name:      "send_duration_seconds",
		Help:      "渠道投递耗时",
		Objectives: map[float64]float64{
			0.5:  0.01,
			0.9:  0.01,
			0.95: 0.01,
			0.99: 0.005,
		},
	}, []string{"channel", "status"})
	prometheus.MustRegister(summary)
	return &AdapterDecorator{
		adapter: adapter,
		summary: summary,
	}
}

func (d *AdapterDecorator) Send(ctx context.Context, delivery channel.Delivery) (channel.Receipt, error) {
	start := time.Now()
	receipt, err := d.adapter.Send(ctx, delivery)
	status := "SUCCESS"
	if err != nil {
		status = "FAILED"
	}
	d.summary.WithLabelValues(delivery.Channel.String(), status).
		Observe(time.Since(start).Seconds())
	return receipt, err
}
