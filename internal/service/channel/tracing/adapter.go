package tracing

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/internal/service/channel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AdapterDecorator 渠道适配器的链路追踪装饰器
type AdapterDecorator struct {
	adapter channel.Adapter
	tracer  trace.Tracer
}

func NewAdapterDecorator(adapter channel.Adapter) *AdapterDecorator {
	return &AdapterDecorator{
		adapter: adapter,
		tracer:  otel.Tracer("purifier-notify/channel"),
	}
}

func (d *AdapterDecorator) Send(ctx context.Context, delivery channel.Delivery) (channel.Receipt, error) {
	ctx, span := d.tracer.Start(ctx, "channel.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("channel", delivery.Channel.String()),
		attribute.Int64("jobID", int64(delivery.JobID)),
	)

	receipt, err := d.adapter.Send(ctx, delivery)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return receipt, err
}
