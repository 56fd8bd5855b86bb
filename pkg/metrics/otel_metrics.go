package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics 定位处理流水线的指标集合
type OTelMetrics struct {
	WebhookEventsTotal    metric.Int64Counter
	DuplicateDropsTotal   metric.Int64Counter
	PinnedRejectionsTotal metric.Int64Counter
	CacheMissesTotal      metric.Int64Counter
	GatewayCallsTotal     metric.Int64Counter
	GatewayDuration       metric.Float64Histogram
	MessagesSentTotal     metric.Int64Counter
}

var (
	metrics *OTelMetrics
	meter   = otel.Meter("timerbot")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.WebhookEventsTotal, err = meter.Int64Counter(
		"webhook_events_total",
		metric.WithDescription("Total number of webhook message events received"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return err
	}

	metrics.DuplicateDropsTotal, err = meter.Int64Counter(
		"webhook_duplicate_drops_total",
		metric.WithDescription("Total number of webhook events dropped as duplicates"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return err
	}

	metrics.PinnedRejectionsTotal, err = meter.Int64Counter(
		"location_pinned_rejections_total",
		metric.WithDescription("Total number of saved-pin locations rejected"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	metrics.CacheMissesTotal, err = meter.Int64Counter(
		"location_cache_misses_total",
		metric.WithDescription("Total number of coordinate cache misses on consume"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return err
	}

	metrics.GatewayCallsTotal, err = meter.Int64Counter(
		"attendance_gateway_calls_total",
		metric.WithDescription("Total number of attendance gateway validation calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	metrics.GatewayDuration, err = meter.Float64Histogram(
		"attendance_gateway_duration_seconds",
		metric.WithDescription("Attendance gateway call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal, err = meter.Int64Counter(
		"whatsapp_messages_sent_total",
		metric.WithDescription("Total number of outbound WhatsApp sends attempted"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordWebhookEvent 记录收到的 webhook 消息事件
func (m *OTelMetrics) RecordWebhookEvent(ctx context.Context, messageType string) {
	if m == nil {
		return
	}
	m.WebhookEventsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", messageType),
	))
}

// RecordDuplicateDrop 记录被去重丢弃的事件
func (m *OTelMetrics) RecordDuplicateDrop(ctx context.Context) {
	if m == nil {
		return
	}
	m.DuplicateDropsTotal.Add(ctx, 1)
}

// RecordPinnedRejection 记录固定位置被拒绝
func (m *OTelMetrics) RecordPinnedRejection(ctx context.Context) {
	if m == nil {
		return
	}
	m.PinnedRejectionsTotal.Add(ctx, 1)
}

// RecordCacheMiss 记录消费坐标时缓存缺失或过期
func (m *OTelMetrics) RecordCacheMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Add(ctx, 1)
}

// RecordGatewayCall 记录一次网关校验调用
func (m *OTelMetrics) RecordGatewayCall(ctx context.Context, outcome string, duration float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.GatewayCallsTotal.Add(ctx, 1, attrs)
	m.GatewayDuration.Record(ctx, duration, attrs)
}

// RecordMessageSent 记录一次出站消息发送
func (m *OTelMetrics) RecordMessageSent(ctx context.Context, kind, status string) {
	if m == nil {
		return
	}
	m.MessagesSentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("status", status),
	))
}
