package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/alexanderramin/moodlog/internal/llm"
)

const (
	serviceName    = "moodlog"
	serviceVersion = "1.0.0"
)

// Recorder receives gateway call events and reflection measurements.
type Recorder interface {
	llm.Observer
	RecordReflection(ctx context.Context, view domain.ViewGranularity, bucket domain.ResourceBucketKey, source domain.NarrativeSource)
	RecordLogged(ctx context.Context, emotions int)
	Close(ctx context.Context) error
}

// Metrics records moodlog instruments on an OpenTelemetry meter.
type Metrics struct {
	shutdown        func(context.Context) error
	gatewayCalls    metric.Int64Counter
	gatewayLatency  metric.Float64Histogram
	reflections     metric.Int64Counter
	recordsLogged   metric.Int64Counter
	emotionsPerTask metric.Int64Histogram
}

// NewExporter creates a Metrics recorder that pushes to an OTLP collector.
func NewExporter(ctx context.Context, cfg Config) (*Metrics, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	m, err := NewMetrics(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}
	m.shutdown = provider.Shutdown
	return m, nil
}

// NewMetrics creates the instruments on the given provider. Close is a no-op
// unless the Metrics came from NewExporter.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(serviceName)

	gatewayCalls, err := meter.Int64Counter(
		"moodlog_gateway_calls_total",
		metric.WithDescription("Augmentation gateway calls by outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway calls counter: %w", err)
	}

	gatewayLatency, err := meter.Float64Histogram(
		"moodlog_gateway_latency_ms",
		metric.WithDescription("Augmentation gateway call latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gateway latency histogram: %w", err)
	}

	reflections, err := meter.Int64Counter(
		"moodlog_reflections_total",
		metric.WithDescription("Reflections computed by view and resource bucket"),
		metric.WithUnit("{reflection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reflections counter: %w", err)
	}

	recordsLogged, err := meter.Int64Counter(
		"moodlog_records_logged_total",
		metric.WithDescription("Task emotion records logged"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating records counter: %w", err)
	}

	emotionsPerTask, err := meter.Int64Histogram(
		"moodlog_emotions_per_record",
		metric.WithDescription("Emotion tags attached to each logged record"),
		metric.WithUnit("{emotion}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating emotions histogram: %w", err)
	}

	return &Metrics{
		gatewayCalls:    gatewayCalls,
		gatewayLatency:  gatewayLatency,
		reflections:     reflections,
		recordsLogged:   recordsLogged,
		emotionsPerTask: emotionsPerTask,
	}, nil
}

// OnCallComplete records a gateway call. It satisfies llm.Observer.
func (m *Metrics) OnCallComplete(event llm.LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
	}
	opt := metric.WithAttributes(
		attribute.String("task", string(event.Task)),
		attribute.String("provider", string(event.Provider)),
		attribute.String("status", status),
	)

	ctx := context.Background()
	m.gatewayCalls.Add(ctx, 1, opt)
	m.gatewayLatency.Record(ctx, float64(event.LatencyMs), opt)
}

// RecordReflection counts one computed reflection.
func (m *Metrics) RecordReflection(ctx context.Context, view domain.ViewGranularity, bucket domain.ResourceBucketKey, source domain.NarrativeSource) {
	m.reflections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("view", string(view)),
		attribute.String("bucket", string(bucket)),
		attribute.String("narrative_source", string(source)),
	))
}

// RecordLogged counts one logged record carrying the given number of emotions.
func (m *Metrics) RecordLogged(ctx context.Context, emotions int) {
	m.recordsLogged.Add(ctx, 1)
	m.emotionsPerTask.Record(ctx, int64(emotions))
}

// Close shuts down the exporter and flushes any pending metrics.
func (m *Metrics) Close(ctx context.Context) error {
	if m.shutdown == nil {
		return nil
	}
	return m.shutdown(ctx)
}
