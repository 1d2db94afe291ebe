package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const serviceName = "ammd"

// TelemetryConfig holds the configuration for telemetry
type TelemetryConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	PrometheusEnabled bool
	SampleRate        float64
}

// Telemetry traces and counts host calls. The zero value and a disabled
// config use the global no-op providers.
type Telemetry struct {
	config       TelemetryConfig
	tracer       oteltrace.Tracer
	calls        metric.Int64Counter
	duration     metric.Float64Histogram
	shutdownFunc func(context.Context) error
}

// InitTelemetry initializes OpenTelemetry tracing and metrics
func InitTelemetry(cfg TelemetryConfig) (*Telemetry, error) {
	tel := &Telemetry{config: cfg}
	if cfg.Enabled {
		res, err := resource.New(
			context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
			),
		)
		if err != nil {
			return nil, err
		}
		if err := tel.initTracing(res); err != nil {
			return nil, err
		}
		if err := tel.initMetrics(res); err != nil {
			return nil, err
		}
	}

	if err := tel.initInstruments(); err != nil {
		return nil, err
	}
	return tel, nil
}

// initTracing sets up OTLP/HTTP tracing when an endpoint is configured
func (t *Telemetry) initTracing(res *resource.Resource) error {
	if t.config.OTLPEndpoint == "" {
		return nil
	}
	if _, err := url.Parse(t.config.OTLPEndpoint); err != nil {
		return err
	}

	endpoint := strings.TrimPrefix(t.config.OTLPEndpoint, "http://")
	exp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(
			trace.TraceIDRatioBased(t.config.SampleRate),
		)),
	)

	otel.SetTracerProvider(tp)
	t.shutdownFunc = tp.Shutdown
	return nil
}

// initMetrics exports OpenTelemetry instruments through the Prometheus
// default registry
func (t *Telemetry) initMetrics(res *resource.Resource) error {
	if !t.config.PrometheusEnabled {
		return nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return err
	}

	provider := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)
	return nil
}

func (t *Telemetry) initInstruments() error {
	t.tracer = otel.Tracer(serviceName)
	meter := otel.Meter(serviceName)

	var err error
	t.calls, err = meter.Int64Counter(
		"ammd.calls.total",
		metric.WithDescription("Total number of host calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	t.duration, err = meter.Float64Histogram(
		"ammd.calls.duration",
		metric.WithDescription("Host call processing time"),
		metric.WithUnit("ms"),
	)
	return err
}

// StartSpan opens a span for a host call.
func (t *Telemetry) StartSpan(ctx context.Context, operation string) (context.Context, oteltrace.Span) {
	if t == nil || t.tracer == nil {
		return ctx, oteltrace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, operation, oteltrace.WithAttributes(attribute.String("amm.operation", operation)))
}

// RecordCall records the outcome of a host call on its span and instruments.
func (t *Telemetry) RecordCall(ctx context.Context, span oteltrace.Span, operation string, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if t == nil || t.calls == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	t.calls.Add(ctx, 1, attrs)
	t.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

// Shutdown flushes and stops the trace exporter
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t != nil && t.shutdownFunc != nil {
		return t.shutdownFunc(ctx)
	}
	return nil
}
