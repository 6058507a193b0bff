// Package telemetry exports engine traces over OTLP when an endpoint is
// configured and hands out a no-op tracer otherwise.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	instrumentation    = "secretsui/engine"
	defaultServiceName = "secretsui"
)

// Span attribute keys used by the engine.
const (
	KeyAttr    = attribute.Key("secretsui.key")
	ScreenAttr = attribute.Key("secretsui.screen")
	PopupAttr  = attribute.Key("secretsui.popup")
	RowsAttr   = attribute.Key("secretsui.frame.rows")
)

// Options configures the exporter. Empty fields fall back to
// OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_SERVICE_NAME.
type Options struct {
	Endpoint    string
	ServiceName string
	Insecure    bool
}

// Exporter owns the tracer provider.
type Exporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
}

// NewExporter creates an OTLP exporter, or a disabled one when no endpoint
// is configured.
func NewExporter(ctx context.Context, opts Options) (*Exporter, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if endpoint == "" {
		return Disabled(), nil
	}

	httpOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if opts.Insecure {
		httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, httpOpts...)
	if err != nil {
		return nil, err
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return WithProvider(provider), nil
}

// WithProvider wraps an existing provider, e.g. one backed by a span
// recorder in tests.
func WithProvider(p *sdktrace.TracerProvider) *Exporter {
	return &Exporter{
		provider: p,
		tracer:   p.Tracer(instrumentation),
		enabled:  true,
	}
}

// Disabled returns an exporter whose tracer records nothing.
func Disabled() *Exporter {
	return &Exporter{tracer: noop.NewTracerProvider().Tracer(instrumentation)}
}

// Tracer returns the engine tracer.
func (e *Exporter) Tracer() oteltrace.Tracer {
	if e == nil {
		return noop.NewTracerProvider().Tracer(instrumentation)
	}
	return e.tracer
}

// Enabled reports whether spans are exported.
func (e *Exporter) Enabled() bool {
	return e != nil && e.enabled
}

// Shutdown flushes and closes the exporter.
func (e *Exporter) Shutdown(ctx context.Context) error {
	if e == nil || e.provider == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
