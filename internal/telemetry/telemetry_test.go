package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewExporter_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	e, err := NewExporter(context.Background(), Options{})
	require.NoError(t, err)
	assert.False(t, e.Enabled())

	_, span := e.Tracer().Start(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	span.End()
	assert.NoError(t, e.Shutdown(context.Background()))
}

func TestNewExporter_Endpoint(t *testing.T) {
	e, err := NewExporter(context.Background(), Options{Endpoint: "localhost:4318", Insecure: true})
	require.NoError(t, err)
	assert.True(t, e.Enabled())
	assert.NoError(t, e.Shutdown(context.Background()))
}

func TestWithProvider_RecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	e := WithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	_, span := e.Tracer().Start(context.Background(), "dispatch")
	span.SetAttributes(KeyAttr.String("enter"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "dispatch", ended[0].Name())
	assert.Equal(t, "enter", ended[0].Attributes()[0].Value.AsString())
}

func TestNilExporter(t *testing.T) {
	var e *Exporter
	assert.NotNil(t, e.Tracer())
	assert.False(t, e.Enabled())
	assert.NoError(t, e.Shutdown(context.Background()))
}
