package telemetry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway/gatewaytest"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
	"github.com/dmitrijs2005/stockkeeper/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newProvider(t *testing.T, rate float64) (*telemetry.Provider, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	p, err := telemetry.New(context.Background(), telemetry.Config{ServiceVersion: "test", SampleRate: rate},
		sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	return p, exporter
}

func TestBackendReceivesTraceparent(t *testing.T) {
	p, exporter := newProvider(t, 1)
	b := gatewaytest.New(t)
	exec := transport.NewExecutor(b.URL(), transport.WithTracing(p.Tracer, p.Propagator))

	access, _ := b.Login("admin")
	res := exec.Execute(context.Background(), transport.Get("/inventory/categories/"), access)
	require.True(t, res.Success, res.Err)

	header := b.LastHeader("traceparent")
	require.NotEmpty(t, header)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	traceID := spans[0].SpanContext.TraceID().String()
	assert.True(t, strings.HasPrefix(header, "00-"+traceID+"-"), "header %q, trace %s", header, traceID)
	assert.True(t, strings.HasSuffix(header, "-01"), "sampled flag set")
}

func TestNeverSample_StillPropagates(t *testing.T) {
	p, exporter := newProvider(t, 0)
	b := gatewaytest.New(t)
	exec := transport.NewExecutor(b.URL(), transport.WithTracing(p.Tracer, p.Propagator))

	access, _ := b.Login("admin")
	exec.Execute(context.Background(), transport.Get("/inventory/categories/"), access)

	assert.True(t, strings.HasSuffix(b.LastHeader("traceparent"), "-00"))
	assert.Empty(t, exporter.GetSpans())
}

func TestNew_WithEndpoint(t *testing.T) {
	p, err := telemetry.New(context.Background(), telemetry.Config{Endpoint: "127.0.0.1:4318", Insecure: true, SampleRate: 1})
	require.NoError(t, err, "exporter dials lazily")
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	assert.NotNil(t, p.Tracer)
	assert.NoError(t, p.Tracer.ForceFlush(context.Background()))
}
