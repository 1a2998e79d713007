package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return recorder
}

func TestStatsRecordsSpans(t *testing.T) {
	recorder := recordSpans(t)

	f, refs := batchFixture()
	c := New(f, Options{Now: fixedClock(2024), Retry: testPolicy()})

	_, err := c.Batch(context.Background(), refs[:1], 1)
	require.NoError(t, err)

	spans := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range recorder.Ended() {
		spans[s.Name()] = s
	}
	require.Contains(t, spans, "Batch")
	require.Contains(t, spans, "Stats")

	stats := spans["Stats"]
	require.Equal(t, spans["Batch"].SpanContext().SpanID(), stats.Parent().SpanID())

	attrs := map[string]string{}
	for _, kv := range stats.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, refs[0].ProfileURL, attrs["profile"])
	require.Equal(t, "2", attrs["columns"])
}
