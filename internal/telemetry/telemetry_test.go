package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupDisabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "tennis-scraper", Config{}, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, before, otel.GetTracerProvider())
}

func TestSetupExportsSpansOverHTTP(t *testing.T) {
	var exports atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exports.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	shutdown, err := Setup(context.Background(), "tennis-scraper", Config{HTTPEndpoint: srv.URL + "/v1/traces"}, nil)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "Fetch")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	// shutdown flushes the batcher
	require.NoError(t, shutdown(context.Background()))
	require.Positive(t, exports.Load())
}
