package observability

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/venomid/internal/conf"
	"github.com/tphakala/venomid/internal/observability/metrics"
)

// NewMetrics uses a private registry, so concurrent construction must not
// collide on registration.
func TestNewMetricsConcurrency(t *testing.T) {
	t.Parallel()

	const numGoroutines = 20
	var wg sync.WaitGroup
	for range numGoroutines {
		wg.Go(func() {
			m, err := NewMetrics()
			assert.NoError(t, err)
			if assert.NotNil(t, m) {
				assert.NotNil(t, m.Inference)
				assert.NotNil(t, m.Datastore)
				assert.NotNil(t, m.HTTP)
			}
		})
	}
	wg.Wait()
}

func TestMetricsHandlerExposesInferenceMetrics(t *testing.T) {
	t.Parallel()

	m, err := NewMetrics()
	require.NoError(t, err)
	m.Inference.RecordOperation(metrics.OpInfer, metrics.StatusSuccess)

	mux := http.NewServeMux()
	m.RegisterHandlers(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `inference_operations_total{operation="infer",status="success"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNewEndpointRequiresListenAddress(t *testing.T) {
	t.Parallel()

	m, err := NewMetrics()
	require.NoError(t, err)

	settings := conf.DefaultSettings()
	settings.Telemetry.Metrics.Enabled = false
	_, err = NewEndpoint(settings, m)
	require.Error(t, err)

	settings.Telemetry.Metrics.Enabled = true
	settings.Telemetry.Metrics.Listen = ""
	_, err = NewEndpoint(settings, m)
	require.Error(t, err)
}

func TestEndpointServeAndShutdown(t *testing.T) {
	t.Parallel()

	m, err := NewMetrics()
	require.NoError(t, err)

	settings := conf.DefaultSettings()
	settings.Telemetry.Metrics.Enabled = true
	settings.Telemetry.Metrics.Listen = "127.0.0.1:0"
	endpoint, err := NewEndpoint(settings, m)
	require.NoError(t, err)
	assert.Same(t, m, endpoint.GetMetrics())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- endpoint.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Contains(t, string(body), "inference_corpus_records")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("endpoint did not shut down")
	}
}
