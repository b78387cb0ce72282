package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Independent(t *testing.T) {
	// Each call owns its registry, so repeated construction must not panic.
	first := NewMetrics()
	second := NewMetrics()

	first.ObserveToolCall("events", "create_event", false, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(first.ToolCalls.WithLabelValues("events", "create_event", OutcomeSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.ToolCalls.WithLabelValues("events", "create_event", OutcomeSuccess)))
}

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.ObserveToolCall("weather", "get_alerts", true, 10*time.Millisecond)
	m.ObserveUpstream("points", false, 50*time.Millisecond)
	m.ObserveUpstream("points", true, 50*time.Millisecond)
	m.ObserveHTTP("GET", "/health", "200")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("weather", "get_alerts", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("points", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("points", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/health", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveToolCall("events", "split_bill", false, time.Second)
		m.ObserveUpstream("alerts", false, time.Second)
		m.ObserveHTTP("GET", "/", "200")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveToolCall("events", "event_summary", false, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "convivio_tool_calls_total")
	assert.Contains(t, string(body), `tool="event_summary"`)
}
