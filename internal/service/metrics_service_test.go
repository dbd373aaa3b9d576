package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCacheRatio(t *testing.T) {
	m := NewMetricsService("test")
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)

	assert.InDelta(t, 2.0/3.0, testutil.ToFloat64(m.cacheHitRatio), 0.0001)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.cacheHits))
}

func TestMetricsHandlerExposesSeries(t *testing.T) {
	m := NewMetricsService("room_console")
	m.ObserveUpstream(http.MethodGet, 200, 5*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/building", 200, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "room_console_upstream_request_duration_seconds")
	assert.Contains(t, w.Body.String(), `path="/building"`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest("GET", "/", 200, time.Second)
	m.RecordCacheOperation(true, time.Second)
	m.RecordAudit("queued")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
