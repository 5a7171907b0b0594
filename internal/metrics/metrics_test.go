package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/internal/scheduler"
)

func TestRecord(t *testing.T) {
	m := New()
	m.Record(scheduler.Stats{Cliques: 4, SessionsPlaced: 10, Placeholders: 2, ManualResolutions: 1, Conflicts: 3, Repaired: 2}, 150*time.Millisecond, false)
	m.Record(scheduler.Stats{Cliques: 5, SessionsPlaced: 12}, 80*time.Millisecond, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("true")))
	assert.Equal(t, 22.0, testutil.ToFloat64(m.sessions.WithLabelValues("placed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessions.WithLabelValues("placeholder")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessions.WithLabelValues("manual")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.conflicts))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.repaired))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.lastCliques))
	assert.Equal(t, 1, testutil.CollectAndCount(m.runDuration))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest(http.MethodPost, "/", http.StatusOK, time.Second)
	m.Record(scheduler.Stats{SessionsPlaced: 1}, time.Millisecond, true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="POST",path="/",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `timetable_runs_total{valid="true"} 1`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Record(scheduler.Stats{}, time.Second, true)
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
