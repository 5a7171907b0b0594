package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/go-timetable/internal/scheduler"
)

// Metrics records engine runs and HTTP traffic in its own registry.
type Metrics struct {
	handler         http.Handler
	runs            *prometheus.CounterVec
	runDuration     prometheus.Histogram
	sessions        *prometheus.CounterVec
	conflicts       prometheus.Counter
	repaired        prometheus.Counter
	lastCliques     prometheus.Gauge
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

var _ scheduler.Recorder = (*Metrics)(nil)

func New() *Metrics {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_runs_total",
		Help: "Engine runs by validation outcome",
	}, []string{"valid"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_run_duration_seconds",
		Help:    "Duration of engine runs in seconds",
		Buckets: prometheus.DefBuckets,
	})

	sessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_sessions_total",
		Help: "Sessions produced by engine runs",
	}, []string{"outcome"})

	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_conflicts_total",
		Help: "Conflicts found after repair",
	})

	repaired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_sections_repaired_total",
		Help: "Sections rescheduled by the repair pass",
	})

	lastCliques := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_last_run_cliques",
		Help: "Maximal cliques found in the latest run",
	})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	registry.MustRegister(runs, runDuration, sessions, conflicts, repaired, lastCliques, requestDuration, requestTotal)

	return &Metrics{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runs:            runs,
		runDuration:     runDuration,
		sessions:        sessions,
		conflicts:       conflicts,
		repaired:        repaired,
		lastCliques:     lastCliques,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Record implements scheduler.Recorder.
func (m *Metrics) Record(stats scheduler.Stats, elapsed time.Duration, valid bool) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(strconv.FormatBool(valid)).Inc()
	m.runDuration.Observe(elapsed.Seconds())
	m.sessions.WithLabelValues("placed").Add(float64(stats.SessionsPlaced))
	m.sessions.WithLabelValues("placeholder").Add(float64(stats.Placeholders))
	m.sessions.WithLabelValues("manual").Add(float64(stats.ManualResolutions))
	m.conflicts.Add(float64(stats.Conflicts))
	m.repaired.Add(float64(stats.Repaired))
	m.lastCliques.Set(float64(stats.Cliques))
}

func (m *Metrics) ObserveHTTPRequest(method string, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}
