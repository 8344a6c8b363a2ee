// Package metrics hosts the Prometheus collectors a running picamerad
// service reports, and the chi-routed HTTP mux (/metrics, /healthz) that
// serves them. pkg/camera has no dependency on this package or on
// net/http at all — a Service reports through the plain function-valued
// ServiceHooks instead, which this package's Recorder implements.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feathercam/picamera/pkg/camera"
)

// Recorder owns a private Prometheus registry (never the global default,
// so two Services in the same process — e.g. across a test suite's
// OpenService/Close cycles — never collide on a duplicate Describe) and
// exposes a ServiceHooks that feeds it.
type Recorder struct {
	registry *prometheus.Registry

	sessionsActive  prometheus.Gauge
	tickDuration    prometheus.Histogram
	capturesTotal   *prometheus.CounterVec

	stopped atomic.Bool
}

// NewRecorder builds and registers every collector against a fresh
// registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "picamera_sessions_active",
		Help: "Number of sessions currently accepted by the service.",
	})
	r.tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "picamera_tick_duration_seconds",
		Help:    "Duration of one accept-and-poll tick of the service loop.",
		Buckets: prometheus.DefBuckets,
	})
	r.capturesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "picamera_captures_total",
		Help: "Captures completed, labeled by kind and result.",
	}, []string{"kind", "result"})

	r.registry.MustRegister(r.sessionsActive, r.tickDuration, r.capturesTotal)
	return r
}

// Hooks returns the camera.ServiceHooks this Recorder answers.
func (r *Recorder) Hooks() camera.ServiceHooks {
	return camera.ServiceHooks{
		OnTick: func(activeSessions int, d time.Duration) {
			r.sessionsActive.Set(float64(activeSessions))
			r.tickDuration.Observe(d.Seconds())
		},
		OnCaptureResult: func(video bool, ec camera.ErrorCode) {
			kind := "still"
			if video {
				kind = "video"
			}
			result := "success"
			if ec != camera.Success {
				result = "failure"
			}
			r.capturesTotal.WithLabelValues(kind, result).Inc()
		},
	}
}

// MarkStopped flips the /healthz route to report unhealthy. Called once
// the owning Service has fully shut down.
func (r *Recorder) MarkStopped() { r.stopped.Store(true) }

// Mux returns a chi router serving /metrics (promhttp against this
// Recorder's private registry) and /healthz (200 while the service is
// running, 503 once MarkStopped has been called).
func (r *Recorder) Mux() http.Handler {
	mux := chi.NewRouter()

	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))

	mux.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if r.stopped.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("stopped"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}
