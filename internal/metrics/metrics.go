// Package metrics exposes Prometheus instrumentation for pipeline runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects pipeline run metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	runsActive  prometheus.Gauge
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dossier",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total pipeline runs by final domain, decision method, and status.",
		},
		[]string{"domain", "method", "status"},
	)
	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dossier",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Pipeline run duration in seconds by decision method.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"method"},
	)
	runsActive := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dossier",
			Subsystem: "pipeline",
			Name:      "runs_active",
			Help:      "Number of pipeline runs currently executing.",
		},
	)

	registry.MustRegister(runsTotal, runDuration, runsActive)

	return &Recorder{
		registry:    registry,
		runsTotal:   runsTotal,
		runDuration: runDuration,
		runsActive:  runsActive,
	}
}

// Handler serves this recorder's registry over HTTP.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// StartRun marks a run as in flight.
func (r *Recorder) StartRun() {
	r.runsActive.Inc()
}

// ObserveRun records one finished pipeline run.
func (r *Recorder) ObserveRun(domain, method string, success bool, duration time.Duration) {
	r.runsActive.Dec()

	status := "success"
	if !success {
		status = "failure"
	}
	if method == "" {
		method = "none"
	}
	if domain == "" {
		domain = "none"
	}

	r.runsTotal.WithLabelValues(domain, method, status).Inc()
	r.runDuration.WithLabelValues(method).Observe(duration.Seconds())
}
