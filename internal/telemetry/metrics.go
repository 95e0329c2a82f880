package telemetry

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mergebench/internal/benchmark"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors updated by the benchmark runner.
type Metrics struct {
	TrialDuration *prometheus.HistogramVec
	Trials        *prometheus.CounterVec
	Defects       prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TrialDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mergebench_trial_duration_seconds",
				Help:    "Time spent sorting one dataset",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"size"},
		),
		Trials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mergebench_trials_total",
				Help: "Total number of trials by outcome",
			},
			[]string{"outcome"},
		),
		Defects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mergebench_verification_defects_total",
				Help: "Trials whose sorted output failed the ordering check",
			},
		),
	}

	reg.MustRegister(m.TrialDuration, m.Trials, m.Defects)
	return m
}

// ObserveTrial implements benchmark.Recorder.
func (m *Metrics) ObserveTrial(size int, elapsed time.Duration, outcome benchmark.Outcome) {
	m.Trials.WithLabelValues(string(outcome)).Inc()
	switch outcome {
	case benchmark.OutcomeOK:
		m.TrialDuration.WithLabelValues(strconv.Itoa(size)).Observe(elapsed.Seconds())
	case benchmark.OutcomeDefect:
		m.TrialDuration.WithLabelValues(strconv.Itoa(size)).Observe(elapsed.Seconds())
		m.Defects.Inc()
	}
}

// StartMetricsServer serves the gatherer's metrics on /metrics. It blocks
// until the server stops.
func StartMetricsServer(port int, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf(":%d", port)
	slog.Info("starting metrics server", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
