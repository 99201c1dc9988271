package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"basegraph.app/accounts/internal/queue"
)

// Metrics counts deliveries by task and outcome. A nil *Metrics records
// nothing.
type Metrics struct {
	jobsTotal   *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the worker metrics.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_worker_jobs_total",
				Help: "Total number of handled deliveries by task and outcome",
			},
			[]string{"task", "outcome"},
		),
		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "accounts_worker_job_duration_seconds",
				Help:    "Handler duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"task"},
		),
	}

	registry.MustRegister(m.jobsTotal, m.jobDuration)
	return m
}

func (m *Metrics) observe(task queue.TaskType, outcome Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.jobsTotal.WithLabelValues(string(task), string(outcome)).Inc()
	m.jobDuration.WithLabelValues(string(task)).Observe(elapsed.Seconds())
}
