package prometheus

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DefaultRegistry is the registry the singleton metrics register on.
	DefaultRegistry = prometheus.NewRegistry()

	// DefaultRegisterer labels everything with the library name so the
	// metrics coexist with the host's own.
	DefaultRegisterer = prometheus.WrapRegistererWith(prometheus.Labels{"service": "multitask"}, DefaultRegistry)

	metricsOnce sync.Once
	metrics     *Metrics
)

// Metrics holds the scheduler's Prometheus metrics.
type Metrics struct {
	// Per-pool task lifecycle counters.
	TasksSubmitted *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec

	// Synchronous executions through unlimited pools.
	SyncCalls *prometheus.CounterVec

	// Calls refused while shutdown was in progress.
	TasksRejected prometheus.Counter

	// Units currently executing their wrapped function.
	ActiveUnits prometheus.Gauge

	// Execution time of the wrapped function, measured from admission.
	TaskDuration *prometheus.HistogramVec
}

// GetMetrics returns the singleton metrics registered on DefaultRegistry.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = NewMetrics(DefaultRegisterer)
	})
	return metrics
}

// NewMetrics creates a metrics collection on the given registerer. Pass
// nil to use DefaultRegisterer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = DefaultRegisterer
	}

	return &Metrics{
		TasksSubmitted: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "multitask_tasks_submitted_total",
				Help: "Total number of background units spawned",
			},
			[]string{"pool"},
		),
		TasksCompleted: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "multitask_tasks_completed_total",
				Help: "Total number of units that finished cleanly",
			},
			[]string{"pool"},
		),
		TasksFailed: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "multitask_tasks_failed_total",
				Help: "Total number of units that returned an error or panicked",
			},
			[]string{"pool"},
		),
		SyncCalls: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "multitask_sync_calls_total",
				Help: "Total number of calls run synchronously through unlimited pools",
			},
			[]string{"pool"},
		),
		TasksRejected: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "multitask_tasks_rejected_total",
				Help: "Total number of calls refused during shutdown",
			},
		),
		ActiveUnits: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "multitask_active_units",
				Help: "Units currently executing their wrapped function",
			},
		),
		TaskDuration: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "multitask_task_duration_seconds",
				Help:    "Execution time of wrapped functions, from admission to return",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pool"},
		),
	}
}

// RecordFinished updates the completion counters and duration histogram.
func (m *Metrics) RecordFinished(pool string, d time.Duration, err error) {
	if err != nil {
		m.TasksFailed.WithLabelValues(pool).Inc()
	} else {
		m.TasksCompleted.WithLabelValues(pool).Inc()
	}
	m.TaskDuration.WithLabelValues(pool).Observe(d.Seconds())
}
