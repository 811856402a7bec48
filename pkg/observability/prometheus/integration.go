package prometheus

import (
	"time"

	"github.com/multitaskio/multitask/pkg/multitask"
)

// observer adapts Metrics to the runtime's Observer interface.
type observer struct {
	m *Metrics
}

// Observer returns a multitask.Observer feeding m. Pass nil to feed the
// singleton metrics:
//
//	rt := multitask.New(multitask.WithObserver(prometheus.Observer(nil)))
func Observer(m *Metrics) multitask.Observer {
	if m == nil {
		m = GetMetrics()
	}
	return &observer{m: m}
}

func (o *observer) TaskSubmitted(pool string) {
	o.m.TasksSubmitted.WithLabelValues(pool).Inc()
}

func (o *observer) TaskStarted(pool string) {
	o.m.ActiveUnits.Inc()
}

func (o *observer) TaskFinished(pool string, d time.Duration, err error) {
	o.m.ActiveUnits.Dec()
	o.m.RecordFinished(pool, d, err)
}

func (o *observer) TaskRejected(pool string) {
	o.m.TasksRejected.Inc()
}

func (o *observer) TaskSync(pool string, d time.Duration, err error) {
	o.m.SyncCalls.WithLabelValues(pool).Inc()
	if err != nil {
		o.m.TasksFailed.WithLabelValues(pool).Inc()
	}
	o.m.TaskDuration.WithLabelValues(pool).Observe(d.Seconds())
}
