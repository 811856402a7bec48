package prometheus

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/multitaskio/multitask/pkg/core"
	"github.com/multitaskio/multitask/pkg/multitask"
)

func newTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func TestObserver_BackgroundLifecycle(t *testing.T) {
	m := newTestMetrics()
	rt := multitask.New(
		multitask.WithLogger(core.NopLogger{}),
		multitask.WithObserver(Observer(m)),
	)
	rt.CreatePool("p", core.PoolConfig{Workers: 2})

	ok := rt.Task(func(ctx context.Context) error { return nil })
	bad := rt.Task(func(ctx context.Context) error { return errors.New("boom") })

	ok(context.Background())
	ok(context.Background())
	bad(context.Background())
	rt.WaitForTasks(0)

	if got := testutil.ToFloat64(m.TasksSubmitted.WithLabelValues("p")); got != 3 {
		t.Errorf("tasks_submitted_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.TasksCompleted.WithLabelValues("p")); got != 2 {
		t.Errorf("tasks_completed_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TasksFailed.WithLabelValues("p")); got != 1 {
		t.Errorf("tasks_failed_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ActiveUnits); got != 0 {
		t.Errorf("active_units after drain = %v, want 0", got)
	}
}

func TestObserver_SynchronousCalls(t *testing.T) {
	m := newTestMetrics()
	rt := multitask.New(
		multitask.WithLogger(core.NopLogger{}),
		multitask.WithObserver(Observer(m)),
	)
	rt.CreatePool("p", core.PoolConfig{Workers: core.Unlimited})

	invoke := rt.Task(func(ctx context.Context) error { return nil })
	invoke(context.Background())
	invoke(context.Background())

	if got := testutil.ToFloat64(m.SyncCalls.WithLabelValues("p")); got != 2 {
		t.Errorf("sync_calls_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TasksSubmitted.WithLabelValues("p")); got != 0 {
		t.Errorf("tasks_submitted_total = %v, want 0 for synchronous calls", got)
	}
}

func TestGetMetrics_Singleton(t *testing.T) {
	if GetMetrics() != GetMetrics() {
		t.Error("GetMetrics must return the same instance")
	}
}

func TestObserver_NilUsesSingleton(t *testing.T) {
	o := Observer(nil)
	if o == nil {
		t.Fatal("Observer(nil) must fall back to the singleton metrics")
	}
}
