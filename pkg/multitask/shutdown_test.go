package multitask

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/multitaskio/multitask/pkg/core"
)

func TestWaitForTasks_DrainsAndClearsFlag(t *testing.T) {
	rt := newTestRuntime(t)
	rt.CreatePool("p", core.PoolConfig{Workers: 3})

	var finished int32
	invoke := rt.Task(func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&finished, 1)
		return nil
	})
	for i := 0; i < 10; i++ {
		invoke(context.Background())
	}

	if !rt.WaitForTasks(0) {
		t.Error("WaitForTasks must return true")
	}
	if got := atomic.LoadInt32(&finished); got != 10 {
		t.Errorf("WaitForTasks returned with %d of 10 units finished", got)
	}
	if rt.killReceived.Load() {
		t.Error("shutdown flag must be cleared after the drain")
	}

	// Round trip: the runtime accepts new work again.
	u := invoke(context.Background())
	if u == nil {
		t.Fatal("wrapped call after a drain must spawn again")
	}
	u.Join(0)
}

func TestWaitForTasks_ImmediateWhenNothingSpawned(t *testing.T) {
	rt := newTestRuntime(t)
	rt.CreatePool("p", core.PoolConfig{Workers: 2})

	start := time.Now()
	if !rt.WaitForTasks(0) {
		t.Error("WaitForTasks must return true")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("WaitForTasks with no live units took %s", elapsed)
	}
}

func TestWaitForTasks_ImmediateWhenUnlimited(t *testing.T) {
	rt := newTestRuntime(t)
	rt.CreatePool("p", core.PoolConfig{Workers: core.Unlimited})

	start := time.Now()
	if !rt.WaitForTasks(time.Second) {
		t.Error("WaitForTasks must return true")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("WaitForTasks on an unlimited pool took %s", elapsed)
	}
	if rt.killReceived.Load() {
		t.Error("shutdown flag must be cleared on the unlimited-pool path too")
	}
}

func TestKillAll(t *testing.T) {
	rt := newTestRuntime(t)

	var exitCode atomic.Int32
	exitCode.Store(-1)
	var exitCalls atomic.Int32
	rt.exit = func(code int) {
		exitCode.Store(int32(code))
		exitCalls.Add(1)
	}

	var order []string
	rt.OnKill(func() { order = append(order, "first") })
	rt.OnKill(func() { panic("hook gone wrong") })
	rt.OnKill(func() { order = append(order, "last") })

	rt.KillAll()

	if got := exitCode.Load(); got != 0 {
		t.Errorf("exit status = %d, want 0", got)
	}
	if got := exitCalls.Load(); got != 1 {
		t.Errorf("exit called %d times, want 1", got)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "last" {
		t.Errorf("hook order = %v; a panicking hook must not stop the rest", order)
	}
	if !rt.killReceived.Load() {
		t.Error("KillAll must set the shutdown flag")
	}

	// With the flag set, wrapped calls are refused.
	rt.CreatePool("p", core.PoolConfig{Workers: 2})
	if u := rt.Task(func(ctx context.Context) error { return nil })(context.Background()); u != nil {
		t.Error("wrapped call after KillAll must be refused")
	}
}
