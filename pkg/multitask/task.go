package multitask

import (
	"context"
	"time"

	"github.com/multitaskio/multitask/pkg/core"
)

// Invoker is the wrapped form of a function. Each call requests
// admission from the active pool, spawns a unit and returns it without
// blocking. A nil unit means no background handle exists: either the
// active pool is unlimited and the function already ran synchronously,
// or shutdown is in progress and the call was refused.
type Invoker func(ctx context.Context) *core.Unit

// Task wraps fn for background execution. The returned Invoker follows
// the per-call protocol: if no pool exists yet the default "main" pool
// is created first; unlimited pools run fn in the caller's goroutine;
// otherwise a unit is spawned, recorded in the task history and
// returned immediately. The unit acquires its admission slot internally,
// so the caller never blocks.
func (r *Runtime) Task(fn core.TaskFunc) Invoker {
	return func(ctx context.Context) *core.Unit {
		pool := r.pools.Active()

		if pool.Unlimited() {
			r.runSync(ctx, pool, fn)
			return nil
		}

		if r.killReceived.Load() {
			if r.observer != nil {
				r.observer.TaskRejected(pool.Name())
			}
			return nil
		}

		u := core.NewUnit(pool.Name(), pool.Engine())
		r.tasks.Add(u)
		if r.observer != nil {
			r.observer.TaskSubmitted(pool.Name())
		}
		u.Start(ctx, pool, fn, r.unitHooks())
		return u
	}
}

func (r *Runtime) runSync(ctx context.Context, pool *core.Pool, fn core.TaskFunc) {
	start := time.Now()
	err := fn(ctx)
	if err != nil {
		r.logger.Warnf("synchronous task in pool %q failed: %v", pool.Name(), err)
	}
	if r.observer != nil {
		r.observer.TaskSync(pool.Name(), time.Since(start), err)
	}
}

func (r *Runtime) unitHooks() core.UnitHooks {
	return core.UnitHooks{
		OnStart: func(u *core.Unit) {
			if r.observer != nil {
				r.observer.TaskStarted(u.Pool())
			}
		},
		OnFinish: func(u *core.Unit, d time.Duration, err error) {
			if err != nil {
				r.logger.Warnf("%s failed after %s: %v", u, d, err)
			}
			if r.observer != nil {
				r.observer.TaskFinished(u.Pool(), d, err)
			}
		},
	}
}
