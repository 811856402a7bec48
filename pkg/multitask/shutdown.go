package multitask

import (
	"time"

	"github.com/multitaskio/multitask/pkg/core"
)

// joinTimeout bounds each join attempt during a drain pass. It keeps the
// loop iterative, not a deadline: the loop retries until no unit is
// alive.
const joinTimeout = time.Second

// WaitForTasks blocks until every spawned unit has finished. While the
// drain runs, wrapped calls are refused (unlimited-pool calls keep
// running synchronously and are unaffected). The refusal flag is cleared
// before returning, so later wrapped calls spawn again.
//
// poll is an optional sleep between drain passes; zero means none.
// Always returns true: it signals "the drain has terminated", not
// success or failure. Per-unit faults stay inspectable via Faults.
func (r *Runtime) WaitForTasks(poll time.Duration) bool {
	r.killReceived.Store(true)
	defer r.killReceived.Store(false)

	if r.pools.Active().Unlimited() {
		return true
	}

	for {
		for _, u := range r.tasks.Active() {
			u.Join(joinTimeout)
		}
		if len(r.tasks.Active()) == 0 {
			return true
		}
		if poll > 0 {
			time.Sleep(poll)
		}
	}
}

// OnKill registers a cleanup hook to run during KillAll, before the
// process exits. Hooks run in registration order; a panicking hook does
// not stop the exit.
func (r *Runtime) OnKill(fn func()) {
	r.hookMu.Lock()
	r.killHooks = append(r.killHooks, fn)
	r.hookMu.Unlock()
}

// KillAll terminates the process immediately with status 0. New wrapped
// calls are refused from the moment it is invoked, registered cleanup
// hooks run, and then the process exits; in-flight units are not waited
// for. It never returns.
func (r *Runtime) KillAll() {
	r.killReceived.Store(true)

	r.hookMu.Lock()
	hooks := make([]func(), len(r.killHooks))
	copy(hooks, r.killHooks)
	r.hookMu.Unlock()

	for _, fn := range hooks {
		runKillHook(r.logger, fn)
	}

	r.exit(0)
}

func runKillHook(logger core.Logger, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Errorf("kill hook panicked: %v", rec)
		}
	}()
	fn()
}
