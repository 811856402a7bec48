package multitask

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/multitaskio/multitask/pkg/core"
)

// Observer receives task lifecycle events, typically to feed metrics.
// Implementations must be safe for concurrent use; any method may be
// called from many units at once.
type Observer interface {
	// TaskSubmitted fires when a unit is spawned for a wrapped call.
	TaskSubmitted(pool string)

	// TaskStarted fires once the unit has been admitted through the gate.
	TaskStarted(pool string)

	// TaskFinished fires when the unit's function returns or faults.
	TaskFinished(pool string, d time.Duration, err error)

	// TaskRejected fires when a wrapped call is refused because shutdown
	// is in progress.
	TaskRejected(pool string)

	// TaskSync fires when a wrapped call runs synchronously through an
	// unlimited pool.
	TaskSync(pool string, d time.Duration, err error)
}

// Runtime owns the pool registry, the task history and the shutdown
// protocol. It is safe for concurrent use.
//
// Most hosts use the package-level default runtime; construct your own
// with New to keep the scheduler state out of process-wide globals.
type Runtime struct {
	pools *core.PoolRegistry
	tasks *core.TaskRegistry

	logger   core.Logger
	observer Observer

	killReceived atomic.Bool

	hookMu    sync.Mutex
	killHooks []func()

	// exit is called by KillAll; overridable for tests.
	exit func(code int)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger replaces the default logger.
func WithLogger(l core.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithObserver installs a task lifecycle observer.
func WithObserver(o Observer) Option {
	return func(r *Runtime) { r.observer = o }
}

// New creates a Runtime with an empty pool registry and task history.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		pools:  core.NewPoolRegistry(),
		tasks:  core.NewTaskRegistry(),
		logger: core.NewDefaultLogger(),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetMaxWorkers sets the default capacity for pools created afterwards.
// Values of zero or less reset it to the host CPU count.
func (r *Runtime) SetMaxWorkers(n int) {
	r.pools.SetMaxWorkers(n)
}

// SetEngine sets the default engine kind for pools created afterwards.
func (r *Runtime) SetEngine(kind core.EngineKind) {
	r.pools.SetEngine(kind)
}

// CreatePool builds a pool and makes it the active pool. Zero values in
// cfg select the runtime defaults.
func (r *Runtime) CreatePool(name string, cfg core.PoolConfig) *core.Pool {
	p := r.pools.CreatePool(name, cfg)
	r.logger.Debugf("created pool %q (workers=%d engine=%s)", p.Name(), p.Workers(), p.Engine())
	return p
}

// GetPool returns a snapshot of the pool registered under exactly the
// given name. Unknown names fail with a PoolNotFoundError.
func (r *Runtime) GetPool(name string) (core.PoolInfo, error) {
	p, err := r.pools.Get(name)
	if err != nil {
		return core.PoolInfo{}, err
	}
	return p.Info(), nil
}

// GetActivePool returns a snapshot of the active pool, creating the
// default "main" pool if none exists yet.
func (r *Runtime) GetActivePool() core.PoolInfo {
	return r.pools.Active().Info()
}

// ListTasks returns every unit ever spawned, in creation order.
func (r *Runtime) ListTasks() []*core.Unit {
	return r.tasks.All()
}

// ActiveTasks returns the units that are still alive, in creation order.
func (r *Runtime) ActiveTasks() []*core.Unit {
	return r.tasks.Active()
}

// Faults returns one error per finished unit whose function returned an
// error or panicked, in creation order. Draining never re-raises faults;
// this is the inspection point for them.
func (r *Runtime) Faults() []error {
	var faults []error
	for _, u := range r.tasks.All() {
		if err := u.Err(); err != nil {
			faults = append(faults, fmt.Errorf("unit %s (pool %s): %w", u.ID(), u.Pool(), err))
		}
	}
	return faults
}
