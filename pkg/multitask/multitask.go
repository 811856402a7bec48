package multitask

import (
	"os"
	"time"

	"github.com/multitaskio/multitask/pkg/core"
)

// defaultRuntime backs the package-level functions. It is the one
// process-wide singleton; hosts that want isolated scheduler state
// should construct their own Runtime with New.
var defaultRuntime = New()

// Default returns the package-level runtime.
func Default() *Runtime { return defaultRuntime }

// SetMaxWorkers sets the default capacity on the default runtime.
func SetMaxWorkers(n int) { defaultRuntime.SetMaxWorkers(n) }

// SetEngine sets the default engine kind on the default runtime.
func SetEngine(kind core.EngineKind) { defaultRuntime.SetEngine(kind) }

// CreatePool builds a pool on the default runtime and activates it.
func CreatePool(name string, cfg core.PoolConfig) *core.Pool {
	return defaultRuntime.CreatePool(name, cfg)
}

// GetPool returns a snapshot of the named pool on the default runtime.
func GetPool(name string) (core.PoolInfo, error) { return defaultRuntime.GetPool(name) }

// GetActivePool returns a snapshot of the default runtime's active pool.
func GetActivePool() core.PoolInfo { return defaultRuntime.GetActivePool() }

// Task wraps fn for background execution on the default runtime.
func Task(fn core.TaskFunc) Invoker { return defaultRuntime.Task(fn) }

// WaitForTasks drains the default runtime.
func WaitForTasks(poll time.Duration) bool { return defaultRuntime.WaitForTasks(poll) }

// ListTasks returns every unit ever spawned on the default runtime.
func ListTasks() []*core.Unit { return defaultRuntime.ListTasks() }

// ActiveTasks returns the default runtime's live units.
func ActiveTasks() []*core.Unit { return defaultRuntime.ActiveTasks() }

// Faults returns the default runtime's captured task faults.
func Faults() []error { return defaultRuntime.Faults() }

// KillAll terminates the process via the default runtime.
func KillAll() { defaultRuntime.KillAll() }

// OnKill registers a cleanup hook on the default runtime.
func OnKill(fn func()) { defaultRuntime.OnKill(fn) }

// KillAllOn installs KillAll on the default runtime for the signals.
func KillAllOn(sig ...os.Signal) { defaultRuntime.KillAllOn(sig...) }
