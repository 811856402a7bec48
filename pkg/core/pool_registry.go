package core

import (
	"runtime"
	"sync"
)

// DefaultPoolName is the pool created implicitly when a task-wrapped
// function is invoked before any pool exists.
const DefaultPoolName = "main"

// Unlimited can be passed as PoolConfig.Workers to request the
// synchronous, ungated mode explicitly.
const Unlimited = -1

// PoolConfig configures CreatePool. Zero values select the registry
// defaults.
type PoolConfig struct {
	// Workers is the admission capacity. 0 selects the registry default,
	// negative values (see Unlimited) select the ungated synchronous
	// mode, and 1 normalizes to unlimited as well.
	Workers int

	// Engine selects the execution primitive. The empty string selects
	// the registry default.
	Engine EngineKind
}

// PoolRegistry owns the named pools, the active-pool pointer and the
// defaults applied to pools created later.
//
// Ownership and lifecycle: the registry owns every pool it creates;
// pools are never destroyed, they live as long as the registry. At most
// one pool is active at a time, and creating a pool activates it.
type PoolRegistry struct {
	mu       sync.RWMutex
	pools    map[string]*Pool
	active   string
	defaults struct {
		workers int
		engine  EngineKind
	}
}

// NewPoolRegistry creates an empty registry. The default capacity is the
// host CPU count and the default engine is EngineThread.
func NewPoolRegistry() *PoolRegistry {
	r := &PoolRegistry{
		pools: make(map[string]*Pool),
	}
	r.defaults.workers = runtime.NumCPU()
	r.defaults.engine = EngineThread
	return r
}

// SetMaxWorkers sets the default capacity for pools created afterwards.
// Values of zero or less reset it to the host CPU count. Existing pools
// are unaffected.
func (r *PoolRegistry) SetMaxWorkers(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 {
		n = runtime.NumCPU()
	}
	r.defaults.workers = n
}

// MaxWorkers returns the current default capacity.
func (r *PoolRegistry) MaxWorkers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults.workers
}

// SetEngine sets the default engine kind for pools created afterwards.
// Existing pools are unaffected.
func (r *PoolRegistry) SetEngine(kind EngineKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if kind == "" {
		kind = EngineThread
	}
	r.defaults.engine = kind
}

// Engine returns the current default engine kind.
func (r *PoolRegistry) Engine() EngineKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults.engine
}

// CreatePool builds a pool from cfg and makes it the active pool.
// Creating a pool under an existing name replaces the old pool. Pool
// creation does not touch the registry defaults; use SetMaxWorkers and
// SetEngine for that.
func (r *PoolRegistry) CreatePool(name string, cfg PoolConfig) *Pool {
	r.mu.Lock()
	defer r.mu.Unlock()

	workers := cfg.Workers
	if workers == 0 {
		workers = r.defaults.workers
	}
	if workers < 0 {
		workers = 0
	}

	kind := cfg.Engine
	if kind == "" {
		kind = r.defaults.engine
	}

	p := NewPool(name, workers, kind)
	r.pools[name] = p
	r.active = name
	return p
}

// Get returns the pool registered under exactly the given name.
func (r *PoolRegistry) Get(name string) (*Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pools[name]
	if !ok {
		return nil, &PoolNotFoundError{Name: name}
	}
	return p, nil
}

// Active returns the active pool, creating the default "main" pool from
// the current defaults if no pool exists yet.
func (r *PoolRegistry) Active() *Pool {
	r.mu.RLock()
	if p, ok := r.pools[r.active]; ok {
		r.mu.RUnlock()
		return p
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pools[r.active]; ok {
		return p
	}
	p := NewPool(DefaultPoolName, r.defaults.workers, r.defaults.engine)
	r.pools[DefaultPoolName] = p
	r.active = DefaultPoolName
	return p
}

// Names returns the registered pool names, in no particular order.
func (r *PoolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pools))
	for name := range r.pools {
		names = append(names, name)
	}
	return names
}
