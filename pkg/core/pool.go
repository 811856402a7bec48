package core

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool is a named admission gate bounding how many units may execute
// their wrapped function at once. A pool with zero workers has no gate:
// every call through it runs synchronously in the caller's goroutine.
//
// Pools are immutable once created. Re-creating a pool under the same
// name through the registry replaces it.
type Pool struct {
	name    string
	workers int
	engine  EngineKind
	gate    *semaphore.Weighted
}

// PoolInfo is a read-only snapshot of a pool's configuration.
type PoolInfo struct {
	Name    string     `json:"name"`
	Workers int        `json:"workers"`
	Engine  EngineKind `json:"engine"`
}

// NewPool builds a pool. Worker counts below 2 normalize to 0
// (unlimited, synchronous): a gate of size 1 would serialize callers,
// which is what the synchronous path already does without the gate.
func NewPool(name string, workers int, kind EngineKind) *Pool {
	if workers < 2 {
		workers = 0
	}
	p := &Pool{
		name:    name,
		workers: workers,
		engine:  kind,
	}
	if workers > 0 {
		p.gate = semaphore.NewWeighted(int64(workers))
	}
	return p
}

// Name returns the pool's unique name.
func (p *Pool) Name() string { return p.name }

// Workers returns the admission capacity; 0 means unlimited.
func (p *Pool) Workers() int { return p.workers }

// Engine returns the execution primitive units of this pool spawn.
func (p *Pool) Engine() EngineKind { return p.engine }

// Unlimited reports whether the pool runs every call synchronously,
// without spawning units.
func (p *Pool) Unlimited() bool { return p.workers == 0 }

// Info returns a snapshot of the pool's configuration.
func (p *Pool) Info() PoolInfo {
	return PoolInfo{Name: p.name, Workers: p.workers, Engine: p.engine}
}

// acquire blocks until an admission slot is free. A nil gate admits
// immediately.
func (p *Pool) acquire() {
	if p.gate == nil {
		return
	}
	// Acquire only fails when the context is cancelled, and admission
	// waits are not cancellable.
	_ = p.gate.Acquire(context.Background(), 1)
}

// release returns an admission slot. Must be called exactly once per
// successful acquire, on every exit path.
func (p *Pool) release() {
	if p.gate == nil {
		return
	}
	p.gate.Release(1)
}
