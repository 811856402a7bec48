package core

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskFunc is a unit of background work. The context carries values from
// the call site; the scheduler itself never cancels it.
type TaskFunc func(ctx context.Context) error

// UnitHooks observe unit lifecycle events. The runtime uses them to feed
// metrics and logging; any field may be nil.
type UnitHooks struct {
	// OnStart fires after the unit has been admitted through the gate,
	// immediately before the wrapped function runs.
	OnStart func(u *Unit)

	// OnFinish fires after the wrapped function returns or panics.
	// d is the execution time measured from admission.
	OnFinish func(u *Unit, d time.Duration, err error)
}

// Unit is one background invocation of a wrapped function. It is created
// by the task wrapper, recorded in the task registry, and joined during
// graceful shutdown. Units cannot be cancelled; they always run to
// completion.
type Unit struct {
	id        string
	pool      string
	engine    EngineKind
	createdAt time.Time

	done chan struct{}

	mu  sync.Mutex
	err error
}

// NewUnit creates an unstarted unit bound to the given pool.
func NewUnit(pool string, kind EngineKind) *Unit {
	return &Unit{
		id:        uuid.New().String(),
		pool:      pool,
		engine:    kind,
		createdAt: time.Now(),
		done:      make(chan struct{}),
	}
}

// Start launches the unit. The admission slot is acquired inside the
// spawned goroutine, so Start never blocks the caller; only the start of
// fn's real work is gated. The slot is released on every exit path,
// including a panicking fn. Start must be called at most once.
func (u *Unit) Start(ctx context.Context, p *Pool, fn TaskFunc, hooks UnitHooks) {
	go func() {
		defer close(u.done)

		if u.engine == EngineProcess {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
		}

		p.acquire()
		defer p.release()

		start := time.Now()
		if hooks.OnStart != nil {
			hooks.OnStart(u)
		}

		err := invoke(ctx, fn)
		u.setErr(err)

		if hooks.OnFinish != nil {
			hooks.OnFinish(u, time.Since(start), err)
		}
	}()
}

// invoke runs fn, converting a panic into an error so a fault terminates
// only this unit.
func invoke(ctx context.Context, fn TaskFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
		}
	}()
	return fn(ctx)
}

// ID returns the unit's unique identifier.
func (u *Unit) ID() string { return u.id }

// Pool returns the name of the pool the unit was admitted through.
func (u *Unit) Pool() string { return u.pool }

// Engine returns the execution primitive backing the unit.
func (u *Unit) Engine() EngineKind { return u.engine }

// CreatedAt returns the unit's creation time.
func (u *Unit) CreatedAt() time.Time { return u.createdAt }

// Alive reports whether the wrapped function is still running (or still
// waiting for admission).
func (u *Unit) Alive() bool {
	select {
	case <-u.done:
		return false
	default:
		return true
	}
}

// Join blocks until the unit finishes or the timeout elapses. A timeout
// of zero or less waits indefinitely. It reports whether the unit
// finished within the wait.
func (u *Unit) Join(timeout time.Duration) bool {
	if timeout <= 0 {
		<-u.done
		return true
	}
	select {
	case <-u.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Err returns the fault captured from the wrapped function: its error
// return, or an error wrapping the value it panicked with. Nil while the
// unit is alive and after a clean finish.
func (u *Unit) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

func (u *Unit) setErr(err error) {
	u.mu.Lock()
	u.err = err
	u.mu.Unlock()
}

func (u *Unit) String() string {
	return fmt.Sprintf("unit %s [pool=%s engine=%s alive=%t]", u.id, u.pool, u.engine, u.Alive())
}
