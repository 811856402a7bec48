package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func startUnit(p *Pool, fn TaskFunc) *Unit {
	u := NewUnit(p.Name(), p.Engine())
	u.Start(context.Background(), p, fn, UnitHooks{})
	return u
}

func TestUnit_Lifecycle(t *testing.T) {
	p := NewPool("p", 2, EngineThread)

	release := make(chan struct{})
	u := startUnit(p, func(ctx context.Context) error {
		<-release
		return nil
	})

	if !u.Alive() {
		t.Error("unit should be alive before its function returns")
	}
	if u.Join(10 * time.Millisecond) {
		t.Error("Join should time out while the unit is running")
	}

	close(release)

	if !u.Join(time.Second) {
		t.Fatal("Join should observe completion")
	}
	if u.Alive() {
		t.Error("unit should not be alive after completion")
	}
	if u.Err() != nil {
		t.Errorf("Err() = %v, want nil", u.Err())
	}
}

func TestUnit_CapturesError(t *testing.T) {
	p := NewPool("p", 2, EngineThread)
	want := errors.New("boom")

	u := startUnit(p, func(ctx context.Context) error { return want })
	u.Join(0)

	if !errors.Is(u.Err(), want) {
		t.Errorf("Err() = %v, want %v", u.Err(), want)
	}
}

func TestUnit_CapturesPanic(t *testing.T) {
	p := NewPool("p", 2, EngineThread)

	u := startUnit(p, func(ctx context.Context) error { panic("kaput") })
	u.Join(0)

	if u.Err() == nil || !strings.Contains(u.Err().Error(), "kaput") {
		t.Errorf("Err() = %v, want panic value", u.Err())
	}
}

func TestUnit_ReleasesSlotOnPanic(t *testing.T) {
	// Capacity 2: if the panicking units leaked their slots, the third
	// unit could never be admitted.
	p := NewPool("p", 2, EngineThread)

	for i := 0; i < 2; i++ {
		u := startUnit(p, func(ctx context.Context) error { panic("leak?") })
		u.Join(0)
	}

	done := startUnit(p, func(ctx context.Context) error { return nil })
	if !done.Join(time.Second) {
		t.Fatal("slot was not released after a panicking unit")
	}
}

func TestUnit_ProcessEngine(t *testing.T) {
	p := NewPool("p", 2, EngineProcess)

	ran := make(chan struct{})
	u := startUnit(p, func(ctx context.Context) error {
		close(ran)
		return nil
	})

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("process-engine unit never ran")
	}
	u.Join(0)

	if u.Engine() != EngineProcess {
		t.Errorf("Engine() = %v, want %v", u.Engine(), EngineProcess)
	}
}

func TestUnit_Identity(t *testing.T) {
	p := NewPool("p", 2, EngineThread)

	a := startUnit(p, func(ctx context.Context) error { return nil })
	b := startUnit(p, func(ctx context.Context) error { return nil })
	a.Join(0)
	b.Join(0)

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("unit IDs should be unique, got %q and %q", a.ID(), b.ID())
	}
	if a.Pool() != "p" {
		t.Errorf("Pool() = %q, want %q", a.Pool(), "p")
	}
	if a.CreatedAt().IsZero() {
		t.Error("CreatedAt() should be set")
	}
	if !strings.Contains(a.String(), a.ID()) {
		t.Errorf("String() = %q should contain the unit ID", a)
	}
}
