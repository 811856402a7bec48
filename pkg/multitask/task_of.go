package multitask

import (
	"context"

	"github.com/multitaskio/multitask/pkg/core"
)

// TaskOf wraps a function taking one typed argument. Each call captures
// the argument and follows the same per-call protocol as Runtime.Task.
func TaskOf[T any](r *Runtime, fn func(ctx context.Context, arg T) error) func(ctx context.Context, arg T) *core.Unit {
	return func(ctx context.Context, arg T) *core.Unit {
		return r.Task(func(ctx context.Context) error {
			return fn(ctx, arg)
		})(ctx)
	}
}

// TaskOf2 is TaskOf for functions taking two typed arguments.
func TaskOf2[A, B any](r *Runtime, fn func(ctx context.Context, a A, b B) error) func(ctx context.Context, a A, b B) *core.Unit {
	return func(ctx context.Context, a A, b B) *core.Unit {
		return r.Task(func(ctx context.Context) error {
			return fn(ctx, a, b)
		})(ctx)
	}
}
