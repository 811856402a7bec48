// Package multitask runs ordinary functions in the background, subject
// to a per-pool concurrency limit.
//
// A function is wrapped once and then invoked like any other function;
// each invocation is admitted through the active pool's gate, spawned as
// an execution unit and recorded, and the call returns immediately:
//
//	hello := rt.Task(func(ctx context.Context) error {
//		fmt.Println("hello from the background")
//		return nil
//	})
//	for i := 0; i < 10; i++ {
//		hello(context.Background())
//	}
//	rt.WaitForTasks(0)
//
// Pools bound how many units execute at once; a pool with fewer than two
// workers runs every call synchronously in the caller's goroutine.
// WaitForTasks blocks until all spawned units finish, and KillAll
// terminates the process immediately (it is designed to be installed as
// an interrupt handler via KillAllOn).
package multitask
