package multitask

import (
	"os"
	"os/signal"
	"time"
)

// KillAllOn installs KillAll as the handler for the given signals, so
// e.g. an interrupt tears the process down immediately:
//
//	rt.KillAllOn(os.Interrupt)
func (r *Runtime) KillAllOn(sig ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig...)
	go func() {
		<-ch
		r.KillAll()
	}()
}

// WaitForTasksOn drains gracefully when one of the given signals
// arrives. done, if non-nil, is closed once the drain completes.
func (r *Runtime) WaitForTasksOn(poll time.Duration, done chan<- struct{}, sig ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig...)
	go func() {
		<-ch
		r.WaitForTasks(poll)
		if done != nil {
			close(done)
		}
	}()
}
