package core

import "strings"

// EngineKind selects the execution primitive backing an ExecutionUnit.
// It is fixed per pool at creation time.
type EngineKind string

const (
	// EngineThread runs units on plain goroutines.
	EngineThread EngineKind = "thread"

	// EngineProcess runs each unit on its own dedicated OS thread.
	// Go closures cannot cross an address-space boundary, so a locked
	// kernel thread is the closest isolation primitive available.
	EngineProcess EngineKind = "process"
)

// ParseEngineKind maps a free-form configuration string to an EngineKind.
// Any string containing "process" (case-insensitive) selects EngineProcess;
// everything else, including the empty string, selects EngineThread.
func ParseEngineKind(s string) EngineKind {
	if strings.Contains(strings.ToLower(s), "process") {
		return EngineProcess
	}
	return EngineThread
}

func (k EngineKind) String() string {
	if k == EngineProcess {
		return "process"
	}
	return "thread"
}
