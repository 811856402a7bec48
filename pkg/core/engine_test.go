package core

import "testing"

func TestParseEngineKind(t *testing.T) {
	tests := []struct {
		in   string
		want EngineKind
	}{
		{"process", EngineProcess},
		{"Process", EngineProcess},
		{"multiprocessing", EngineProcess},
		{"PROCESS-pool", EngineProcess},
		{"thread", EngineThread},
		{"threading", EngineThread},
		{"goroutine", EngineThread},
		{"", EngineThread},
	}

	for _, tc := range tests {
		if got := ParseEngineKind(tc.in); got != tc.want {
			t.Errorf("ParseEngineKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEngineKindString(t *testing.T) {
	if got := EngineThread.String(); got != "thread" {
		t.Errorf("EngineThread.String() = %q", got)
	}
	if got := EngineProcess.String(); got != "process" {
		t.Errorf("EngineProcess.String() = %q", got)
	}
}
