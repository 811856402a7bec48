package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/multitaskio/multitask/pkg/core"
)

// WorkerCount is a pool capacity read from a config file. Decoding is
// deliberately lenient, mirroring the admission rules:
//
//   - an absent field stays 0, which Apply maps to the runtime default;
//   - an explicit 0 (or negative) means unlimited/synchronous, so it is
//     stored as core.Unlimited to keep it distinct from "absent";
//   - a non-numeric value is a recoverable misconfiguration and falls
//     back to the runtime default instead of failing the load.
type WorkerCount int

func normalizeWorkers(n int) WorkerCount {
	if n <= 0 {
		return WorkerCount(core.Unlimited)
	}
	return WorkerCount(n)
}

func (w *WorkerCount) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err != nil {
		*w = 0
		return nil
	}
	*w = normalizeWorkers(n)
	return nil
}

func (w *WorkerCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		*w = 0
		return nil
	}
	*w = normalizeWorkers(n)
	return nil
}
