package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/multitaskio/multitask/pkg/core"
	"github.com/multitaskio/multitask/pkg/multitask"
)

// Config is the on-disk configuration for a Runtime.
type Config struct {
	// MaxWorkers is the default admission capacity for new pools.
	// Zero or negative values mean "host CPU count".
	MaxWorkers int `yaml:"max_workers" json:"max_workers"`

	// Engine is the default engine kind ("thread" or "process"); any
	// string containing "process" selects the process engine.
	Engine string `yaml:"engine" json:"engine"`

	// Pools are created in order; the last one becomes active.
	Pools []PoolConfig `yaml:"pools" json:"pools"`
}

// PoolConfig describes one named pool.
type PoolConfig struct {
	Name string `yaml:"name" json:"name"`

	// Workers tolerates non-numeric values: they fall back to the
	// runtime default instead of failing the load.
	Workers WorkerCount `yaml:"workers" json:"workers"`

	Engine string `yaml:"engine" json:"engine"`
}

// Load loads configuration from a file (YAML or JSON), detecting the
// format by extension. Unknown extensions default to YAML.
func Load(path string, target interface{}) error {
	if strings.HasSuffix(path, ".json") {
		return LoadJSON(path, target)
	}
	return LoadYAML(path, target)
}

// LoadWithEnv loads configuration from a file and applies environment
// variable overrides. Variables use the format PREFIX_FIELD_SUBFIELD
// (e.g. MULTITASK_MAX_WORKERS).
func LoadWithEnv(path string, prefix string, target interface{}) error {
	if err := Load(path, target); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	if err := ApplyEnvOverrides(prefix, target); err != nil {
		return fmt.Errorf("failed to apply env overrides: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides to a
// configuration struct via reflection.
func ApplyEnvOverrides(prefix string, target interface{}) error {
	if prefix == "" {
		prefix = "MULTITASK"
	}
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to a struct")
	}
	return applyEnvToStruct(prefix, val.Elem())
}

func applyEnvToStruct(prefix string, val reflect.Value) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		name := prefix + "_" + strings.ToUpper(toSnake(field.Name))

		if fieldVal.Kind() == reflect.Struct {
			if err := applyEnvToStruct(name, fieldVal); err != nil {
				return err
			}
			continue
		}

		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := setField(fieldVal, raw); err != nil {
			return fmt.Errorf("env %s: %w", name, err)
		}
	}
	return nil
}

func setField(val reflect.Value, raw string) error {
	switch val.Kind() {
	case reflect.String:
		val.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		val.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		val.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", val.Kind())
	}
	return nil
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Validate checks cfg for hard errors: empty or duplicate pool names.
// Soft problems (bad worker counts, unknown engine strings) are not
// errors; Apply degrades them to defaults.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Pools))
	for _, p := range c.Pools {
		if p.Name == "" {
			return fmt.Errorf("pool name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate pool name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Apply configures rt from cfg: defaults first, then pools in order (the
// last pool created becomes active). Invalid values fall back to the
// runtime defaults rather than failing.
func Apply(cfg *Config, rt *multitask.Runtime) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	rt.SetMaxWorkers(cfg.MaxWorkers)
	if cfg.Engine != "" {
		rt.SetEngine(core.ParseEngineKind(cfg.Engine))
	}

	for _, p := range cfg.Pools {
		pc := core.PoolConfig{Workers: int(p.Workers)}
		if p.Engine != "" {
			pc.Engine = core.ParseEngineKind(p.Engine)
		}
		rt.CreatePool(p.Name, pc)
	}
	return nil
}
