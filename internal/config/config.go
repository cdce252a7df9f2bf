// Package config manages billwatch settings: loading, validation, and
// persistence. Validation is total; malformed input degrades to defaults
// instead of failing, so the widget can always start.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Mode selects the cost data source.
type Mode string

const (
	ModeLive      Mode = "live"
	ModeSimulated Mode = "simulated"
)

const (
	DefaultBudget   = 100.0
	DefaultInterval = 30
	MinInterval     = 10
	MaxInterval     = 300
)

// Settings holds validated widget configuration. Invariants after Validate:
// Budget > 0 and RefreshIntervalSec within [MinInterval, MaxInterval].
type Settings struct {
	Budget             float64 `toml:"budget"`
	RefreshIntervalSec int     `toml:"refresh_interval"`
	Mode               Mode    `toml:"data_source"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Budget:             DefaultBudget,
		RefreshIntervalSec: DefaultInterval,
		Mode:               ModeLive,
	}
}

// ClampInterval bounds a refresh interval to [MinInterval, MaxInterval].
func ClampInterval(sec int) int {
	if sec < MinInterval {
		return MinInterval
	}
	if sec > MaxInterval {
		return MaxInterval
	}
	return sec
}

// Validate normalizes raw decoded settings into a valid Settings value.
// Every malformed or missing field falls back to its default: intervals
// clamp to [10, 300] (non-numeric becomes 30), non-positive budgets become
// 100.0, and unrecognized modes become live. Validation is idempotent on
// already-valid input.
func Validate(raw map[string]any) Settings {
	s := Default()
	if raw == nil {
		return s
	}

	if v, ok := asFloat(raw["budget"]); ok && v > 0 {
		s.Budget = v
	}
	if v, ok := asFloat(raw["refresh_interval"]); ok {
		s.RefreshIntervalSec = ClampInterval(int(v))
	}
	if v, ok := raw["data_source"].(string); ok {
		if m := Mode(v); m == ModeLive || m == ModeSimulated {
			s.Mode = m
		}
	}

	return s
}

// asFloat coerces TOML scalar types to float64. Numeric strings are
// accepted for compatibility with hand-edited config files.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "billwatch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "billwatch")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads and validates the config file at path. A missing, unreadable,
// or malformed file yields defaults; field-level problems degrade per field.
func Load(path string) Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default()
	}

	return Validate(raw)
}

// Save writes the settings to disk.
func Save(s Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(s)
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
