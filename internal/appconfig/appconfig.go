// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"fmt"
)

// Timing disciplines accepted by the benchmark runner.
const (
	// TimeModeCPUClock derives timings from marker lines the booted kernel
	// prints on its own console.
	TimeModeCPUClock = "cpu-clock"
	// TimeModeWallClock derives timings from host-side elapsed real time
	// around each boot.
	TimeModeWallClock = "wall-clock"
)

// Defaults applied when neither a flag nor a config file sets a value.
const (
	DefaultConfigPath = "config/config.json"
	DefaultIter       = 10
	DefaultExecCount  = 10
	DefaultTimeMode   = TimeModeCPUClock
	DefaultOption     = "RUST_MODE=release"
	DefaultOutput     = "bench.result"
	DefaultPattern    = "kernel-rs/**/*.rs"
)

// Config represents the top-level application configuration.
type Config struct {
	Iter       int    `json:"iter"`
	ExecCount  int    `json:"execcount"`
	Case       string `json:"case"`
	TimeMode   string `json:"timemode"`
	Verbose    bool   `json:"verbose"`
	Option     string `json:"option"`
	Output     string `json:"output"`
	Dir        string `json:"dir"`
	Pattern    string `json:"pattern"`
	Debug      bool   `json:"debug"`
	LogFile    string `json:"logFile,omitempty"`
	ConfigPath string `json:"-"`
}

// Validate rejects configurations the benchmark runner cannot act on. It runs
// before any side effect so a bad timing mode never touches the result file.
func (c Config) Validate() error {
	if c.TimeMode != TimeModeCPUClock && c.TimeMode != TimeModeWallClock {
		return fmt.Errorf("timemode must be %q or %q, got %q", TimeModeCPUClock, TimeModeWallClock, c.TimeMode)
	}
	if c.Iter < 1 {
		return fmt.Errorf("iter must be at least 1, got %d", c.Iter)
	}
	if c.ExecCount < 1 {
		return fmt.Errorf("execcount must be at least 1, got %d", c.ExecCount)
	}
	return nil
}
