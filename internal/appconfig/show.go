// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		fmt.Fprintln(out, "No configuration resolved.")
		return
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Iterations:     %d\n", cfg.Iter)
	fmt.Fprintf(out, "  Exec Count:     %d\n", cfg.ExecCount)
	fmt.Fprintf(out, "  Test Case:      %s\n", orUnset(cfg.Case))
	fmt.Fprintf(out, "  Time Mode:      %s\n", cfg.TimeMode)
	fmt.Fprintf(out, "  Verbose:        %v\n", cfg.Verbose)
	fmt.Fprintf(out, "  Make Option:    %s\n", cfg.Option)
	fmt.Fprintf(out, "  Output:         %s\n", cfg.Output)
	fmt.Fprintf(out, "  Build Dir:      %s\n", orUnset(cfg.Dir))
	fmt.Fprintf(out, "  Audit Pattern:  %s\n", cfg.Pattern)
	fmt.Fprintf(out, "  Debug:          %v\n", cfg.Debug)
	if cfg.LogFile != "" {
		fmt.Fprintf(out, "  Log File:       %s\n", cfg.LogFile)
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
