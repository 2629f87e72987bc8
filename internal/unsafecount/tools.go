// internal/unsafecount/tools.go
// Package unsafecount audits the ratio of unsafe-marked lines to code lines,
// per file and in aggregate, by wrapping external counting tools.
package unsafecount

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// External tools the auditor shells out to.
const (
	unsafeCounterTool = "count-unsafe"
	lineCounterTool   = "cloc"
	combinedTool      = "cargo-count"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// CheckTools verifies the required external counters are installed before any
// measurement happens. The returned error carries installation guidance.
func CheckTools(trace bool) error {
	if _, err := lookPath(unsafeCounterTool); err != nil {
		return fmt.Errorf("%s not found; install it with:\n  rustup update nightly && cargo +nightly install --git https://github.com/efenniht/count-unsafe", unsafeCounterTool)
	}
	if _, err := lookPath(lineCounterTool); err != nil {
		return fmt.Errorf("%s not found; install it with `apt install cloc`", lineCounterTool)
	}
	if trace {
		if _, err := lookPath(combinedTool); err != nil {
			return fmt.Errorf("%s not found; install it with `cargo install cargo-count`", combinedTool)
		}
	}
	return nil
}

// runTool invokes one external counter and returns its stdout.
func runTool(ctx context.Context, dir, name string, args ...string) (string, error) {
	var out, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w\nstderr: %s", name, err, strings.TrimSpace(errBuf.String()))
	}
	return out.String(), nil
}
