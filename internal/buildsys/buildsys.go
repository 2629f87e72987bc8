// internal/buildsys/buildsys.go
// Package buildsys drives the kernel's make-based build system.
package buildsys

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Build targets exposed by the kernel makefile.
const (
	TargetClean  = "clean"
	TargetKernel = "kernel/kernel"
	TargetFsImg  = "fs.img"
	TargetQemu   = "qemu"
)

// Options is the ordered key=value list handed to every make invocation.
type Options []string

// BenchOptions assembles the build options for a benchmark run: the internal
// execution repeat count, the usertest/bench enable flags, the optional
// test-case filter, and any free-form extra options split on whitespace.
func BenchOptions(execCount int, testCase, extra string) Options {
	opts := Options{
		fmt.Sprintf("ITER=%d", execCount),
		"USERTEST=yes",
		"BENCH=yes",
		fmt.Sprintf("CASE=%s", testCase),
	}
	return append(opts, strings.Fields(extra)...)
}

// Runner abstracts the build system so the benchmark loop can be exercised
// without a kernel checkout.
type Runner interface {
	// Run invokes a build target, inheriting stdout and stderr.
	Run(ctx context.Context, target string, opts Options) error
	// RunCapture invokes a build target with stdout redirected to the given
	// writer and stderr discarded.
	RunCapture(ctx context.Context, target string, opts Options, stdout io.Writer) error
}

// Make is the real Runner, shelling out to GNU make in a fixed directory.
type Make struct {
	Dir string
}

// NewMake returns a Make runner rooted at dir.
func NewMake(dir string) *Make {
	return &Make{Dir: dir}
}

// Run implements Runner.
func (m *Make) Run(ctx context.Context, target string, opts Options) error {
	cmd := m.command(ctx, target, opts)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("make %s failed (exit %d): %w", target, ExitStatus(err), err)
	}
	return nil
}

// RunCapture implements Runner. The boot target is noisy on stderr, so only
// stdout is kept: that is where the timing marker lines arrive.
func (m *Make) RunCapture(ctx context.Context, target string, opts Options, stdout io.Writer) error {
	cmd := m.command(ctx, target, opts)
	cmd.Stdout = stdout
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("make %s failed (exit %d): %w", target, ExitStatus(err), err)
	}
	return nil
}

func (m *Make) command(ctx context.Context, target string, opts Options) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "make", append([]string{target}, opts...)...)
	if m.Dir != "" {
		cmd.Dir = m.Dir
	}
	return cmd
}

// ExitStatus extracts the subprocess exit code from a Run error, or -1 when
// the process never ran.
func ExitStatus(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
