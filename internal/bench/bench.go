// internal/bench/bench.go
// Package bench drives repeated build/boot cycles of the kernel and appends
// timing statistics to an append-only result file.
package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kaist-cp/rv6-tools/internal/appconfig"
	"github.com/kaist-cp/rv6-tools/internal/buildsys"
	"github.com/kaist-cp/rv6-tools/internal/logging"
	"github.com/kaist-cp/rv6-tools/internal/stats"
)

const (
	scratchFile = "_bench.tmp"
	diskImage   = "fs.img"
	finishMark  = "Finish benchmark"
)

// Runner owns one benchmark run: the build system handle, the result sink,
// and the scratch paths that must not outlive the run.
type Runner struct {
	cfg   *appconfig.Config
	build buildsys.Runner
}

// New returns a Runner for the given configuration and build system.
func New(cfg *appconfig.Config, build buildsys.Runner) *Runner {
	return &Runner{cfg: cfg, build: build}
}

// Run executes the full benchmark: validate, build once, then loop
// boot-measure-reset for the configured iteration count. Each result line is
// written as soon as it is known so partial results survive a crash mid-run.
// Build and boot failures are fatal; only the initial clean is best-effort.
func (r *Runner) Run(ctx context.Context) error {
	cfg := r.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := buildsys.BenchOptions(cfg.ExecCount, cfg.Case, cfg.Option)

	out, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open result file %s: %w", cfg.Output, err)
	}
	defer out.Close()

	scratch := filepath.Join(cfg.Dir, scratchFile)
	disk := filepath.Join(cfg.Dir, diskImage)
	defer os.Remove(scratch)

	fmt.Fprintf(out, "Start benchmark %s\n", time.Now().Format(time.DateTime))

	// The makefile may have nothing to clean on a fresh checkout.
	if err := r.build.Run(ctx, buildsys.TargetClean, opts); err != nil {
		logging.LogEvent("clean failed, continuing: %v", err)
	}
	if err := r.build.Run(ctx, buildsys.TargetKernel, opts); err != nil {
		return fmt.Errorf("build kernel: %w", err)
	}
	if err := r.build.Run(ctx, buildsys.TargetFsImg, opts); err != nil {
		return fmt.Errorf("build disk image: %w", err)
	}

	var wall []float64
	for n := 0; n < cfg.Iter; n++ {
		logging.LogEvent("iteration %d of %d", n+1, cfg.Iter)

		elapsed, err := r.bootOnce(ctx, opts, scratch)
		if err != nil {
			return fmt.Errorf("iteration %d: %w", n, err)
		}

		switch cfg.TimeMode {
		case appconfig.TimeModeWallClock:
			fmt.Fprintf(out, "%s\n", formatFloat(elapsed.Seconds()))
			wall = append(wall, elapsed.Seconds())
		case appconfig.TimeModeCPUClock:
			if err := r.summarizeIteration(out, scratch, n); err != nil {
				return fmt.Errorf("iteration %d: %w", n, err)
			}
		}

		// Boot the next iteration from a pristine disk.
		os.Remove(disk)
		os.Remove(scratch)
		if err := r.build.Run(ctx, buildsys.TargetFsImg, opts); err != nil {
			return fmt.Errorf("rebuild disk image: %w", err)
		}
	}

	if cfg.TimeMode == appconfig.TimeModeWallClock {
		mean, stdev, err := stats.Summarize(wall)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "duration = %s\n", formatFloat(wall[0]))
		fmt.Fprintf(out, "Mean=%s, Standard Deviation=%s, N=%d, Iter=%d\n",
			formatFloat(mean), formatFloat(stdev), cfg.Iter, cfg.ExecCount)
	}
	fmt.Fprintln(out, finishMark)
	return nil
}

// bootOnce runs the boot-and-run target with stdout captured to the scratch
// report file and returns the elapsed wall time around the invocation.
func (r *Runner) bootOnce(ctx context.Context, opts buildsys.Options, scratch string) (time.Duration, error) {
	f, err := os.Create(scratch)
	if err != nil {
		return 0, fmt.Errorf("create scratch report: %w", err)
	}

	begin := time.Now()
	runErr := r.build.RunCapture(ctx, buildsys.TargetQemu, opts, f)
	elapsed := time.Since(begin)

	if cerr := f.Close(); runErr == nil && cerr != nil {
		runErr = cerr
	}
	if runErr != nil {
		return 0, fmt.Errorf("boot: %w", runErr)
	}
	return elapsed, nil
}

// summarizeIteration parses the scratch report and appends one summary line
// per observed test case for this iteration.
func (r *Runner) summarizeIteration(out io.Writer, scratch string, iter int) error {
	f, err := os.Open(scratch)
	if err != nil {
		return fmt.Errorf("open scratch report: %w", err)
	}
	defer f.Close()

	rep, err := ParseReport(f)
	if err != nil {
		return fmt.Errorf("parse scratch report: %w", err)
	}

	if r.cfg.Verbose {
		for _, line := range rep.Lines() {
			fmt.Fprintln(out, line)
		}
	}

	for _, name := range rep.Tests() {
		mean, stdev, err := stats.Summarize(rep.Samples(name))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Test=%s, Iter=%d, ExecCount=%d, Mean=%s, Standard Deviation=%s\n",
			name, iter, r.cfg.ExecCount, formatFloat(mean), formatFloat(stdev))
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
