// internal/unsafecount/snapshot.go
package unsafecount

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
)

var (
	fileStyle  = color.New(color.FgCyan)
	totalStyle = color.New(color.Bold)
	warnStyle  = color.New(color.FgYellow)
)

// Snapshot audits the current worktree: per-file unsafe/code ratios for every
// file matching the glob pattern, then a combined total.
type Snapshot struct {
	Dir     string
	Pattern string
	Out     io.Writer

	runTool   func(ctx context.Context, dir, name string, args ...string) (string, error)
	listFiles func(dir, pattern string) ([]string, error)
}

// NewSnapshot returns a Snapshot wired to the real external tools.
func NewSnapshot(dir, pattern string, out io.Writer) *Snapshot {
	return &Snapshot{
		Dir:       dir,
		Pattern:   pattern,
		Out:       out,
		runTool:   runTool,
		listFiles: globFiles,
	}
}

func globFiles(dir, pattern string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	return doublestar.Glob(os.DirFS(dir), pattern)
}

// Run performs the snapshot audit. Files whose line count cannot be parsed
// are reported and skipped; they do not abort the run and do not contribute
// to the totals.
func (s *Snapshot) Run(ctx context.Context) error {
	raw, err := s.runTool(ctx, s.Dir, unsafeCounterTool, s.Pattern)
	if err != nil {
		return err
	}
	records, err := ParseUnsafeRecords(strings.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse %s output: %w", unsafeCounterTool, err)
	}
	unsafeTotals := SumUnsafe(records)

	files, err := s.listFiles(s.Dir, s.Pattern)
	if err != nil {
		return fmt.Errorf("expand pattern %q: %w", s.Pattern, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("pattern %q matched no files", s.Pattern)
	}

	var total Counts
	for _, file := range files {
		out, err := s.runTool(ctx, s.Dir, lineCounterTool, file)
		var code int
		if err == nil {
			code, err = ParseClocCode(out)
		}
		if err != nil {
			fmt.Fprintf(s.Out, "%s\n", warnStyle.Sprintf("cannot count %s: %v", file, err))
			continue
		}

		c := Counts{Code: code, Unsafe: unsafeTotals[file]}
		total.Code += c.Code
		total.Unsafe += c.Unsafe
		fmt.Fprintf(s.Out, "%s : %d/%d = %d%%\n", fileStyle.Sprint(file), c.Unsafe, c.Code, c.Percent())
	}

	fmt.Fprintln(s.Out, totalStyle.Sprint("Total:"))
	fmt.Fprintf(s.Out, "%d/%d = %d%%\n", total.Unsafe, total.Code, total.Percent())
	return nil
}
