// internal/unsafecount/trace.go
package unsafecount

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kaist-cp/rv6-tools/internal/gitutil"
)

var (
	revHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	tableBorder     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tableHeaderCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCell       = lipgloss.NewStyle().Padding(0, 1)
)

// Tracer audits unsafe counts across a chronological revision range,
// reporting each file's absolute ratio at the first revision and a
// current(delta) row per file for every revision after it.
type Tracer struct {
	Dir     string
	Pattern string
	Out     io.Writer

	revRange  func(ctx context.Context, dir, start, end string) ([]string, error)
	checkout  func(ctx context.Context, dir, rev string) error
	head      func(ctx context.Context, dir string) (string, error)
	listFiles func(dir, pattern string) ([]string, error)
	countFile func(ctx context.Context, dir, file string) (Counts, error)
}

// NewTracer returns a Tracer wired to git and the real combined counter.
func NewTracer(dir, pattern string, out io.Writer) *Tracer {
	return &Tracer{
		Dir:       dir,
		Pattern:   pattern,
		Out:       out,
		revRange:  gitutil.RevRange,
		checkout:  gitutil.Checkout,
		head:      gitutil.Head,
		listFiles: globFiles,
		countFile: countFileCombined,
	}
}

func countFileCombined(ctx context.Context, dir, file string) (Counts, error) {
	out, err := runTool(ctx, dir, combinedTool, "count", "--unsafe-statistics", file)
	if err != nil {
		return Counts{}, err
	}
	return ParseCombined(out)
}

// Run audits every revision in rangeExpr (exclusive start, inclusive end,
// oldest first). The worktree is restored to its original revision on exit.
// Checkout failures are fatal; a file whose counter output cannot be parsed
// is reported and recorded as unmeasured for that revision.
func (t *Tracer) Run(ctx context.Context, rangeExpr string) error {
	start, end, err := gitutil.ParseRange(rangeExpr)
	if err != nil {
		return err
	}

	revs, err := t.revRange(ctx, t.Dir, start, end)
	if err != nil {
		return err
	}
	if len(revs) == 0 {
		return fmt.Errorf("no revisions in range %s", rangeExpr)
	}

	orig, err := t.head(ctx, t.Dir)
	if err != nil {
		return err
	}
	defer func() {
		// Best effort: the audit must not leave the worktree detached at an
		// arbitrary revision.
		_ = t.checkout(context.Background(), t.Dir, orig)
	}()

	perRev := make([]map[string]Counts, 0, len(revs))
	seen := make(map[string]struct{})
	for _, rev := range revs {
		if err := t.checkout(ctx, t.Dir, rev); err != nil {
			return fmt.Errorf("checkout %s: %w", rev, err)
		}
		files, err := t.listFiles(t.Dir, t.Pattern)
		if err != nil {
			return fmt.Errorf("expand pattern at %s: %w", rev, err)
		}

		counts := make(map[string]Counts, len(files))
		for _, file := range files {
			c, err := t.countFile(ctx, t.Dir, file)
			if err != nil {
				fmt.Fprintf(t.Out, "%s\n", warnStyle.Sprintf("cannot count %s at %s: %v", file, shortRev(rev), err))
				continue
			}
			counts[file] = c
			seen[file] = struct{}{}
		}
		perRev = append(perRev, counts)
	}

	union := make([]string, 0, len(seen))
	for file := range seen {
		union = append(union, file)
	}
	sort.Strings(union)

	t.printBaseline(revs[0], perRev[0], union)
	for i := 1; i < len(revs); i++ {
		t.printDelta(revs[i], perRev[i], perRev[i-1], union)
	}
	return nil
}

// printBaseline reports each file's absolute ratio at the first revision.
func (t *Tracer) printBaseline(rev string, counts map[string]Counts, union []string) {
	fmt.Fprintln(t.Out, revHeaderStyle.Render("Revision "+shortRev(rev)))
	for _, file := range union {
		c, ok := counts[file]
		if !ok {
			continue
		}
		fmt.Fprintf(t.Out, "%s : %d/%d = %d%%\n", fileStyle.Sprint(file), c.Unsafe, c.Code, c.Percent())
	}
}

// printDelta renders one current(delta) row per file against the immediately
// preceding revision. Files absent in either revision count as a zero pair.
func (t *Tracer) printDelta(rev string, counts, prev map[string]Counts, union []string) {
	fmt.Fprintln(t.Out, revHeaderStyle.Render("Revision "+shortRev(rev)))

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderCell
			}
			return tableCell
		}).
		Headers("File", "Code", "Unsafe")

	for _, file := range union {
		cur := counts[file]
		delta := cur.Sub(prev[file])
		tbl.Row(file, cellValue(cur.Code, delta.Code), cellValue(cur.Unsafe, delta.Unsafe))
	}

	fmt.Fprintln(t.Out, tbl.Render())
}

func cellValue(current, delta int) string {
	return fmt.Sprintf("%d(%+d)", current, delta)
}

func shortRev(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}
