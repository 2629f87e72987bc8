// internal/unsafecount/command.go
package unsafecount

import (
	"context"
	"io"
)

// RunAudit is the CLI entry point for the unsafe-code auditor. In snapshot
// mode selector is the glob pattern to audit; in trace mode it is a
// start..end revision range and pattern selects the files at each revision.
// Tool availability is verified before any measurement or output.
func RunAudit(ctx context.Context, dir, selector, pattern string, trace bool, out io.Writer) error {
	if err := CheckTools(trace); err != nil {
		return err
	}
	if trace {
		return NewTracer(dir, pattern, out).Run(ctx, selector)
	}
	return NewSnapshot(dir, selector, out).Run(ctx)
}
