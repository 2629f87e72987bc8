// internal/gitutil/gitutil.go
// Package gitutil wraps the git operations needed for revision-range audits.
package gitutil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func run(ctx context.Context, dir string, args ...string) (string, error) {
	var out, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\nstderr: %s", args[0], err, strings.TrimSpace(errBuf.String()))
	}
	return out.String(), nil
}

// ParseRange splits a revision range expression of the form "start..end".
func ParseRange(expr string) (start, end string, err error) {
	start, end, ok := strings.Cut(expr, "..")
	if !ok || start == "" || end == "" {
		return "", "", fmt.Errorf("revision range must have the form start..end, got %q", expr)
	}
	return start, end, nil
}

// RevRange lists the commits reachable from end but not from start, oldest
// first: start itself is excluded, end is included.
func RevRange(ctx context.Context, dir, start, end string) ([]string, error) {
	out, err := run(ctx, dir, "rev-list", "--reverse", start+".."+end)
	if err != nil {
		return nil, err
	}
	var revs []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			revs = append(revs, line)
		}
	}
	return revs, nil
}

// Checkout switches the worktree to the given revision.
func Checkout(ctx context.Context, dir, rev string) error {
	_, err := run(ctx, dir, "checkout", "--quiet", rev)
	return err
}

// Head returns the commit id the worktree currently points at.
func Head(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
