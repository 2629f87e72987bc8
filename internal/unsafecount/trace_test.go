package unsafecount

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeRepo scripts a short history for the tracer: files and counts are
// keyed by revision.
type fakeRepo struct {
	revs      []string
	files     map[string][]string
	counts    map[string]map[string]Counts
	checkouts []string
	current   string
}

func (f *fakeRepo) tracer(out *bytes.Buffer) *Tracer {
	return &Tracer{
		Pattern: "**/*.rs",
		Out:     out,
		revRange: func(ctx context.Context, dir, start, end string) ([]string, error) {
			return f.revs, nil
		},
		checkout: func(ctx context.Context, dir, rev string) error {
			f.checkouts = append(f.checkouts, rev)
			f.current = rev
			return nil
		},
		head: func(ctx context.Context, dir string) (string, error) {
			return "original-head", nil
		},
		listFiles: func(dir, pattern string) ([]string, error) {
			return f.files[f.current], nil
		},
		countFile: func(ctx context.Context, dir, file string) (Counts, error) {
			c, ok := f.counts[f.current][file]
			if !ok {
				return Counts{}, fmt.Errorf("no counts for %s", file)
			}
			return c, nil
		},
	}
}

func twoRevRepo() *fakeRepo {
	return &fakeRepo{
		revs: []string{"rev1rev1rev1", "rev2rev2rev2"},
		files: map[string][]string{
			"rev1rev1rev1": {"lock.rs"},
			"rev2rev2rev2": {"lock.rs", "arena.rs"},
		},
		counts: map[string]map[string]Counts{
			"rev1rev1rev1": {"lock.rs": {Code: 50, Unsafe: 5}},
			"rev2rev2rev2": {
				"lock.rs":  {Code: 60, Unsafe: 5},
				"arena.rs": {Code: 30, Unsafe: 12},
			},
		},
	}
}

func TestTraceBaselineAndDelta(t *testing.T) {
	t.Parallel()

	repo := twoRevRepo()
	var buf bytes.Buffer
	tr := repo.tracer(&buf)

	if err := tr.Run(context.Background(), "rev0..rev2rev2rev2"); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Revision rev1rev1") {
		t.Fatalf("missing baseline revision header:\n%s", out)
	}
	if !strings.Contains(out, "lock.rs : 5/50 = 10%") {
		t.Fatalf("baseline absolute ratio missing:\n%s", out)
	}
	// lock.rs grew by 10 code lines with unchanged unsafe count.
	if !strings.Contains(out, "60(+10)") || !strings.Contains(out, "5(+0)") {
		t.Fatalf("delta cells missing:\n%s", out)
	}
	// arena.rs is new in rev2: its previous counts default to the zero pair.
	if !strings.Contains(out, "30(+30)") || !strings.Contains(out, "12(+12)") {
		t.Fatalf("new-file delta missing:\n%s", out)
	}
}

func TestTraceRestoresWorktree(t *testing.T) {
	t.Parallel()

	repo := twoRevRepo()
	var buf bytes.Buffer
	tr := repo.tracer(&buf)

	if err := tr.Run(context.Background(), "a..b"); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	last := repo.checkouts[len(repo.checkouts)-1]
	if last != "original-head" {
		t.Fatalf("worktree left at %q, want original-head", last)
	}
}

func TestTraceCheckoutFailureFatal(t *testing.T) {
	t.Parallel()

	repo := twoRevRepo()
	var buf bytes.Buffer
	tr := repo.tracer(&buf)
	wantErr := errors.New("pathspec did not match")
	tr.checkout = func(ctx context.Context, dir, rev string) error {
		if rev == "rev2rev2rev2" {
			return wantErr
		}
		repo.current = rev
		return nil
	}

	if err := tr.Run(context.Background(), "a..b"); !errors.Is(err, wantErr) {
		t.Fatalf("Run err = %v, want wrapped %v", err, wantErr)
	}
}

func TestTraceUnmeasurableFileSkipped(t *testing.T) {
	t.Parallel()

	repo := twoRevRepo()
	delete(repo.counts["rev2rev2rev2"], "arena.rs")
	var buf bytes.Buffer
	tr := repo.tracer(&buf)

	if err := tr.Run(context.Background(), "a..b"); err != nil {
		t.Fatalf("unmeasurable file must not abort the trace: %v", err)
	}
	if !strings.Contains(buf.String(), "cannot count arena.rs") {
		t.Fatalf("expected cannot-count notice:\n%s", buf.String())
	}
}

func TestTraceRejectsBadRange(t *testing.T) {
	t.Parallel()

	repo := twoRevRepo()
	var buf bytes.Buffer
	tr := repo.tracer(&buf)

	if err := tr.Run(context.Background(), "not-a-range"); err == nil {
		t.Fatal("expected error for range without separator")
	}
}

func TestTraceEmptyRange(t *testing.T) {
	t.Parallel()

	repo := twoRevRepo()
	repo.revs = nil
	var buf bytes.Buffer
	tr := repo.tracer(&buf)

	if err := tr.Run(context.Background(), "a..b"); err == nil {
		t.Fatal("expected error for empty revision range")
	}
}
