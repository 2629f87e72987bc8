package buildsys

import (
	"context"
	"reflect"
	"testing"
)

func TestBenchOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		execCount int
		testCase  string
		extra     string
		want      Options
	}{
		{
			name:      "defaults",
			execCount: 10,
			extra:     "RUST_MODE=release",
			want:      Options{"ITER=10", "USERTEST=yes", "BENCH=yes", "CASE=", "RUST_MODE=release"},
		},
		{
			name:      "case filter",
			execCount: 3,
			testCase:  "forktest",
			want:      Options{"ITER=3", "USERTEST=yes", "BENCH=yes", "CASE=forktest"},
		},
		{
			name:      "multiple extras",
			execCount: 1,
			extra:     "  RUST_MODE=debug  GIC=yes ",
			want:      Options{"ITER=1", "USERTEST=yes", "BENCH=yes", "CASE=", "RUST_MODE=debug", "GIC=yes"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BenchOptions(tt.execCount, tt.testCase, tt.extra)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("BenchOptions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMakeCommandShape(t *testing.T) {
	t.Parallel()

	m := NewMake("/tmp/kernel")
	cmd := m.command(context.Background(), TargetQemu, Options{"ITER=5"})

	if cmd.Dir != "/tmp/kernel" {
		t.Fatalf("Dir = %q, want /tmp/kernel", cmd.Dir)
	}
	want := []string{"make", "qemu", "ITER=5"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
}

func TestExitStatusNonExec(t *testing.T) {
	t.Parallel()

	if got := ExitStatus(errUnrelated); got != -1 {
		t.Fatalf("ExitStatus(non-exec error) = %d, want -1", got)
	}
}

var errUnrelated = errTest("not an exit error")

type errTest string

func (e errTest) Error() string { return string(e) }
