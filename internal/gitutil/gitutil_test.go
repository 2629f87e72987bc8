package gitutil

import "testing"

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		expr      string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{name: "simple", expr: "v1.0..HEAD", wantStart: "v1.0", wantEnd: "HEAD"},
		{name: "hashes", expr: "abc123..def456", wantStart: "abc123", wantEnd: "def456"},
		{name: "missing separator", expr: "HEAD", wantErr: true},
		{name: "empty start", expr: "..HEAD", wantErr: true},
		{name: "empty end", expr: "v1.0..", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			start, end, err := ParseRange(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRange(%q) expected error, got %q/%q", tt.expr, start, end)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) returned error: %v", tt.expr, err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("ParseRange(%q) = %q, %q, want %q, %q", tt.expr, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
