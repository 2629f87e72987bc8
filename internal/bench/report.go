// internal/bench/report.go
package bench

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// reportPrefix marks the timing lines the booted kernel prints for each
// benchmarked test case.
const reportPrefix = "Test="

// Report holds the per-test samples extracted from one boot's captured
// stdout. Test names keep their first-seen order so summary lines come out
// in a stable sequence.
type Report struct {
	order   []string
	samples map[string][]float64
	lines   []string
}

// ParseReport scans captured boot output for timing marker lines of the form
//
//	Test=<name>, <label>=<value>[, ...]
//
// Lines without the marker prefix, or whose value field does not parse, are
// skipped silently: the boot console interleaves plenty of unrelated output.
func ParseReport(r io.Reader) (*Report, error) {
	rep := &Report{samples: make(map[string][]float64)}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, reportPrefix) {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimPrefix(fields[0], reportPrefix)
		eq := strings.LastIndex(fields[1], "=")
		if eq < 0 {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(fields[1][eq+1:]), 64)
		if err != nil {
			continue
		}
		if _, seen := rep.samples[name]; !seen {
			rep.order = append(rep.order, name)
		}
		rep.samples[name] = append(rep.samples[name], value)
		rep.lines = append(rep.lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rep, nil
}

// Tests returns the observed test names in first-seen order.
func (r *Report) Tests() []string {
	return r.order
}

// Samples returns the ordered measurements collected for one test.
func (r *Report) Samples(name string) []float64 {
	return r.samples[name]
}

// Lines returns the raw marker lines, for verbose echo into the result file.
func (r *Report) Lines() []string {
	return r.lines
}
