// internal/unsafecount/parse.go
package unsafecount

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Counts pairs the code-line and unsafe-line totals for one file at one
// revision. Immutable once measured.
type Counts struct {
	Code   int
	Unsafe int
}

// Sub returns the element-wise difference c - o.
func (c Counts) Sub(o Counts) Counts {
	return Counts{Code: c.Code - o.Code, Unsafe: c.Unsafe - o.Unsafe}
}

// Percent returns the integer-floored percentage of unsafe lines. A file
// with no counted code lines reports zero.
func (c Counts) Percent() int {
	if c.Code <= 0 {
		return 0
	}
	return c.Unsafe * 100 / c.Code
}

// UnsafeRecord is one row of count-unsafe CSV output.
type UnsafeRecord struct {
	File  string
	Begin int
	End   int
	Count int
	Kind  string
}

// ParseUnsafeRecords reads count-unsafe output: one header line followed by
// comma-separated records (file, begin, end, count, type). Rows that do not
// match the shape are skipped.
func ParseUnsafeRecords(r io.Reader) ([]UnsafeRecord, error) {
	var records []UnsafeRecord

	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			continue
		}
		begin, err1 := strconv.Atoi(strings.TrimSpace(fields[1]))
		end, err2 := strconv.Atoi(strings.TrimSpace(fields[2]))
		count, err3 := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		records = append(records, UnsafeRecord{
			File:  strings.TrimSpace(fields[0]),
			Begin: begin,
			End:   end,
			Count: count,
			Kind:  strings.TrimSpace(fields[4]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// SumUnsafe accumulates record counts per file. A file reported by multiple
// records sums rather than overwrites.
func SumUnsafe(records []UnsafeRecord) map[string]int {
	totals := make(map[string]int)
	for _, rec := range records {
		totals[rec.File] += rec.Count
	}
	return totals
}

// ParseClocCode extracts the code-line count from cloc's report for a single
// file: the last whitespace-separated field of the second-to-last output
// line.
func ParseClocCode(out string) (int, error) {
	lines := nonEmptyLines(out)
	if len(lines) < 2 {
		return 0, fmt.Errorf("cloc output too short (%d lines)", len(lines))
	}
	fields := strings.Fields(lines[len(lines)-2])
	if len(fields) == 0 {
		return 0, fmt.Errorf("cloc summary row is empty")
	}
	code, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("cloc summary field %q is not a count: %w", fields[len(fields)-1], err)
	}
	return code, nil
}

// ParseCombined extracts a (code, unsafe) pair from the combined counter's
// report: the final line carries six positional numeric columns
// (files, lines, blanks, comments, code, unsafe).
func ParseCombined(out string) (Counts, error) {
	lines := nonEmptyLines(out)
	if len(lines) == 0 {
		return Counts{}, fmt.Errorf("combined counter produced no output")
	}

	var nums []int
	for _, field := range strings.Fields(lines[len(lines)-1]) {
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	if len(nums) < 6 {
		return Counts{}, fmt.Errorf("combined counter summary has %d numeric columns, want 6", len(nums))
	}
	return Counts{Code: nums[4], Unsafe: nums[5]}, nil
}

func nonEmptyLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
