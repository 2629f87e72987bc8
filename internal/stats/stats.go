// internal/stats/stats.go
// Package stats provides a small aggregation utility for benchmark samples.
package stats

import (
	"errors"
	"math"
)

// ErrNoSamples is returned when a statistic is requested from an empty sample.
var ErrNoSamples = errors.New("stats: no samples recorded")

// Sample accumulates scalar observations using Welford's online update so the
// mean and variance remain numerically stable across long runs.
type Sample struct {
	count int
	mean  float64
	m2    float64
	min   float64
	max   float64
}

// Add records one observation.
func (s *Sample) Add(v float64) {
	s.count++
	if s.count == 1 {
		s.min = v
		s.max = v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}

	delta := v - s.mean
	s.mean += delta / float64(s.count)
	delta2 := v - s.mean
	s.m2 += delta * delta2
}

// Count returns the number of recorded observations.
func (s *Sample) Count() int {
	return s.count
}

// Mean returns the arithmetic mean of the recorded observations.
func (s *Sample) Mean() (float64, error) {
	if s.count == 0 {
		return 0, ErrNoSamples
	}
	return s.mean, nil
}

// Stdev returns the sample standard deviation (n-1 denominator). A
// single-observation sample has a standard deviation of zero rather than
// being undefined.
func (s *Sample) Stdev() (float64, error) {
	if s.count == 0 {
		return 0, ErrNoSamples
	}
	if s.count == 1 {
		return 0, nil
	}
	return math.Sqrt(s.m2 / float64(s.count-1)), nil
}

// Min returns the smallest recorded observation.
func (s *Sample) Min() (float64, error) {
	if s.count == 0 {
		return 0, ErrNoSamples
	}
	return s.min, nil
}

// Max returns the largest recorded observation.
func (s *Sample) Max() (float64, error) {
	if s.count == 0 {
		return 0, ErrNoSamples
	}
	return s.max, nil
}

// Summarize aggregates values in one pass and returns their mean and sample
// standard deviation. It fails on an empty slice; callers must not ask for
// statistics over nothing.
func Summarize(values []float64) (mean, stdev float64, err error) {
	var s Sample
	for _, v := range values {
		s.Add(v)
	}
	if mean, err = s.Mean(); err != nil {
		return 0, 0, err
	}
	if stdev, err = s.Stdev(); err != nil {
		return 0, 0, err
	}
	return mean, stdev, nil
}
