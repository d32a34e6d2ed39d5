// Package stats summarizes samples collected during self-play.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Sample keeps every observed value.
type Sample struct {
	values []float64
}

func (s *Sample) Push(v float64) {
	s.values = append(s.values, v)
}

func (s *Sample) Len() int {
	return len(s.values)
}

func (s *Sample) Values() []float64 {
	return s.values
}

func (s *Sample) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return stat.Mean(s.values, nil)
}

// Stdev is the unbiased sample standard deviation. It is 0 for fewer than
// two values.
func (s *Sample) Stdev() float64 {
	if len(s.values) < 2 {
		return 0
	}
	return stat.StdDev(s.values, nil)
}

func (s *Sample) StandardError() float64 {
	if len(s.values) < 2 {
		return 0
	}
	return stat.StdErr(s.Stdev(), float64(len(s.values)))
}

// ConfidenceInterval returns the normal-approximation interval around the
// mean for a confidence level given in percent.
func (s *Sample) ConfidenceInterval(pct float64) (float64, float64) {
	m := s.Mean()
	d := ZVal(pct) * s.StandardError()
	return m - d, m + d
}
