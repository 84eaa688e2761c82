package bench

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a sample of float64 values.
type Stats struct {
	Best float64
	Mean float64
	Std  float64
}

// Summarize returns min, mean and sample standard deviation of xs. A single
// observation has zero deviation.
func Summarize(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	s := Stats{
		Best: floats.Min(xs),
		Mean: stat.Mean(xs, nil),
	}
	if len(xs) > 1 {
		s.Std = stat.StdDev(xs, nil)
		if math.IsNaN(s.Std) {
			s.Std = 0
		}
	}
	return s
}
