package model

import (
	"fmt"
	"math"
	"slices"
)

// Scaling methods accepted by NewScaler.
const (
	MinMax   = "minmax"
	Standard = "standard"
	Robust   = "robust"
	MaxAbs   = "maxabs"
)

// Scaler rescales every column independently with statistics fitted on the
// rows passed to Fit. A column whose spread is zero is scaled by 1.
type Scaler struct {
	method string
	center []float64
	scale  []float64
}

func NewScaler(method string) (*Scaler, error) {
	switch method {
	case MinMax, Standard, Robust, MaxAbs:
		return &Scaler{method: method}, nil
	default:
		return nil, fmt.Errorf("unknown scaling method %q, expected one of minmax, standard, robust, maxabs", method)
	}
}

func (s *Scaler) Method() string { return s.method }

func (s *Scaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return ErrEmptyTraining
	}

	width := len(X[0])
	s.center = make([]float64, width)
	s.scale = make([]float64, width)

	col := make([]float64, len(X))
	for f := 0; f < width; f++ {
		for i, row := range X {
			if len(row) != width {
				return fmt.Errorf("row %d has %d features, expected %d", i, len(row), width)
			}
			col[i] = row[f]
		}

		var center, spread float64
		switch s.method {
		case MinMax:
			lo, hi := slices.Min(col), slices.Max(col)
			center, spread = lo, hi-lo
		case Standard:
			center = mean(col)
			spread = stddev(col, center)
		case Robust:
			sorted := slices.Clone(col)
			slices.Sort(sorted)
			center = quantile(sorted, 0.5)
			spread = quantile(sorted, 0.75) - quantile(sorted, 0.25)
		case MaxAbs:
			for _, v := range col {
				spread = math.Max(spread, math.Abs(v))
			}
		}

		if spread == 0 {
			spread = 1
		}
		s.center[f] = center
		s.scale[f] = spread
	}

	return nil
}

func (s *Scaler) Transform(X [][]float64) ([][]float64, error) {
	if s.scale == nil {
		return nil, ErrNotFitted
	}

	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.scale) {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), len(s.scale))
		}
		scaled := make([]float64, len(row))
		for f, v := range row {
			scaled[f] = (v - s.center[f]) / s.scale[f]
		}
		out[i] = scaled
	}
	return out, nil
}

func (s *Scaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// stddev is the population standard deviation.
func stddev(v []float64, m float64) float64 {
	var sum float64
	for _, x := range v {
		sum += (x - m) * (x - m)
	}
	return math.Sqrt(sum / float64(len(v)))
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
