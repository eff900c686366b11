package stats

import (
	"errors"
	"math"
)

// StandardScaler standardizes each column to zero mean and unit variance.
// Mean and Std are learned on Fit and frozen afterwards; columns with zero
// variance get Std=1 so transformed values stay finite.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fitted reports whether the scaler has learned column statistics.
func (s *StandardScaler) Fitted() bool { return len(s.Mean) > 0 }

// Fit learns per-column mean and population standard deviation.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("scaler: empty X")
	}
	r, c := len(X), len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			s.Mean[j] += X[i][j]
		}
		s.Mean[j] /= float64(r)
		v := 0.0
		for i := 0; i < r; i++ {
			d := X[i][j] - s.Mean[j]
			v += d * d
		}
		v /= float64(r)
		s.Std[j] = math.Sqrt(v)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return nil
}

// Transform standardizes X using the frozen statistics.
func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	if !s.Fitted() {
		return X
	}
	Y := make([][]float64, len(X))
	for i, row := range X {
		Y[i] = s.TransformRow(row)
	}
	return Y
}

// TransformRow standardizes a single row using the frozen statistics.
func (s *StandardScaler) TransformRow(x []float64) []float64 {
	out := make([]float64, len(x))
	if !s.Fitted() {
		copy(out, x)
		return out
	}
	for j := range x {
		out[j] = (x[j] - s.Mean[j]) / s.Std[j]
	}
	return out
}

// FitTransform fits the scaler and transforms X in one step.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X), nil
}
