// Package ml implements the small statistical toolkit behind risk
// classification: a standard (z-score) feature scaler and a bagged
// decision-tree ensemble. Both serialize with encoding/gob so a fitted
// model survives process restarts.
package ml

import (
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler normalizes features to zero mean and unit variance.
// Fields are exported for gob serialization.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fitted reports whether Fit has been called.
func (s *StandardScaler) Fitted() bool {
	return len(s.Mean) > 0
}

// Fit computes per-column mean and population standard deviation over the
// sample matrix. Columns with zero variance get a unit deviation so
// Transform never divides by zero.
func (s *StandardScaler) Fit(samples [][]float64) error {
	if len(samples) == 0 {
		return eris.New("ml: scaler: no samples")
	}
	cols := len(samples[0])
	if cols == 0 {
		return eris.New("ml: scaler: no features")
	}
	for i, row := range samples {
		if len(row) != cols {
			return eris.Errorf("ml: scaler: ragged sample row %d", i)
		}
	}

	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)

	col := make([]float64, len(samples))
	for j := 0; j < cols; j++ {
		for i, row := range samples {
			col[i] = row[j]
		}
		mean := stat.Mean(col, nil)

		var ss float64
		for _, v := range col {
			d := v - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(len(col)))
		if std == 0 {
			std = 1
		}

		s.Mean[j] = mean
		s.Std[j] = std
	}
	return nil
}

// Transform scales a single sample using the fitted statistics.
func (s *StandardScaler) Transform(sample []float64) []float64 {
	out := make([]float64, len(sample))
	for j, v := range sample {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}

// TransformMatrix scales every row of the sample matrix.
func (s *StandardScaler) TransformMatrix(samples [][]float64) [][]float64 {
	out := make([][]float64, len(samples))
	for i, row := range samples {
		out[i] = s.Transform(row)
	}
	return out
}

// FitTransform fits the scaler and returns the scaled matrix.
func (s *StandardScaler) FitTransform(samples [][]float64) ([][]float64, error) {
	if err := s.Fit(samples); err != nil {
		return nil, err
	}
	return s.TransformMatrix(samples), nil
}
