// Package predict loads pre-trained per-ticker model artifacts and produces
// next-day price predictions, falling back to the last close whenever a
// model is missing or inference fails.
package predict

import (
	"encoding/json"
	"fmt"
	"os"
)

// MinMaxScaler is the fitted per-column min-max transform shipped alongside
// each model. Forward maps raw feature values into [0,1]; Inverse maps
// model output back to price scale.
type MinMaxScaler struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

// loadScaler reads and validates a scaler artifact.
func loadScaler(path string) (*MinMaxScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s MinMaxScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scaler %s: %w", path, err)
	}
	if len(s.Min) == 0 || len(s.Min) != len(s.Max) {
		return nil, fmt.Errorf("scaler %s: min/max lengths %d/%d", path, len(s.Min), len(s.Max))
	}
	return &s, nil
}

// Width returns the number of feature columns the scaler was fitted on.
func (s *MinMaxScaler) Width() int { return len(s.Min) }

// TransformRow scales one feature row into [0,1] per column. Columns with
// zero range map to 0.
func (s *MinMaxScaler) TransformRow(row []float64) ([]float64, error) {
	if len(row) != s.Width() {
		return nil, fmt.Errorf("row width %d, scaler width %d", len(row), s.Width())
	}
	out := make([]float64, len(row))
	for i, v := range row {
		span := s.Max[i] - s.Min[i]
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (v - s.Min[i]) / span
	}
	return out, nil
}

// Transform scales a feature matrix row by row.
func (s *MinMaxScaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled, err := s.TransformRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}

// InverseRow maps a scaled row back to the original feature scale.
func (s *MinMaxScaler) InverseRow(row []float64) ([]float64, error) {
	if len(row) != s.Width() {
		return nil, fmt.Errorf("row width %d, scaler width %d", len(row), s.Width())
	}
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = v*(s.Max[i]-s.Min[i]) + s.Min[i]
	}
	return out, nil
}
