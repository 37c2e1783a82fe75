// Package feature joins historical prices with sentiment series and
// computes the rolling technical indicators consumed by the predictor. The
// whole package is pure: no I/O, no external state.
package feature

import "math"

// rollingMean returns the simple moving average of values over the given
// window. Positions with fewer than window values are NaN; callers replace
// them downstream.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i+1 < window {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// rollingStd returns the rolling sample standard deviation over the given
// window, NaN where history is insufficient.
func rollingStd(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i+1 < window || window < 2 {
			out[i] = math.NaN()
			continue
		}
		start := i + 1 - window
		var mean float64
		for _, v := range values[start : i+1] {
			mean += v
		}
		mean /= float64(window)

		var ss float64
		for _, v := range values[start : i+1] {
			d := v - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}

// pctChange returns the day-over-day fractional change. The first position
// is NaN; a zero previous value also yields NaN rather than Inf.
func pctChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i == 0 || values[i-1] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = values[i]/values[i-1] - 1
	}
	return out
}

// zeroIfNaN replaces undefined rolling values with 0, the neutral filler
// for the model input.
func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
