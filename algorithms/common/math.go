package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared across algorithms, backed by gonum
// for the numerically delicate parts.

// Mean calculates the arithmetic mean of a slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the population variance of a slice.
// Population (biased) variance matches the framing conventions used by
// the feature extractors, where a frame sequence is the full population.
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}

	mean := stat.Mean(data, nil)
	sum := 0.0
	for _, v := range data {
		diff := v - mean
		sum += diff * diff
	}
	return sum / float64(len(data))
}

// StandardDeviation calculates the population standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Max returns the maximum value of a non-empty slice, 0 otherwise
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// Min returns the minimum value of a non-empty slice, 0 otherwise
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Min(data)
}

// LinRegression performs simple linear regression of y against x and
// returns slope and intercept
func LinRegression(x, y []float64) (slope, intercept float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return beta, alpha
}

// SlopeOverIndex fits a line to data over its indices (0, 1, 2, ...) and
// returns the slope
func SlopeOverIndex(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}

	x := make([]float64, len(data))
	for i := range x {
		x[i] = float64(i)
	}

	slope, _ := LinRegression(x, data)
	return slope
}

// FindPeaks finds indices of local maxima with value >= minHeight and at
// least minDistance indices apart. Of two competing peaks within
// minDistance the higher one wins.
func FindPeaks(data []float64, minHeight float64, minDistance int) []int {
	if len(data) < 3 {
		return []int{}
	}

	var peaks []int

	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] > data[i+1] && data[i] >= minHeight {
			if len(peaks) > 0 && minDistance > 0 {
				last := peaks[len(peaks)-1]
				if i-last < minDistance {
					if data[i] > data[last] {
						peaks[len(peaks)-1] = i
					}
					continue
				}
			}
			peaks = append(peaks, i)
		}
	}

	return peaks
}

// MedianFilter applies median filtering with given window size.
// Window edges shrink at the boundaries.
func MedianFilter(data []float64, windowSize int) []float64 {
	if len(data) == 0 || windowSize <= 0 {
		return data
	}

	if windowSize > len(data) {
		windowSize = len(data)
	}

	result := make([]float64, len(data))
	halfWindow := windowSize / 2
	window := make([]float64, 0, windowSize+1)

	for i := range data {
		start := max(i-halfWindow, 0)
		end := min(i+halfWindow+1, len(data))

		window = window[:0]
		window = append(window, data[start:end]...)
		sort.Float64s(window)

		mid := len(window) / 2
		if len(window)%2 == 0 {
			result[i] = (window[mid-1] + window[mid]) / 2.0
		} else {
			result[i] = window[mid]
		}
	}

	return result
}
