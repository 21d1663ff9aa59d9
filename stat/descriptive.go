// Package stat contains the statistics of package eda: descriptive
// measures, the outlier classifier, per-column summaries, correlation
// matrices and the binning used by the charts.
//
// All functions skip missing values (NaN). Degenerate input yields NaN
// results instead of errors.
package stat

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// present returns the non-missing values of data.
func present(data []float64) []float64 {
	vals := make([]float64, 0, len(data))
	for _, x := range data {
		if !math.IsNaN(x) {
			vals = append(vals, x)
		}
	}
	return vals
}

// finite returns the values of data that are neither missing nor infinite.
func finite(data []float64) []float64 {
	vals := make([]float64, 0, len(data))
	for _, x := range data {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			vals = append(vals, x)
		}
	}
	return vals
}

// sorted returns the non-missing values of data in increasing order.
func sorted(data []float64) []float64 {
	vals := present(data)
	slices.Sort(vals)
	return vals
}

// Quantile returns the p-quantile of the non-missing values of data using
// linear interpolation between the closest ranks, the estimator with
// h = (n-1)p + 1 (Hyndman and Fan type 7). The result is NaN for empty
// data or p outside [0,1].
func Quantile(data []float64, p float64) float64 {
	return quantileSorted(sorted(data), p)
}

func quantileSorted(s []float64, p float64) float64 {
	n := len(s)
	if n == 0 || math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= n-1 {
		return s[n-1]
	}
	return s[i] + (h-lo)*(s[i+1]-s[i])
}

// Median is the 0.5 quantile.
func Median(data []float64) float64 {
	return Quantile(data, 0.5)
}

// Mean is the arithmetic mean of the non-missing values.
func Mean(data []float64) float64 {
	vals := present(data)
	if len(vals) == 0 {
		return math.NaN()
	}
	return gonumstat.Mean(vals, nil)
}

// StdDev is the sample standard deviation (n-1 denominator) of the
// non-missing values. It needs at least two values.
func StdDev(data []float64) float64 {
	vals := present(data)
	if len(vals) < 2 {
		return math.NaN()
	}
	return gonumstat.StdDev(vals, nil)
}

// Mode returns the most frequent non-missing value. Ties go to the
// smallest value.
func Mode(data []float64) float64 {
	s := sorted(data)
	if len(s) == 0 {
		return math.NaN()
	}
	best, bestCount := s[0], 0
	for i := 0; i < len(s); {
		j := i
		for j < len(s) && s[j] == s[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = s[i], j-i
		}
		i = j
	}
	return best
}

// Skewness is the adjusted Fisher-Pearson coefficient of the non-missing
// values. It is NaN for fewer than three values and 0 for constant data.
func Skewness(data []float64) float64 {
	vals := present(data)
	if len(vals) < 3 {
		return math.NaN()
	}
	if floats.Min(vals) == floats.Max(vals) {
		return 0
	}
	return gonumstat.Skew(vals, nil)
}

// MinMax returns the smallest and largest non-missing value, NaN if there
// are none.
func MinMax(data []float64) (min, max float64) {
	vals := present(data)
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(vals), floats.Max(vals)
}
