// Package stats provides the sample statistics used by the analytics engine.
// Variance, standard deviation, and covariance use the sample (N-1)
// denominator, floored at 1 so single-element inputs do not divide by zero.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the sample variance of values.
func Variance(values []float64) float64 {
	avg := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return sum / denom(len(values))
}

// StdDev returns the sample standard deviation of values.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Covariance returns the sample covariance of two equal-length series.
// Extra elements in the longer series are ignored.
func Covariance(first, second []float64) float64 {
	n := len(first)
	if len(second) < n {
		n = len(second)
	}
	firstMean := Mean(first[:n])
	secondMean := Mean(second[:n])
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += (first[i] - firstMean) * (second[i] - secondMean)
	}
	return sum / denom(n)
}

// Quantile returns the p-quantile of values using linear interpolation
// between order statistics. The input slice is not modified.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := float64(len(sorted)-1) * p
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return sorted[lower]
	}
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func denom(n int) float64 {
	if n-1 < 1 {
		return 1
	}
	return float64(n - 1)
}
