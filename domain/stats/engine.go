// Package stats holds the descriptive statistics evaluated for every
// synthetic campaign. The formulas reproduce the legacy simulation results
// bit for bit, including its quantile indexing and the geometric mean
// denominator, so results from different runs stay comparable.
package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
)

// Mean returns the arithmetic mean, NaN for empty input
func Mean(values []float64) float64 {
	m, _ := mstats.Mean(values)
	return m
}

// StdDev returns the sample standard deviation around mean, using n-1 in
// the denominator. A single value yields NaN.
func StdDev(values []float64, mean float64) float64 {
	sd := 0.0
	for _, v := range values {
		sd += (v - mean) * (v - mean)
	}
	sd = sd / (float64(len(values)) - 1.0)
	return math.Sqrt(sd)
}

// CoefficientOfVariation is stddev/mean; a zero mean yields ±Inf or NaN
func CoefficientOfVariation(mean, stddev float64) float64 {
	return stddev / mean
}

// GeometricMean sums ln(v) over the strictly positive values but divides by
// the full sample count. Non-positive values therefore pull the result
// towards 1 instead of being ignored.
func GeometricMean(values []float64) float64 {
	gm := 0.0
	for _, v := range values {
		if v > 0 {
			gm += math.Log(v)
		}
	}
	gm = gm / float64(len(values))
	return math.Exp(gm)
}

// GeometricStdDev has the same count asymmetry as GeometricMean: only
// positive values contribute, n-1 is taken over all values.
func GeometricStdDev(values []float64, geoMean float64) float64 {
	gsd := 0.0
	for _, v := range values {
		if v > 0 && geoMean > 0 {
			d := math.Log(v) - math.Log(geoMean)
			gsd += d * d
		}
	}
	gsd = gsd / float64(len(values)-1)
	return math.Exp(math.Sqrt(gsd))
}

// QuantileIndex returns the index of quantile p in an ascending array of n
// values. The 5% quantile counts up from the bottom; every other quantile
// counts its upper tail (100-p)% down from the top. Both truncate towards
// zero before subtracting one.
func QuantileIndex(n, p int) int {
	size := float64(n)
	var x float64
	if p == 5 {
		x = (size / 100.0) * 5.0
	} else {
		x = size - ((size / 100.0) * float64(100-p))
	}
	return int(x) - 1
}

// Quantile looks p up in sorted. Inputs too short for the index yield NaN.
func Quantile(sorted []float64, p int) float64 {
	i := QuantileIndex(len(sorted), p)
	if i < 0 || i >= len(sorted) {
		return math.NaN()
	}
	return sorted[i]
}

// Median is Quantile(sorted, 50)
func Median(sorted []float64) float64 {
	return Quantile(sorted, 50)
}

// QuantileDeviation is half the 5-95 spread
func QuantileDeviation(q05, q95 float64) float64 {
	return (q95 - q05) / 2.0
}

// RelativeQuantileDeviation scales the 5-95 spread by twice the median; a
// zero median yields ±Inf or NaN.
func RelativeQuantileDeviation(q05, q50, q95 float64) float64 {
	return (q95 - q05) / (2.0 * q50)
}

// Min returns the smallest value, NaN for empty input
func Min(values []float64) float64 {
	m, _ := mstats.Min(values)
	return m
}

// Max returns the largest value, NaN for empty input
func Max(values []float64) float64 {
	m, _ := mstats.Max(values)
	return m
}

// Range is the spread between the extrema
func Range(min, max float64) float64 {
	return max - min
}

// LogValues maps every value to its natural log, non-positive values to 0
func LogValues(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v > 0 {
			out[i] = math.Log(v)
		}
	}
	return out
}

// Factorial returns n! for n > 1 and 1 otherwise. It overflows past 20!.
func Factorial(n int) int {
	f := 1
	if n > 1 {
		for i := 1; i <= n; i++ {
			f *= i
		}
	}
	return f
}
