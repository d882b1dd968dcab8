package stats

import "math"

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

// MeanRange returns the mean of values[start:end].
func MeanRange(values []float64, start, end int) float64 {
	return Mean(values[start:end])
}

// TrailingMean returns the mean of the last n values (all of them when fewer exist).
func TrailingMean(values []float64, n int) float64 {
	start, end := TrailingRange(len(values), n)
	return MeanRange(values, start, end)
}

// SampleStdDev returns the Bessel-corrected standard deviation (n-1 denominator).
// Fewer than two values have no spread and yield 0.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// TrailingStdDev returns the sample standard deviation of the last n values.
func TrailingStdDev(values []float64, n int) float64 {
	return SampleStdDev(Trailing(values, n))
}

// Trailing returns the last n values, sharing storage with values.
func Trailing(values []float64, n int) []float64 {
	start, end := TrailingRange(len(values), n)
	return values[start:end]
}

// Diffs returns the successive differences values[i]-values[i-1].
func Diffs(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// TrailingRange returns the half-open index range [start, end) covering the last n
// of length elements. A negative n selects nothing.
func TrailingRange(length, n int) (start, end int) {
	if n < 0 {
		n = 0
	}
	if n > length {
		n = length
	}
	return length - n, length
}
