package core

import "math"

// DenormalThreshold is the magnitude below which FlushDenormals returns zero.
// It sits far above the float64 subnormal range so decaying filter state is
// cut off before it gets there.
const DenormalThreshold = 1e-30

// Clamp limits value to the inclusive range [lo, hi]. The bounds may be
// given in either order. NaN is returned unchanged.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	switch {
	case value < lo:
		return lo
	case value > hi:
		return hi
	default:
		return value
	}
}

// ValidSampleRate reports whether sampleRate is positive and finite.
func ValidSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsInf(sampleRate, 1)
}

// FlushDenormals returns 0 for |x| < DenormalThreshold and x otherwise.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < DenormalThreshold {
		return 0
	}
	return x
}

// LinearToDB converts an amplitude ratio to dB (20·log10).
// Zero maps to -Inf, negative input to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}
