package pass

import (
	"math"

	"github.com/cwbudde/algo-dualband/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
// Returns nil for order ≤ 0 or a frequency outside (0, sampleRate/2).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, lowpassSection(k, butterworthQ(order, i)))
	}
	if order%2 != 0 {
		sections = append(sections, firstOrderLP(k))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
// Returns nil for order ≤ 0 or a frequency outside (0, sampleRate/2).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, highpassSection(k, butterworthQ(order, i)))
	}
	if order%2 != 0 {
		sections = append(sections, firstOrderHP(k))
	}
	return sections
}

// ButterworthPair2 designs the matched second-order Butterworth lowpass and
// highpass sections (Q = 1/√2) at freq without allocating.
// ok is false when freq is outside (0, sampleRate/2).
func ButterworthPair2(freq, sampleRate float64) (lp, hp biquad.Coefficients, ok bool) {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}, biquad.Coefficients{}, false
	}

	q := 1 / math.Sqrt2
	return lowpassSection(k, q), highpassSection(k, q), true
}
