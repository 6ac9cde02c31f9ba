package pass

import (
	"github.com/cwbudde/algo-dualband/dsp/filter/biquad"
)

// LinkwitzRileyLP designs a lowpass Linkwitz-Riley cascade of the given order.
//
// A Linkwitz-Riley filter of order 2N is constructed by cascading two
// Butterworth filters of order N. This produces -6.02 dB at the crossover
// frequency and a squared-Butterworth magnitude response.
//
// The order must be a positive even integer (2, 4, 6, 8, …). Returns nil
// for invalid parameters.
//
// For orders divisible by 4 (LR4, LR8, …) the outputs of LinkwitzRileyLP and
// [LinkwitzRileyHP] are in phase and sum to an allpass. For orders ≡ 2 mod 4
// the highpass output must be inverted before summing.
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	return doubled(ButterworthLP(freq, order/2, sampleRate))
}

// LinkwitzRileyHP designs a highpass Linkwitz-Riley cascade of the given order.
// See [LinkwitzRileyLP] for the order and polarity rules.
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	return doubled(ButterworthHP(freq, order/2, sampleRate))
}

func doubled(bw []biquad.Coefficients) []biquad.Coefficients {
	if bw == nil {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, 2*len(bw))
	sections = append(sections, bw...)
	sections = append(sections, bw...)
	return sections
}
