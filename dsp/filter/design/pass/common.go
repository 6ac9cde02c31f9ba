package pass

import (
	"math"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/filter/biquad"
)

// bilinearK computes the bilinear transform frequency warping factor tan(π*freq/sampleRate).
// Returns (k, true) on success, (0, false) if parameters are invalid.
func bilinearK(freq, sampleRate float64) (float64, bool) {
	if !core.ValidSampleRate(sampleRate) {
		return 0, false
	}
	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

// lowpassSection designs a second-order lowpass with quality factor q.
func lowpassSection(k, q float64) biquad.Coefficients {
	k2 := k * k
	norm := 1 / (1 + k/q + k2)
	b0 := k2 * norm

	return biquad.Coefficients{
		B0: b0,
		B1: 2 * b0,
		B2: b0,
		A1: 2 * (k2 - 1) * norm,
		A2: (1 - k/q + k2) * norm,
	}
}

// highpassSection designs a second-order highpass with quality factor q.
func highpassSection(k, q float64) biquad.Coefficients {
	k2 := k * k
	norm := 1 / (1 + k/q + k2)

	return biquad.Coefficients{
		B0: norm,
		B1: -2 * norm,
		B2: norm,
		A1: 2 * (k2 - 1) * norm,
		A2: (1 - k/q + k2) * norm,
	}
}

// firstOrderLP designs a first-order lowpass section (B2=A2=0).
func firstOrderLP(k float64) biquad.Coefficients {
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

// firstOrderHP designs a first-order highpass section (B2=A2=0).
func firstOrderHP(k float64) biquad.Coefficients {
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}
