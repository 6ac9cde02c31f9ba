// Package window provides the analysis windows used by the measurement
// packages. Every window here is a generalized cosine sum
//
//	w(x) = Σ a_k·cos(2πkx),  x ∈ [0, 1]
//
// so one evaluator serves all of them.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

var (
	errEmptyCoeffs      = errors.New("window: no coefficients")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
	errMismatchedLength = errors.New("window: sample and coefficient lengths differ")
)

// Type identifies a window function. The zero value is Hann.
type Type int

const (
	TypeHann Type = iota
	TypeRectangular
	TypeBlackmanHarris4Term
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name         string
	ENBW         float64 // equivalent noise bandwidth in bins
	CoherentGain float64
	// HalfLobe is the number of bins either side of a bin-centred peak that
	// hold its energy.
	HalfLobe int
}

type definition struct {
	meta  Metadata
	terms []float64
}

var definitions = map[Type]definition{
	TypeHann: {
		meta:  Metadata{Name: "Hann", ENBW: 1.5, CoherentGain: 0.5, HalfLobe: 2},
		terms: []float64{0.5, -0.5},
	},
	TypeRectangular: {
		meta:  Metadata{Name: "Rectangular", ENBW: 1, CoherentGain: 1, HalfLobe: 1},
		terms: []float64{1},
	},
	TypeBlackmanHarris4Term: {
		meta:  Metadata{Name: "Blackman-Harris", ENBW: 2.0044, CoherentGain: 0.35875, HalfLobe: 4},
		terms: []float64{0.35875, -0.48829, 0.14128, -0.01168},
	},
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form (FFT framing) instead of the
// symmetric one.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns length coefficients of window t. Unknown types generate
// a rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	terms := lookup(t).terms
	span := float64(length - 1)
	if cfg.periodic {
		span = float64(length)
	}

	out := make([]float64, length)
	for i := range out {
		x := 0.0
		if span > 0 {
			x = float64(i) / span
		}
		out[i] = cosineSum(terms, x)
	}
	return out
}

// ApplyCoefficientsInPlace multiplies samples by precomputed coefficients.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}
	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	return lookup(t).meta
}

// CoherentGain returns the mean of coeffs, the amplitude scaling a window
// applies to a bin-centred sinusoid.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	if sum == 0 {
		return 0, errZeroCoherentGain
	}
	return sum / float64(len(coeffs)), nil
}

func lookup(t Type) definition {
	if d, ok := definitions[t]; ok {
		return d
	}
	return definitions[TypeRectangular]
}

func cosineSum(terms []float64, x float64) float64 {
	w := 0.0
	for k, a := range terms {
		w += a * math.Cos(2*math.Pi*float64(k)*x)
	}
	return w
}
