// Package response measures frequency responses from impulse responses.
//
// It drives a unit impulse through a crossover or a block processor,
// transforms the captured impulse response with an FFT and exposes the
// complex bins together with their magnitudes.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/filter/crossover"
	"github.com/cwbudde/algo-dualband/dsp/signal"
)

// DefaultFFTSize is used when a size of zero is requested.
const DefaultFFTSize = 16384

var (
	// ErrInvalidFFTSize is returned for sizes that are not a power of two
	// of at least 2.
	ErrInvalidFFTSize = errors.New("response: fft size must be a power of two >= 2")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

// BlockProcessor is anything that processes planar audio in place.
type BlockProcessor interface {
	ProcessBlock(buf [][]float64, numInputChannels int)
}

// Measurement is a one-sided spectrum of an impulse response.
type Measurement struct {
	SampleRate float64
	FFTSize    int
	// Bins holds FFTSize/2+1 complex bins from DC to Nyquist.
	Bins []complex128
	// Magnitude holds |Bins[k]|.
	Magnitude []float64
}

// FromImpulse transforms ir into a Measurement. ir is truncated or
// zero-padded to fftSize; fftSize zero selects DefaultFFTSize.
func FromImpulse(ir []float64, sampleRate float64, fftSize int) (*Measurement, error) {
	fftSize, err := validate(sampleRate, fftSize)
	if err != nil {
		return nil, err
	}

	in := make([]complex128, fftSize)
	for i, x := range ir[:min(len(ir), fftSize)] {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward fft: %w", err)
	}

	n := fftSize/2 + 1
	m := &Measurement{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Bins:       out[:n:n],
		Magnitude:  make([]float64, n),
	}

	re := make([]float64, n)
	im := make([]float64, n)
	for k, c := range m.Bins {
		re[k] = real(c)
		im[k] = imag(c)
	}
	vecmath.Magnitude(m.Magnitude, re, im)

	return m, nil
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (m *Measurement) BinFrequency(k int) float64 {
	return float64(k) * m.SampleRate / float64(m.FFTSize)
}

// MagnitudeAt returns the linear magnitude at freqHz, interpolated between
// neighbouring bins. Frequencies outside [0, Nyquist] are clamped.
func (m *Measurement) MagnitudeAt(freqHz float64) float64 {
	pos := core.Clamp(freqHz*float64(m.FFTSize)/m.SampleRate, 0, float64(len(m.Magnitude)-1))
	k := int(pos)
	if k >= len(m.Magnitude)-1 {
		return m.Magnitude[len(m.Magnitude)-1]
	}

	frac := pos - float64(k)
	return m.Magnitude[k]*(1-frac) + m.Magnitude[k+1]*frac
}

// MagnitudeDB returns MagnitudeAt in dB.
func (m *Measurement) MagnitudeDB(freqHz float64) float64 {
	return core.LinearToDB(m.MagnitudeAt(freqHz))
}

// PhaseAt returns the phase in radians of the bin nearest to freqHz.
func (m *Measurement) PhaseAt(freqHz float64) float64 {
	k := int(math.Round(core.Clamp(freqHz*float64(m.FFTSize)/m.SampleRate, 0, float64(len(m.Bins)-1))))
	return cmplx.Phase(m.Bins[k])
}

// MaxDeviationDB returns the largest |magnitude| in dB across the bins
// between loHz and hiHz, the flatness of a nominally unity-gain response.
func (m *Measurement) MaxDeviationDB(loHz, hiHz float64) float64 {
	worst := 0.0
	for k, mag := range m.Magnitude {
		f := m.BinFrequency(k)
		if f < loHz || f > hiHz {
			continue
		}
		worst = math.Max(worst, math.Abs(core.LinearToDB(mag)))
	}
	return worst
}

// CrossoverResult holds the measured low branch, high branch and their sum.
type CrossoverResult struct {
	Low, High, Sum *Measurement
}

// MeasureCrossover feeds a unit impulse through channel 0 of xo and measures
// both branches. The crossover history is cleared before and after.
func MeasureCrossover(xo *crossover.Crossover, fftSize int) (CrossoverResult, error) {
	fftSize, err := validate(xo.SampleRate(), fftSize)
	if err != nil {
		return CrossoverResult{}, err
	}

	in, err := signal.Impulse(fftSize)
	if err != nil {
		return CrossoverResult{}, err
	}
	low := make([]float64, fftSize)
	high := make([]float64, fftSize)
	sum := make([]float64, fftSize)

	xo.Reset()
	xo.ProcessBlock(0, in, low, high)
	xo.Reset()

	copy(sum, low)
	vecmath.AddBlockInPlace(sum, high)

	var res CrossoverResult
	for _, item := range []struct {
		dst **Measurement
		ir  []float64
	}{
		{&res.Low, low},
		{&res.High, high},
		{&res.Sum, sum},
	} {
		m, err := FromImpulse(item.ir, xo.SampleRate(), fftSize)
		if err != nil {
			return CrossoverResult{}, err
		}
		*item.dst = m
	}

	return res, nil
}

// MeasureProcessor captures the impulse response of a mono run through p
// and measures it. Nonlinear processors yield the response to a positive
// unit impulse only.
func MeasureProcessor(p BlockProcessor, sampleRate float64, fftSize int) (*Measurement, error) {
	fftSize, err := validate(sampleRate, fftSize)
	if err != nil {
		return nil, err
	}

	ir, err := signal.Impulse(fftSize)
	if err != nil {
		return nil, err
	}
	p.ProcessBlock([][]float64{ir}, 1)

	return FromImpulse(ir, sampleRate, fftSize)
}

func validate(sampleRate float64, fftSize int) (int, error) {
	if !core.ValidSampleRate(sampleRate) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if fftSize == 0 {
		fftSize = DefaultFFTSize
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	return fftSize, nil
}
