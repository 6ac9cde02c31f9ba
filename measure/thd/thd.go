// Package thd measures the harmonic content of a distorted sinusoid.
//
// The analyzer separates odd from even harmonics and reports the DC offset,
// which makes it suited to asymmetric shapers: a half-cycle clip or rectifier
// produces a DC term and predominantly even harmonics, a symmetric clipper
// only odd ones.
package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/window"
)

// ErrEmptySignal is returned when there is nothing to analyze.
var ErrEmptySignal = errors.New("thd: empty signal")

// Config holds analysis parameters. Zero values select defaults.
type Config struct {
	SampleRate      float64 // zero: 48 kHz
	FFTSize         int     // zero: next power of two of the signal length
	FundamentalFreq float64 // zero: strongest bin in range
	RangeLowerFreq  float64 // zero: 20 Hz
	RangeUpperFreq  float64 // zero: 20 kHz
	CaptureBins     int     // bins summed either side of a peak; zero: window half lobe
	MaxHarmonics    int     // zero: every harmonic up to the range limit
	Window          window.Type
}

func (c Config) withDefaults() Config {
	if !core.ValidSampleRate(c.SampleRate) {
		c.SampleRate = 48000
	}
	if c.RangeLowerFreq <= 0 {
		c.RangeLowerFreq = 20
	}
	if c.RangeUpperFreq <= 0 {
		c.RangeUpperFreq = 20000
	}
	c.RangeUpperFreq = math.Max(c.RangeUpperFreq, c.RangeLowerFreq)
	if c.CaptureBins <= 0 {
		c.CaptureBins = window.Info(c.Window).HalfLobe
	}
	c.MaxHarmonics = max(c.MaxHarmonics, 0)
	return c
}

// Result holds the measured harmonic content. Ratios are amplitude ratios
// relative to the fundamental.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	THD              float64
	THD_dB           float64
	OddHD            float64
	EvenHD           float64
	// DC is the mean of the analyzed signal.
	DC float64
	// Harmonics holds the level of harmonic k+2 at index k.
	Harmonics []float64
}

// EvenToOdd returns EvenHD/OddHD, or +Inf when there is no odd content.
func (r Result) EvenToOdd() float64 {
	switch {
	case r.OddHD > 0:
		return r.EvenHD / r.OddHD
	case r.EvenHD > 0:
		return math.Inf(1)
	default:
		return 0
	}
}

// Analyzer evaluates harmonic content with a fixed configuration.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer returns an Analyzer for cfg.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg.withDefaults()}
}

// AnalyzeSignal is a one-shot analysis of a time-domain signal.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	return NewAnalyzer(cfg).AnalyzeSignal(signal)
}

// AnalyzeSignal windows the first FFTSize samples of signal, transforms them
// and evaluates the harmonics of the fundamental.
func (a *Analyzer) AnalyzeSignal(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}

	size := a.cfg.FFTSize
	if size <= 0 {
		size = nextPowerOf2(len(signal))
	}
	if size < 2 {
		return Result{}, fmt.Errorf("thd: fft size %d too small", size)
	}
	frame := signal[:min(len(signal), size)]

	power, err := powerSpectrum(frame, size, a.cfg.Window)
	if err != nil {
		return Result{}, err
	}

	res := a.harmonics(power, a.cfg.SampleRate/float64(size))
	res.DC = mean(frame)
	return res, nil
}

// powerSpectrum returns |X[k]|² for k in [0, size/2] of the windowed,
// zero-padded frame.
func powerSpectrum(frame []float64, size int, typ window.Type) ([]float64, error) {
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("thd: fft plan: %w", err)
	}

	windowed := append([]float64(nil), frame...)
	if err := window.ApplyCoefficientsInPlace(windowed, window.Generate(typ, len(frame), window.WithPeriodic())); err != nil {
		return nil, fmt.Errorf("thd: %w", err)
	}
	in := make([]complex128, size)
	for i, x := range windowed {
		in[i] = complex(x, 0)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("thd: forward fft: %w", err)
	}

	power := make([]float64, size/2+1)
	for k := range power {
		re, im := real(out[k]), imag(out[k])
		power[k] = re*re + im*im
	}
	return power, nil
}

func (a *Analyzer) harmonics(power []float64, binHz float64) Result {
	cfg := a.cfg
	last := len(power) - 1
	lo := clampInt(int(math.Round(cfg.RangeLowerFreq/binHz)), 1, last)
	hi := clampInt(int(math.Round(cfg.RangeUpperFreq/binHz)), lo, last)

	f0 := a.fundamentalBin(power, lo, hi, binHz)
	// keep the capture window clear of DC and of the neighbouring harmonic
	capture := min(cfg.CaptureBins, f0/2)

	res := Result{FundamentalFreq: float64(f0) * binHz}
	ref := bandLevel(power, f0, capture)
	if ref <= 0 {
		return res
	}
	res.FundamentalLevel = ref

	var odd, even float64
	for k := 2; k*f0 <= hi; k++ {
		if cfg.MaxHarmonics > 0 && k > cfg.MaxHarmonics+1 {
			break
		}
		level := bandLevel(power, k*f0, capture) / ref
		res.Harmonics = append(res.Harmonics, level)
		if k%2 == 0 {
			even += level * level
		} else {
			odd += level * level
		}
	}

	res.OddHD = math.Sqrt(odd)
	res.EvenHD = math.Sqrt(even)
	res.THD = math.Hypot(res.OddHD, res.EvenHD)
	res.THD_dB = core.LinearToDB(res.THD)
	return res
}

func (a *Analyzer) fundamentalBin(power []float64, lo, hi int, binHz float64) int {
	if a.cfg.FundamentalFreq > 0 {
		return clampInt(int(math.Round(a.cfg.FundamentalFreq/binHz)), lo, hi)
	}

	best := lo
	for k := lo + 1; k <= hi; k++ {
		if power[k] > power[best] {
			best = k
		}
	}
	return best
}

// bandLevel returns the amplitude carried by the bins within capture of
// center, summed by energy.
func bandLevel(power []float64, center, capture int) float64 {
	if center < 0 || center >= len(power) {
		return 0
	}

	sum := 0.0
	for k := max(center-capture, 0); k <= min(center+capture, len(power)-1); k++ {
		sum += power[k]
	}
	return math.Sqrt(sum)
}

func mean(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
