package crossover

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/filter/biquad"
	"github.com/cwbudde/algo-dualband/dsp/filter/design/pass"
)

const (
	// MinCutoff is the lowest accepted crossover frequency in Hz.
	MinCutoff = 20.0
	// MaxCutoff is the highest accepted crossover frequency in Hz.
	MaxCutoff = 20000.0
	// DefaultCutoff is the crossover frequency of a new Crossover in Hz.
	DefaultCutoff = 200.0
	// Order is the Linkwitz-Riley order of the split.
	Order = 4

	// cutoff ceiling relative to the sample rate; keeps the bilinear
	// prewarp finite at low sample rates
	maxCutoffRatio = 0.49
)

// channelState holds the delay lines of one channel: two cascaded sections
// per branch.
type channelState struct {
	lp [2]biquad.State
	hp [2]biquad.State
}

// Crossover is a multichannel two-way LR4 crossover.
//
// A Crossover is not safe for concurrent use. Prepare and Reset must not
// overlap with processing calls.
type Crossover struct {
	lp, hp     biquad.Coefficients // one Butterworth section, run twice per branch
	channels   []channelState
	cutoff     float64
	sampleRate float64
	blockSize  int
}

// New returns a Crossover prepared for the spec built from opts (defaults:
// 48 kHz, 1024 samples, 2 channels) with the cutoff at [DefaultCutoff].
func New(opts ...core.ProcessorOption) *Crossover {
	c := &Crossover{cutoff: DefaultCutoff}
	c.prepare(core.ApplyProcessorOptions(opts...))
	return c
}

// Prepare sizes the per-channel state for spec, clears all history and
// recomputes the coefficients for the new sample rate. The current cutoff is
// kept (re-clamped against the new sample rate).
//
// An invalid spec is rejected with an error wrapping [core.ErrInvalidSpec]
// and the crossover keeps its previous layout.
func (c *Crossover) Prepare(spec core.ProcessSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("crossover: %w", err)
	}

	c.prepare(spec)
	return nil
}

func (c *Crossover) prepare(spec core.ProcessSpec) {
	if len(c.channels) != spec.NumChannels {
		c.channels = make([]channelState, spec.NumChannels)
	}
	c.sampleRate = spec.SampleRate
	c.blockSize = spec.MaxBlockSize
	c.SetCutoffFrequency(c.cutoff)
	c.Reset()
}

// Reset clears the delay lines of every channel without reallocating.
func (c *Crossover) Reset() {
	clear(c.channels)
}

// SetCutoffFrequency sets the crossover frequency for all channels and
// returns the frequency actually applied.
//
// The value is clamped to [MinCutoff, MaxCutoff] and below 0.49·sampleRate;
// NaN selects [DefaultCutoff]. The new coefficients take effect on the next
// processed sample. Delay-line history is kept. Zero-alloc.
//
// If no section can be designed for the clamped frequency the previous
// coefficients stay in place. The clamp keeps the cutoff below Nyquist, so
// this only happens for a sample rate that was never validated.
func (c *Crossover) SetCutoffFrequency(hz float64) float64 {
	c.cutoff = ClampCutoff(hz, c.sampleRate)
	if lp, hp, ok := pass.ButterworthPair2(c.cutoff, c.sampleRate); ok {
		c.lp, c.hp = lp, hp
	}
	return c.cutoff
}

// ClampCutoff returns hz limited to the range a Crossover running at
// sampleRate accepts.
func ClampCutoff(hz, sampleRate float64) float64 {
	if math.IsNaN(hz) {
		hz = DefaultCutoff
	}
	hz = core.Clamp(hz, MinCutoff, MaxCutoff)
	if ceiling := maxCutoffRatio * sampleRate; hz > ceiling {
		hz = ceiling
	}
	return hz
}

// ProcessSample filters one input sample of the given channel and returns
// the low-band and high-band outputs. Their sum is allpass. Delay-line
// values below [core.DenormalThreshold] are flushed to zero after every
// sample.
//
// channel must be in [0, NumChannels()); an out-of-range channel panics.
func (c *Crossover) ProcessSample(channel int, x float64) (low, high float64) {
	st := &c.channels[channel]

	low = c.lp.Step(x, &st.lp[0])
	low = c.lp.Step(low, &st.lp[1])

	high = c.hp.Step(x, &st.hp[0])
	high = c.hp.Step(high, &st.hp[1])

	st.flushDenormals()
	return low, high
}

// ProcessBlock filters a block of input samples of the given channel,
// writing the low-band output to low and the high-band output to high.
// low and high must be at least as long as in and must not overlap each
// other; in may be the same slice as low or high. Zero-alloc.
//
// Denormals are flushed once at the end of the block rather than per sample,
// so the output matches ProcessSample to within [core.DenormalThreshold].
func (c *Crossover) ProcessBlock(channel int, in, low, high []float64) {
	n := len(in)
	if n == 0 {
		return
	}
	st := &c.channels[channel]
	low = low[:n]
	high = high[:n]

	copy(low, in)
	copy(high, in)

	c.lp.StepCascade(low, &st.lp[0], &st.lp[1])
	c.hp.StepCascade(high, &st.hp[0], &st.hp[1])

	st.flushDenormals()
}

func (st *channelState) flushDenormals() {
	for i := range st.lp {
		st.lp[i][0] = core.FlushDenormals(st.lp[i][0])
		st.lp[i][1] = core.FlushDenormals(st.lp[i][1])
		st.hp[i][0] = core.FlushDenormals(st.hp[i][0])
		st.hp[i][1] = core.FlushDenormals(st.hp[i][1])
	}
}

// Response returns the analytic complex frequency response of the low and
// high branches at freqHz. |low+high| is 1 at every frequency.
func (c *Crossover) Response(freqHz float64) (low, high complex128) {
	l := c.lp.Response(freqHz, c.sampleRate)
	h := c.hp.Response(freqHz, c.sampleRate)
	return l * l, h * h
}

// Sections returns copies of the low and high branch cascades.
func (c *Crossover) Sections() (low, high []biquad.Coefficients) {
	return []biquad.Coefficients{c.lp, c.lp}, []biquad.Coefficients{c.hp, c.hp}
}

// Cutoff returns the applied crossover frequency in Hz.
func (c *Crossover) Cutoff() float64 { return c.cutoff }

// SampleRate returns the sample rate in Hz.
func (c *Crossover) SampleRate() float64 { return c.sampleRate }

// NumChannels returns the number of prepared channels.
func (c *Crossover) NumChannels() int { return len(c.channels) }

// MaxBlockSize returns the block size of the last prepared spec.
func (c *Crossover) MaxBlockSize() int { return c.blockSize }
