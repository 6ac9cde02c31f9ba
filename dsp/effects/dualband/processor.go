package dualband

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/effects"
	"github.com/cwbudde/algo-dualband/dsp/filter/crossover"
)

// Option configures a Processor at construction.
type Option func(*config)

type config struct {
	logger *slog.Logger
	spec   []core.ProcessorOption
	init   Snapshot
}

// WithLogger sets the logger used for layout changes. The audio path never
// logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSpec sets the initial processing spec.
func WithSpec(opts ...core.ProcessorOption) Option {
	return func(c *config) {
		c.spec = append(c.spec, opts...)
	}
}

// WithInitialCutoff sets the initial crossover frequency in Hz.
func WithInitialCutoff(hz float64) Option {
	return func(c *config) {
		c.init.Cutoff = clampCutoff(hz)
	}
}

// WithInitialModes sets the initial low and high band modes. Unknown modes
// fall back to off.
func WithInitialModes(low, high effects.BandMode) Option {
	return func(c *config) {
		c.init.Low = sanitizeMode(low)
		c.init.High = sanitizeMode(high)
	}
}

// Processor is the dual-band signal graph.
//
// ProcessBlock and ProcessSample belong to the real-time context. The
// parameter methods (OnParameterChanged, SetNormalized, Snapshot) may be
// called concurrently from any goroutine. New, Prepare and Reset must not
// overlap with processing.
type Processor struct {
	params  paramStore
	xover   *crossover.Crossover
	high    []float64 // per-chunk high-band scratch
	spec    core.ProcessSpec
	seen    float64 // published cutoff the coefficients were last built from
	current Snapshot
	logger  *slog.Logger
}

// New returns a Processor prepared with the default spec (48 kHz, 1024
// samples, 2 channels) unless overridden, cutoff 200 Hz and both bands off.
func New(opts ...Option) *Processor {
	cfg := config{logger: slog.Default(), init: DefaultSnapshot()}
	for _, opt := range opts {
		opt(&cfg)
	}

	spec := core.ApplyProcessorOptions(cfg.spec...)
	p := &Processor{
		xover:  crossover.New(cfg.spec...),
		logger: cfg.logger,
	}
	p.params.store(cfg.init)
	p.layout(spec)

	return p
}

// Prepare resizes the processor for spec and clears all filter history.
// It may allocate. An invalid spec leaves the processor unchanged and
// returns an error wrapping [core.ErrInvalidSpec].
func (p *Processor) Prepare(spec core.ProcessSpec) error {
	if err := p.xover.Prepare(spec); err != nil {
		p.logger.Warn("dualband: prepare rejected",
			"sampleRate", spec.SampleRate,
			"blockSize", spec.MaxBlockSize,
			"channels", spec.NumChannels,
			"err", err)
		return fmt.Errorf("dualband: %w", err)
	}

	p.layout(spec)
	return nil
}

func (p *Processor) layout(spec core.ProcessSpec) {
	p.spec = spec
	p.high = core.EnsureLen(p.high, spec.MaxBlockSize)
	p.current = p.params.load()
	p.seen = p.current.Cutoff
	p.xover.SetCutoffFrequency(p.seen)

	p.logger.Debug("dualband: prepared",
		"sampleRate", spec.SampleRate,
		"blockSize", spec.MaxBlockSize,
		"channels", spec.NumChannels,
		"cutoff", p.xover.Cutoff(),
		"low", p.current.Low,
		"high", p.current.High)
}

// Reset clears the crossover history of every channel.
func (p *Processor) Reset() {
	p.xover.Reset()
}

// Spec returns the prepared processing spec.
func (p *Processor) Spec() core.ProcessSpec { return p.spec }

// Crossover exposes the underlying crossover for analysis.
func (p *Processor) Crossover() *crossover.Crossover { return p.xover }

// AppliedCutoff returns the frequency the crossover currently runs at. It
// trails the published cutoff until the next processed block.
func (p *Processor) AppliedCutoff() float64 { return p.xover.Cutoff() }

// ProcessBlock processes buf in place. buf holds one slice per channel, all
// of the same length.
//
// Channels in [numInputChannels, len(buf)) are cleared to silence. Each
// input channel below the prepared channel count is split, shaped per band
// and summed back; input channels beyond the prepared count are left
// untouched. Blocks longer than the prepared maximum block size are
// processed in chunks. No allocation, no locks.
func (p *Processor) ProcessBlock(buf [][]float64, numInputChannels int) {
	numInputChannels = min(max(numInputChannels, 0), len(buf))
	core.ZeroChannels(buf, numInputChannels)

	p.sync()
	s := p.current

	channels := min(numInputChannels, p.xover.NumChannels())
	blockSize := len(p.high)

	for ch := range channels {
		data := buf[ch]
		for start := 0; start < len(data); start += blockSize {
			chunk := data[start:min(start+blockSize, len(data))]
			high := p.high[:len(chunk)]

			p.xover.ProcessBlock(ch, chunk, chunk, high)
			effects.ApplyBandModeBlock(s.Low, chunk)
			effects.ApplyBandModeBlock(s.High, high)
			vecmath.AddBlockInPlace(chunk, high)
		}
	}
}

// ProcessSample runs one sample of channel through the graph using the
// parameters in effect for the current block. Call [Processor.BeginBlock]
// first when driving the processor sample by sample.
func (p *Processor) ProcessSample(channel int, x float64) float64 {
	low, high := p.xover.ProcessSample(channel, x)
	return effects.ApplyBandMode(p.current.Low, low) + effects.ApplyBandMode(p.current.High, high)
}

// BeginBlock picks up the latest published parameters. ProcessBlock does
// this itself.
func (p *Processor) BeginBlock() {
	p.sync()
}

// sync loads the snapshot once and rebuilds the crossover coefficients when
// the published cutoff moved.
func (p *Processor) sync() {
	p.current = p.params.load()
	if p.current.Cutoff != p.seen {
		p.seen = p.current.Cutoff
		p.xover.SetCutoffFrequency(p.seen)
	}
}
