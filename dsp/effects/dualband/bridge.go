package dualband

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/effects"
	"github.com/cwbudde/algo-dualband/dsp/filter/crossover"
)

// OnParameterChanged publishes a host parameter change. It is safe to call
// from any goroutine concurrently with processing; it neither blocks nor
// allocates.
//
// "cutoff" takes a frequency in Hz (clamped to [20, 20000]); "lowMode" and
// "highMode" take a zero-based choice index. Unknown identifiers are
// ignored. The change is picked up at the start of the next block.
func (p *Processor) OnParameterChanged(id string, value float32) {
	v := float64(value)

	switch id {
	case ParamCutoff:
		hz := clampCutoff(v)
		p.params.setCutoff(hz)
	case ParamLowMode:
		p.params.setLow(effects.BandModeFromIndex(v))
	case ParamHighMode:
		p.params.setHigh(effects.BandModeFromIndex(v))
	}
}

// SetNormalized publishes a change given as a normalized [0, 1] value, the
// way VST3-style hosts deliver automation.
func (p *Processor) SetNormalized(id string, normalized float64) error {
	d, err := Lookup(id)
	if err != nil {
		return fmt.Errorf("dualband: set normalized: %w", err)
	}

	p.OnParameterChanged(id, float32(d.Denormalize(normalized)))
	return nil
}

// SetSnapshot publishes all three parameters at once.
func (p *Processor) SetSnapshot(s Snapshot) {
	p.params.store(Snapshot{
		Cutoff: clampCutoff(s.Cutoff),
		Low:    sanitizeMode(s.Low),
		High:   sanitizeMode(s.High),
	})
}

// Snapshot returns the most recently published parameters.
func (p *Processor) Snapshot() Snapshot {
	return p.params.load()
}

// Value returns the plain value of the parameter id, as the host would
// display it.
func (p *Processor) Value(id string) (float64, bool) {
	s := p.params.load()

	switch id {
	case ParamCutoff:
		return s.Cutoff, true
	case ParamLowMode:
		return float64(s.Low), true
	case ParamHighMode:
		return float64(s.High), true
	}
	return 0, false
}

func clampCutoff(hz float64) float64 {
	if math.IsNaN(hz) {
		return crossover.DefaultCutoff
	}
	// Round through float32 so the stored value matches what the packed
	// word can hold.
	return float64(float32(core.Clamp(hz, crossover.MinCutoff, crossover.MaxCutoff)))
}

func sanitizeMode(m effects.BandMode) effects.BandMode {
	if !m.Valid() {
		return effects.BandModeOff
	}
	return m
}
