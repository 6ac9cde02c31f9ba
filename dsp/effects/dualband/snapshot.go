package dualband

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-dualband/dsp/effects"
	"github.com/cwbudde/algo-dualband/dsp/filter/crossover"
)

// Snapshot is the live parameter triple consumed by the audio path.
type Snapshot struct {
	Cutoff float64
	Low    effects.BandMode
	High   effects.BandMode
}

// DefaultSnapshot returns the parameter values of a new Processor.
func DefaultSnapshot() Snapshot {
	return Snapshot{Cutoff: crossover.DefaultCutoff, Low: effects.BandModeOff, High: effects.BandModeOff}
}

// Layout of the packed word:
//
//	bits  0..31  cutoff as float32
//	bits 32..39  low mode
//	bits 40..47  high mode
const (
	lowShift  = 32
	highShift = 40

	cutoffMask = 1<<32 - 1
	lowMask    = 0xff << lowShift
	highMask   = 0xff << highShift
)

func pack(s Snapshot) uint64 {
	return uint64(math.Float32bits(float32(s.Cutoff))) |
		uint64(s.Low)<<lowShift |
		uint64(s.High)<<highShift
}

func unpack(w uint64) Snapshot {
	return Snapshot{
		Cutoff: float64(math.Float32frombits(uint32(w))),
		Low:    effects.BandMode(w >> lowShift),
		High:   effects.BandMode(w >> highShift),
	}
}

// paramStore is a single-word, lock-free parameter cell. Writers publish
// each field with a CAS loop so concurrent updates to different fields are never lost.
type paramStore struct {
	word atomic.Uint64
}

func (p *paramStore) load() Snapshot {
	return unpack(p.word.Load())
}

func (p *paramStore) store(s Snapshot) {
	p.word.Store(pack(s))
}

// replace swaps the bits selected by mask for bits, leaving the other
// fields as they are. Nothing escapes, so publishing never allocates.
func (p *paramStore) replace(mask, bits uint64) {
	for {
		old := p.word.Load()
		if p.word.CompareAndSwap(old, old&^mask|bits&mask) {
			return
		}
	}
}

func (p *paramStore) setCutoff(hz float64) {
	p.replace(cutoffMask, uint64(math.Float32bits(float32(hz))))
}

func (p *paramStore) setLow(m effects.BandMode) {
	p.replace(lowMask, uint64(m)<<lowShift)
}

func (p *paramStore) setHigh(m effects.BandMode) {
	p.replace(highMask, uint64(m)<<highShift)
}
