// Package testutil provides deterministic test signals and tolerance
// assertions shared by the package tests.
package testutil

import (
	"fmt"

	"github.com/cwbudde/algo-dualband/dsp/signal"
)

func generator(sampleRate float64, seed int64) *signal.Generator {
	g, err := signal.NewGenerator(sampleRate, signal.WithSeed(seed))
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	return g
}

func must(x []float64, err error) []float64 {
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	return x
}

// DeterministicSine returns length samples of a zero-phase sine.
// It panics on invalid arguments.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	return must(generator(sampleRate, 1).Sine(freqHz, amplitude, length))
}

// DeterministicNoise returns seeded white noise in [-amplitude, amplitude].
// It panics on invalid arguments.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	return must(generator(1, seed).WhiteNoise(amplitude, length))
}

// Impulse returns length zeros with a unit sample at pos. A pos outside the
// buffer yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Planar builds a channel buffer holding an independent copy of each signal,
// ready to pass to a block processor that works in place.
func Planar(signals ...[]float64) [][]float64 {
	buf := make([][]float64, len(signals))
	for ch, s := range signals {
		buf[ch] = append([]float64(nil), s...)
	}
	return buf
}
