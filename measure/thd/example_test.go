package thd_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dualband/dsp/effects"
	"github.com/cwbudde/algo-dualband/measure/thd"
)

// A half-wave clipped sine carries a DC offset and even harmonics only.
func ExampleAnalyzeSignal() {
	const (
		sampleRate = 48000.0
		fftSize    = 4096
	)
	fundamental := 64 * sampleRate / fftSize // bin-centred, 750 Hz

	signal := make([]float64, fftSize)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * fundamental * float64(i) / sampleRate)
	}
	effects.ApplyBandModeBlock(effects.BandModeClipNegative, signal)

	res, err := thd.AnalyzeSignal(signal, thd.Config{
		SampleRate:      sampleRate,
		FFTSize:         fftSize,
		FundamentalFreq: fundamental,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("fundamental: %.0f Hz\n", res.FundamentalFreq)
	fmt.Printf("THD: %.1f%% even: %.1f%% odd: %.1f%%\n", res.THD*100, res.EvenHD*100, res.OddHD*100)
	fmt.Printf("DC: %.3f\n", res.DC)
	// Output:
	// fundamental: 750 Hz
	// THD: 43.7% even: 43.7% odd: 0.0%
	// DC: 0.318
}
