package crossover_test

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/filter/crossover"
)

func ExampleNew() {
	xo := crossover.New(core.WithSampleRate(48000), core.WithChannels(2))
	xo.SetCutoffFrequency(1000)

	db := func(h complex128) float64 { return 20 * math.Log10(cmplx.Abs(h)) }

	lo, hi := xo.Response(1000)
	fmt.Printf("channels=%d cutoff=%.0f Hz\n", xo.NumChannels(), xo.Cutoff())
	fmt.Printf("low at 1000 Hz:  %.2f dB\n", db(lo))
	fmt.Printf("high at 1000 Hz: %.2f dB\n", db(hi))
	fmt.Printf("|sum| at 1000 Hz: %.6f\n", cmplx.Abs(lo+hi))
	// Output:
	// channels=2 cutoff=1000 Hz
	// low at 1000 Hz:  -6.02 dB
	// high at 1000 Hz: -6.02 dB
	// |sum| at 1000 Hz: 1.000000
}

func ExampleCrossover_SetCutoffFrequency() {
	xo := crossover.New()

	fmt.Println(xo.SetCutoffFrequency(5))
	fmt.Println(xo.SetCutoffFrequency(1500))
	fmt.Println(xo.SetCutoffFrequency(50000))
	// Output:
	// 20
	// 1500
	// 20000
}
