package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-dualband/dsp/effects"
)

func ExampleApplyBandMode() {
	for _, mode := range effects.BandModes() {
		fmt.Printf("%-13s %v %v\n", mode.Label(), effects.ApplyBandMode(mode, -0.5), effects.ApplyBandMode(mode, 0.5))
	}
	// Output:
	// No processing -0.5 0.5
	// Half Wave     0 0.5
	// Full Wave     0.5 0.5
}

func ExampleBandModeFromIndex() {
	fmt.Println(effects.BandModeFromIndex(1))
	fmt.Println(effects.BandModeFromIndex(2.9))
	fmt.Println(effects.BandModeFromIndex(-1))
	// Output:
	// half
	// full
	// off
}
