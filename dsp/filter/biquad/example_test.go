package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-dualband/dsp/filter/biquad"
)

func ExampleCoefficients_Step() {
	c := biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	}

	var state biquad.State
	for i := range 6 {
		var x float64
		if i == 0 {
			x = 1
		}

		y := c.Step(x, &state)
		fmt.Printf("y[%d] = %.6f\n", i, y)
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
	// y[4] = -0.004400
	// y[5] = -0.002800
}

func ExampleCoefficients_StepBlock() {
	c := biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	}

	var state biquad.State
	buf := []float64{1, 0, 0, 0}
	c.StepBlock(buf, &state)

	for i, y := range buf {
		fmt.Printf("y[%d] = %.6f\n", i, y)
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
}
