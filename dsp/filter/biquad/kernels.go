package biquad

import (
	_ "github.com/cwbudde/algo-dualband/dsp/filter/biquad/internal/arch/generic"  // register generic backend
	_ "github.com/cwbudde/algo-dualband/dsp/filter/biquad/internal/arch/unrolled" // register unrolled backends
)
