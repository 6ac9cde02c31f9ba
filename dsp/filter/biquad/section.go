package biquad

import (
	"sync"

	"github.com/cwbudde/algo-dualband/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// State is the two-sample delay line [d0, d1] of one section.
// The zero value is silence.
type State [2]float64

var (
	kernel     registry.Kernel
	kernelOnce sync.Once
)

func selectKernel() {
	k, ok := registry.Global.Best(cpu.DetectFeatures())
	if !ok || k.Block == nil || k.Cascade == nil {
		panic("biquad: no usable block kernel registered")
	}
	kernel = k
}

func (c *Coefficients) section() registry.Section {
	return registry.Section{B0: c.B0, B1: c.B1, B2: c.B2, A1: c.A1, A2: c.A2}
}

// Step filters one input sample through c, advancing the delay line d.
func (c *Coefficients) Step(x float64, d *State) float64 {
	y := c.B0*x + d[0]
	d[0] = c.B1*x - c.A1*y + d[1]
	d[1] = c.B2*x - c.A2*y

	return y
}

// StepBlock filters buf in place through c, advancing the delay line d.
// The result matches calling Step for every element. Zero-alloc.
func (c *Coefficients) StepBlock(buf []float64, d *State) {
	if len(buf) == 0 {
		return
	}
	kernelOnce.Do(selectKernel)
	kernel.Block(c.section(), (*[2]float64)(d), buf)
}

// StepCascade filters buf in place through two copies of c in series,
// d1 holding the first stage's history and d2 the second's. It is
// equivalent to StepBlock(buf, d1) followed by StepBlock(buf, d2).
func (c *Coefficients) StepCascade(buf []float64, d1, d2 *State) {
	if len(buf) == 0 {
		return
	}
	kernelOnce.Do(selectKernel)
	kernel.Cascade(c.section(), (*[2]float64)(d1), (*[2]float64)(d2), buf)
}

// Reset clears the delay line.
func (d *State) Reset() { *d = State{} }

// Kernel returns the name of the block kernel selected for this CPU.
func Kernel() string {
	kernelOnce.Do(selectKernel)
	return kernel.Name
}

// Kernels lists every registered block kernel in selection order, including
// those this CPU cannot run.
func Kernels() []string {
	return registry.Global.Names()
}
