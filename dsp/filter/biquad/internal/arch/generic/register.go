// Package generic registers the portable scalar kernels. They are the
// fallback every CPU can run.
package generic

import (
	"github.com/cwbudde/algo-dualband/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Add(registry.Kernel{
		Name:    "scalar",
		Level:   cpu.SIMDNone,
		Block:   Block,
		Cascade: Cascade,
	})
}

// Block is the reference DF-II-T loop.
func Block(s registry.Section, d *[2]float64, buf []float64) {
	s0, s1 := d[0], d[1]
	for i, x := range buf {
		y := s.B0*x + s0
		s0 = s.B1*x - s.A1*y + s1
		s1 = s.B2*x - s.A2*y
		buf[i] = y
	}
	d[0], d[1] = s0, s1
}

// Cascade runs both stages per sample in a single pass over buf.
func Cascade(s registry.Section, d1, d2 *[2]float64, buf []float64) {
	p0, p1 := d1[0], d1[1]
	q0, q1 := d2[0], d2[1]
	for i, x := range buf {
		m := s.B0*x + p0
		p0 = s.B1*x - s.A1*m + p1
		p1 = s.B2*x - s.A2*m

		y := s.B0*m + q0
		q0 = s.B1*m - s.A1*y + q1
		q1 = s.B2*m - s.A2*y
		buf[i] = y
	}
	d1[0], d1[1] = p0, p1
	d2[0], d2[1] = q0, q1
}
