// Package unrolled registers a 4x-unrolled scalar kernel for CPUs with wide
// out-of-order cores (SSE2-class amd64, NEON-class arm64).
package unrolled

import (
	"github.com/cwbudde/algo-dualband/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	for _, level := range []struct {
		name  string
		level cpu.SIMDLevel
	}{
		{"unrolled-sse2", cpu.SIMDSSE2},
		{"unrolled-neon", cpu.SIMDNEON},
	} {
		registry.Global.Add(registry.Kernel{
			Name:     level.name,
			Level:    level.level,
			Priority: 10,
			Block:    block,
			Cascade:  cascade,
		})
	}
}

func block(s registry.Section, d *[2]float64, buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	s0, s1 := d[0], d[1]

	i := 0
	n := len(buf)
	for ; i+3 < n; i += 4 {
		x0, x1, x2, x3 := buf[i], buf[i+1], buf[i+2], buf[i+3]

		y0 := b0*x0 + s0
		s0 = b1*x0 - a1*y0 + s1
		s1 = b2*x0 - a2*y0

		y1 := b0*x1 + s0
		s0 = b1*x1 - a1*y1 + s1
		s1 = b2*x1 - a2*y1

		y2 := b0*x2 + s0
		s0 = b1*x2 - a1*y2 + s1
		s1 = b2*x2 - a2*y2

		y3 := b0*x3 + s0
		s0 = b1*x3 - a1*y3 + s1
		s1 = b2*x3 - a2*y3

		buf[i], buf[i+1], buf[i+2], buf[i+3] = y0, y1, y2, y3
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + s0
		s0 = b1*x - a1*y + s1
		s1 = b2*x - a2*y
		buf[i] = y
	}

	d[0], d[1] = s0, s1
}

// two passes keep the inner loop small enough to stay in registers
func cascade(s registry.Section, d1, d2 *[2]float64, buf []float64) {
	block(s, d1, buf)
	block(s, d2, buf)
}
