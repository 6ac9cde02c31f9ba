// Package registry holds the biquad block kernels compiled into this build
// and picks one for the running CPU.
package registry

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Section mirrors biquad.Coefficients (a0 normalized to 1).
type Section struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BlockFn filters buf in place through one section with delay line d.
type BlockFn func(s Section, d *[2]float64, buf []float64)

// CascadeFn filters buf in place through s twice in series, with d1 the
// delay line of the first stage and d2 of the second. This is the shape of
// one Linkwitz-Riley branch.
type CascadeFn func(s Section, d1, d2 *[2]float64, buf []float64)

// Kernel is one registered implementation.
type Kernel struct {
	Name     string
	Level    cpu.SIMDLevel
	Priority int
	Block    BlockFn
	Cascade  CascadeFn
}

// Registry is a priority-ordered kernel table.
type Registry struct {
	mu      sync.Mutex
	kernels []Kernel
}

// Global receives the kernels registered by the arch packages' init funcs.
var Global = &Registry{}

// Add inserts k, keeping the table ordered by descending priority.
// Kernels of equal priority keep registration order.
func (r *Registry) Add(k Kernel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kernels = append(r.kernels, k)
	slices.SortStableFunc(r.kernels, func(a, b Kernel) int {
		return b.Priority - a.Priority
	})
}

// Best returns the highest-priority kernel the CPU described by features
// can run.
func (r *Registry) Best(features cpu.Features) (Kernel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range r.kernels {
		if cpu.Supports(features, k.Level) {
			return k, true
		}
	}
	return Kernel{}, false
}

// Names lists the registered kernels in selection order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.kernels))
	for i, k := range r.kernels {
		names[i] = k.Name
	}
	return names
}
