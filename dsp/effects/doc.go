// Package effects provides reusable non-I/O DSP effect kernels.
//
// Subpackages:
//   - github.com/cwbudde/algo-dualband/dsp/effects/dualband
//
// Kernels remaining in this package:
//   - BandMode: per-band waveshaping applied to negative half-waves
//     (pass through, clip to zero, or rectify).
//
// All kernels are designed for real-time processing with zero-allocation
// hot paths and support both single-sample and buffer-based processing.
package effects
