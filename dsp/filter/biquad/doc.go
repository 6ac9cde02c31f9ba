// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// [Coefficients] describe one second-order section in Direct Form II
// Transposed. The delay line is a separate [State] value so callers can keep
// many independent histories (one per channel) in a flat slice while sharing
// a single coefficient set.
//
// Block processing is dispatched to the fastest registered kernel for the
// running CPU. Coefficient design lives in dsp/filter/design/pass.
package biquad
