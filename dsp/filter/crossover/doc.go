// Package crossover provides a multichannel two-way Linkwitz-Riley crossover
// for splitting an audio signal into a low and a high band.
//
// The [Crossover] type implements a 4th-order (LR4) split: each branch is two
// cascaded 2nd-order Butterworth sections tuned to the same cutoff. The low
// and high outputs sum to a 2nd-order allpass response, i.e. a flat magnitude
// response with matched phase between the bands.
//
// Coefficients are shared by all channels; each channel owns a fixed-size
// record of delay lines in a contiguous slice, so processing never allocates.
//
// Example:
//
//	xo := crossover.New(core.WithSampleRate(48000), core.WithChannels(2))
//	xo.SetCutoffFrequency(1000)
//	lo, hi := xo.ProcessSample(0, inputSample)
//	sum := lo + hi // ≈ allpass-filtered input
package crossover
