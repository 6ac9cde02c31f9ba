// Package dualband implements a two-band negative half-cycle distortion.
//
// Each channel is split by a 4th-order Linkwitz-Riley crossover. The low and
// high bands are shaped independently by an [effects.BandMode] and summed
// back into the buffer:
//
//	input → crossover ─ low  → [lowMode]  ─╲
//	                  ─ high → [highMode] ─ + → output
//
// Parameters (cutoff, lowMode, highMode) are published from the control
// context through [Processor.OnParameterChanged] and read by
// [Processor.ProcessBlock] as one packed atomic word, so the audio path
// always sees a self-consistent triple and never blocks.
package dualband
