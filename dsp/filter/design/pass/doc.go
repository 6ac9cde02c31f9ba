// Package pass designs lowpass and highpass biquad cascades.
//
// Butterworth sections are derived with the bilinear transform using
// frequency prewarping, so the -3 dB point lands exactly on the requested
// cutoff. Linkwitz-Riley cascades are built from two identical Butterworth
// cascades and are the building block of dsp/filter/crossover.
package pass
