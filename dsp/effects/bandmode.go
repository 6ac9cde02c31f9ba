package effects

import "math"

// BandMode selects the negative half-cycle policy applied to one band.
type BandMode uint8

const (
	// BandModeOff passes the band through unchanged.
	BandModeOff BandMode = iota
	// BandModeClipNegative hard-clips the negative half-cycle to zero.
	BandModeClipNegative
	// BandModeRectifyNegative folds the negative half-cycle up into the
	// positive range, leaving positive samples untouched.
	BandModeRectifyNegative

	numBandModes
)

var (
	bandModeNames  = [numBandModes]string{"off", "half", "full"}
	bandModeLabels = [numBandModes]string{"No processing", "Half Wave", "Full Wave"}
)

// BandModes returns every mode in host index order.
func BandModes() []BandMode {
	return []BandMode{BandModeOff, BandModeClipNegative, BandModeRectifyNegative}
}

// NumBandModes is the number of selectable modes.
func NumBandModes() int { return int(numBandModes) }

// Valid reports whether m is one of the defined modes.
func (m BandMode) Valid() bool { return m < numBandModes }

// String returns a short identifier ("off", "half", "full"). Unknown values
// report as "off", matching how they are processed.
func (m BandMode) String() string {
	if !m.Valid() {
		return bandModeNames[BandModeOff]
	}
	return bandModeNames[m]
}

// Label returns the display label shown for m.
func (m BandMode) Label() string {
	if !m.Valid() {
		return bandModeLabels[BandModeOff]
	}
	return bandModeLabels[m]
}

// BandModeFromIndex converts a host choice index (0, 1, 2) to a BandMode.
// Fractional values truncate toward zero. NaN, negative and out-of-range
// values map to BandModeOff.
func BandModeFromIndex(v float64) BandMode {
	if math.IsNaN(v) || v < 0 || v >= float64(numBandModes) {
		return BandModeOff
	}
	return BandMode(v)
}

// BandModeFromString parses the identifier returned by String or a decimal
// index. ok is false for anything else.
func BandModeFromString(s string) (BandMode, bool) {
	for i, name := range bandModeNames {
		if s == name {
			return BandMode(i), true
		}
	}
	if len(s) == 1 && s[0] >= '0' && s[0] < '0'+byte(numBandModes) {
		return BandMode(s[0] - '0'), true
	}
	return BandModeOff, false
}

// ApplyBandMode shapes a single sample. Non-negative input is returned
// unchanged by every mode; an unrecognized mode behaves as BandModeOff.
func ApplyBandMode(mode BandMode, x float64) float64 {
	if x >= 0 {
		return x
	}

	switch mode {
	case BandModeClipNegative:
		return 0
	case BandModeRectifyNegative:
		return -x
	default:
		return x
	}
}

// ApplyBandModeBlock shapes buf in place.
func ApplyBandModeBlock(mode BandMode, buf []float64) {
	switch mode {
	case BandModeClipNegative:
		for i, x := range buf {
			if x < 0 {
				buf[i] = 0
			}
		}
	case BandModeRectifyNegative:
		for i, x := range buf {
			if x < 0 {
				buf[i] = -x
			}
		}
	}
}
