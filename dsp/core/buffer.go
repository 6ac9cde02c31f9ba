package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ZeroChannels clears every channel of a planar buffer starting at index from.
// Indices outside the buffer are ignored.
func ZeroChannels(buf [][]float64, from int) {
	if from < 0 {
		from = 0
	}
	for ch := from; ch < len(buf); ch++ {
		Zero(buf[ch])
	}
}
