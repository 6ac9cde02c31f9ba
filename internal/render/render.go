// Package render runs the dual-band processor offline over beep streams and
// WAV files.
package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/effects/dualband"
	"github.com/cwbudde/algo-dualband/dsp/signal"
)

// ErrUnsupportedChannels is returned for formats that are neither mono nor
// stereo.
var ErrUnsupportedChannels = errors.New("render: only mono and stereo are supported")

// Streamer is a beep.Streamer that runs every buffer of its source through
// a dualband.Processor.
//
// beep always streams stereo frames. With a mono source only the left
// channel is processed and the result is copied to the right.
type Streamer struct {
	src         beep.Streamer
	p           *dualband.Processor
	numChannels int
	planar      [][]float64
	frames      int
	peak        float64
}

// NewStreamer wraps src. numChannels is the channel count of the source
// material (1 or 2).
func NewStreamer(src beep.Streamer, p *dualband.Processor, numChannels int) *Streamer {
	numChannels = min(max(numChannels, 1), 2)

	return &Streamer{
		src:         src,
		p:           p,
		numChannels: numChannels,
		planar:      make([][]float64, numChannels),
	}
}

// Stream implements beep.Streamer.
func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	if n == 0 {
		return n, ok
	}

	for ch := range s.planar {
		s.planar[ch] = core.EnsureLen(s.planar[ch], n)
		for i := range n {
			s.planar[ch][i] = samples[i][ch]
		}
	}

	s.p.ProcessBlock(s.planar, s.numChannels)
	for ch := range s.planar {
		s.peak = max(s.peak, signal.Peak(s.planar[ch][:n]))
	}

	for i := range n {
		samples[i][0] = s.planar[0][i]
		samples[i][1] = s.planar[s.numChannels-1][i]
	}
	s.frames += n

	return n, ok
}

// Err implements beep.Streamer.
func (s *Streamer) Err() error {
	return s.src.Err()
}

// Frames returns the number of frames streamed so far.
func (s *Streamer) Frames() int {
	return s.frames
}

// Peak returns the largest absolute output sample streamed so far.
func (s *Streamer) Peak() float64 {
	return s.peak
}

// Stats summarizes a finished render.
type Stats struct {
	Format beep.Format
	Frames int
	Peak   float64
}

// Render prepares p for format, streams src through it and encodes the
// result as WAV into w.
func Render(w io.WriteSeeker, src beep.Streamer, format beep.Format, p *dualband.Processor) (Stats, error) {
	if format.NumChannels < 1 || format.NumChannels > 2 {
		return Stats{}, fmt.Errorf("%w: got %d", ErrUnsupportedChannels, format.NumChannels)
	}

	spec := core.ProcessSpec{
		SampleRate:   float64(format.SampleRate),
		MaxBlockSize: p.Spec().MaxBlockSize,
		NumChannels:  format.NumChannels,
	}
	if err := p.Prepare(spec); err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	s := NewStreamer(src, p, format.NumChannels)
	if err := wav.Encode(w, s, format); err != nil {
		return Stats{}, fmt.Errorf("render: encode: %w", err)
	}
	if err := s.Err(); err != nil {
		return Stats{}, fmt.Errorf("render: source: %w", err)
	}

	return Stats{Format: format, Frames: s.Frames(), Peak: s.Peak()}, nil
}

// DecodeGain is the factor that brings samples from wav.Decode back to the
// level Format.EncodeSigned wrote them at. The decoder divides 16 and 24 bit
// PCM by 2^bits-1 while the encoder scales by 2^(bits-1)-1, so those
// precisions come back roughly 6 dB low. 8 bit PCM is symmetric.
func DecodeGain(precision int) float64 {
	if precision < 2 || precision > 3 {
		return 1
	}
	bits := float64(precision * 8)
	return (math.Exp2(bits) - 1) / (math.Exp2(bits-1) - 1)
}

// LevelCorrected wraps a stream decoded by wav.Decode so it plays back at
// the level it was encoded with.
func LevelCorrected(src beep.Streamer, format beep.Format) beep.Streamer {
	g := DecodeGain(format.Precision)
	if g == 1 {
		return src
	}
	return &effects.Gain{Streamer: src, Gain: g - 1}
}

// RenderFile decodes the WAV file at inPath, processes it with p and writes
// the result to outPath with the same format.
func RenderFile(inPath, outPath string, p *dualband.Processor, logger *slog.Logger) (Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	src, format, err := wav.Decode(in)
	if err != nil {
		in.Close()
		return Stats{}, fmt.Errorf("render: decode %s: %w", inPath, err)
	}
	defer src.Close()

	logger.Info("decoded input",
		"path", inPath,
		"sampleRate", int(format.SampleRate),
		"channels", format.NumChannels,
		"bits", format.Precision*8,
		"frames", src.Len())

	out, err := os.Create(outPath)
	if err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	stats, err := Render(out, LevelCorrected(src, format), format, p)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("render: close %s: %w", outPath, cerr)
	}
	if err != nil {
		return Stats{}, err
	}

	logger.Info("rendered output", "path", outPath, "frames", stats.Frames, "peak", stats.Peak)

	return stats, nil
}
