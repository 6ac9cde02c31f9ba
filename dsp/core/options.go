package core

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec is returned when a ProcessSpec cannot be used for processing.
var ErrInvalidSpec = errors.New("invalid process spec")

// ProcessSpec describes the playback session a processor is prepared for.
// It is set once per session, before any sample is processed.
type ProcessSpec struct {
	SampleRate   float64
	MaxBlockSize int
	NumChannels  int
}

// ProcessorOption mutates a ProcessSpec.
type ProcessorOption func(*ProcessSpec)

// DefaultProcessSpec returns sensible defaults for offline and streaming use.
func DefaultProcessSpec() ProcessSpec {
	return ProcessSpec{
		SampleRate:   48000,
		MaxBlockSize: 1024,
		NumChannels:  2,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(spec *ProcessSpec) {
		if ValidSampleRate(sampleRate) {
			spec.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the maximum processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(spec *ProcessSpec) {
		if blockSize > 0 {
			spec.MaxBlockSize = blockSize
		}
	}
}

// WithChannels sets the number of processed channels.
func WithChannels(numChannels int) ProcessorOption {
	return func(spec *ProcessSpec) {
		if numChannels > 0 {
			spec.NumChannels = numChannels
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default spec.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessSpec {
	spec := DefaultProcessSpec()
	for _, opt := range opts {
		if opt != nil {
			opt(&spec)
		}
	}
	return spec
}

// Validate reports whether the spec can drive a processor.
// The returned error wraps ErrInvalidSpec.
func (s ProcessSpec) Validate() error {
	if !ValidSampleRate(s.SampleRate) {
		return fmt.Errorf("%w: sample rate must be positive and finite, got %v", ErrInvalidSpec, s.SampleRate)
	}
	if s.MaxBlockSize <= 0 {
		return fmt.Errorf("%w: max block size must be positive, got %d", ErrInvalidSpec, s.MaxBlockSize)
	}
	if s.NumChannels <= 0 {
		return fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidSpec, s.NumChannels)
	}
	return nil
}
