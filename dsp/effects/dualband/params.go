package dualband

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/effects"
	"github.com/cwbudde/algo-dualband/dsp/filter/crossover"
)

// Parameter identifiers delivered by the host.
const (
	ParamCutoff   = "cutoff"
	ParamLowMode  = "lowMode"
	ParamHighMode = "highMode"
)

// ErrUnknownParameter is returned by [Lookup] and [Processor.SetNormalized]
// for identifiers outside the exposed set.
var ErrUnknownParameter = errors.New("dualband: unknown parameter")

// ParameterKind distinguishes continuous from choice controls.
type ParameterKind int

const (
	ParameterContinuous ParameterKind = iota
	ParameterChoice
)

// ParameterDescriptor describes one host-visible control.
type ParameterDescriptor struct {
	ID      string
	Name    string
	Unit    string
	Kind    ParameterKind
	Min     float64
	Max     float64
	Default float64
	// StepCount is the number of discrete steps (choices minus one); zero
	// for continuous parameters.
	StepCount int
	// Choices holds the display labels of a choice parameter, indexed by
	// value.
	Choices []string
	// Skewed selects logarithmic normalization.
	Skewed bool
}

// Parameters returns the exposed controls in host order.
func Parameters() []ParameterDescriptor {
	return []ParameterDescriptor{
		{
			ID:      ParamCutoff,
			Name:    "Cutoff",
			Unit:    "Hz",
			Kind:    ParameterContinuous,
			Min:     crossover.MinCutoff,
			Max:     crossover.MaxCutoff,
			Default: crossover.DefaultCutoff,
			Skewed:  true,
		},
		modeDescriptor(ParamLowMode, "Low Mode"),
		modeDescriptor(ParamHighMode, "High Mode"),
	}
}

func modeDescriptor(id, name string) ParameterDescriptor {
	labels := make([]string, 0, effects.NumBandModes())
	for _, m := range effects.BandModes() {
		labels = append(labels, m.Label())
	}

	return ParameterDescriptor{
		ID:        id,
		Name:      name,
		Kind:      ParameterChoice,
		Min:       0,
		Max:       float64(len(labels) - 1),
		Default:   float64(effects.BandModeOff),
		StepCount: len(labels) - 1,
		Choices:   labels,
	}
}

// Lookup returns the descriptor for id.
func Lookup(id string) (ParameterDescriptor, error) {
	for _, d := range Parameters() {
		if d.ID == id {
			return d, nil
		}
	}
	return ParameterDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
}

// Normalize maps a plain value into [0, 1].
func (d ParameterDescriptor) Normalize(plain float64) float64 {
	if d.Max <= d.Min || math.IsNaN(plain) {
		return 0
	}
	plain = core.Clamp(plain, d.Min, d.Max)

	if d.Skewed {
		return math.Log(plain/d.Min) / math.Log(d.Max/d.Min)
	}
	return (plain - d.Min) / (d.Max - d.Min)
}

// Denormalize maps a normalized value back to the plain range. Choice
// parameters snap to the nearest step.
func (d ParameterDescriptor) Denormalize(normalized float64) float64 {
	if math.IsNaN(normalized) {
		normalized = d.Normalize(d.Default)
	}
	normalized = core.Clamp(normalized, 0, 1)

	switch {
	case d.StepCount > 0:
		return d.Min + math.Round(normalized*float64(d.StepCount))*(d.Max-d.Min)/float64(d.StepCount)
	case d.Skewed:
		return d.Min * math.Pow(d.Max/d.Min, normalized)
	default:
		return d.Min + normalized*(d.Max-d.Min)
	}
}

// Format renders a plain value for display.
func (d ParameterDescriptor) Format(plain float64) string {
	if d.Kind == ParameterChoice {
		idx := int(core.Clamp(math.Round(plain), d.Min, d.Max))
		if idx >= 0 && idx < len(d.Choices) {
			return d.Choices[idx]
		}
		return "Unknown"
	}

	if d.Unit == "Hz" {
		if plain >= 1000 {
			return fmt.Sprintf("%.2f kHz", plain/1000)
		}
		return fmt.Sprintf("%.1f Hz", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// Parse converts display text back to a plain value. Choice parameters
// accept a label (case-insensitive), a mode identifier or an index;
// frequency parameters accept an optional "Hz" or "kHz" suffix.
func (d ParameterDescriptor) Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)

	if d.Kind == ParameterChoice {
		for i, label := range d.Choices {
			if strings.EqualFold(s, label) {
				return float64(i), nil
			}
		}
		if m, ok := effects.BandModeFromString(strings.ToLower(s)); ok {
			return float64(m), nil
		}
		return 0, fmt.Errorf("dualband: %s: invalid choice %q", d.ID, s)
	}

	scale := 1.0
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "khz"):
		scale = 1000
		s = s[:len(s)-3]
	case strings.HasSuffix(lower, "hz"):
		s = s[:len(s)-2]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("dualband: %s: %w", d.ID, err)
	}
	return v * scale, nil
}
