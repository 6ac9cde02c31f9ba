package dualband

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-dualband/dsp/effects"
)

func TestOnParameterChanged(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		value float32
		want  Snapshot
	}{
		{"cutoff", ParamCutoff, 1000, Snapshot{Cutoff: 1000}},
		{"cutoff below range", ParamCutoff, 5, Snapshot{Cutoff: 20}},
		{"cutoff above range", ParamCutoff, 1e6, Snapshot{Cutoff: 20000}},
		{"cutoff NaN", ParamCutoff, float32(math.NaN()), Snapshot{Cutoff: 200}},
		{"cutoff +Inf", ParamCutoff, float32(math.Inf(1)), Snapshot{Cutoff: 20000}},
		{"low clip", ParamLowMode, 1, Snapshot{Cutoff: 200, Low: effects.BandModeClipNegative}},
		{"low rectify", ParamLowMode, 2, Snapshot{Cutoff: 200, Low: effects.BandModeRectifyNegative}},
		{"low truncates", ParamLowMode, 1.9, Snapshot{Cutoff: 200, Low: effects.BandModeClipNegative}},
		{"low out of range", ParamLowMode, 3, Snapshot{Cutoff: 200}},
		{"low negative", ParamLowMode, -1, Snapshot{Cutoff: 200}},
		{"low NaN", ParamLowMode, float32(math.NaN()), Snapshot{Cutoff: 200}},
		{"high rectify", ParamHighMode, 2, Snapshot{Cutoff: 200, High: effects.BandModeRectifyNegative}},
		{"unknown id", "foo", 1, Snapshot{Cutoff: 200}},
		{"id is case sensitive", "Cutoff", 1000, Snapshot{Cutoff: 200}},
		{"empty id", "", 2, Snapshot{Cutoff: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.OnParameterChanged(tt.id, tt.value)
			if got := p.Snapshot(); got != tt.want {
				t.Fatalf("Snapshot() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOnParameterChanged_UnknownLeavesStateUnchanged(t *testing.T) {
	p := New()
	p.OnParameterChanged(ParamCutoff, 1000)
	p.OnParameterChanged(ParamLowMode, 1)
	p.OnParameterChanged(ParamHighMode, 2)
	before := p.Snapshot()

	p.OnParameterChanged("foo", 12345)

	if got := p.Snapshot(); got != before {
		t.Fatalf("Snapshot() = %+v after unknown id, want %+v", got, before)
	}
}

func TestOnParameterChanged_FieldsIndependent(t *testing.T) {
	p := New()
	p.OnParameterChanged(ParamLowMode, 2)
	p.OnParameterChanged(ParamCutoff, 800)
	p.OnParameterChanged(ParamHighMode, 1)
	p.OnParameterChanged(ParamCutoff, 900)

	want := Snapshot{Cutoff: 900, Low: effects.BandModeRectifyNegative, High: effects.BandModeClipNegative}
	if got := p.Snapshot(); got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestOnParameterChanged_NoAllocs(t *testing.T) {
	p := New()
	for _, tt := range []struct {
		id    string
		value float32
	}{
		{ParamCutoff, 440},
		{ParamLowMode, 1},
		{ParamHighMode, 2},
		{"foo", 1},
	} {
		allocs := testing.AllocsPerRun(100, func() {
			p.OnParameterChanged(tt.id, tt.value)
		})
		if allocs != 0 {
			t.Errorf("OnParameterChanged(%q) allocated %.1f times per call", tt.id, allocs)
		}
	}
}

func TestFieldSettersKeepOtherFields(t *testing.T) {
	var ps paramStore
	ps.store(Snapshot{Cutoff: 1234, Low: effects.BandModeRectifyNegative, High: effects.BandModeClipNegative})

	ps.setLow(effects.BandModeOff)
	want := Snapshot{Cutoff: 1234, Low: effects.BandModeOff, High: effects.BandModeClipNegative}
	if got := ps.load(); got != want {
		t.Fatalf("after setLow: %+v, want %+v", got, want)
	}

	ps.setCutoff(20000)
	ps.setHigh(effects.BandModeRectifyNegative)
	want = Snapshot{Cutoff: 20000, Low: effects.BandModeOff, High: effects.BandModeRectifyNegative}
	if got := ps.load(); got != want {
		t.Fatalf("after setCutoff/setHigh: %+v, want %+v", got, want)
	}
}

func TestSetNormalized(t *testing.T) {
	p := New()

	if err := p.SetNormalized(ParamCutoff, 0); err != nil {
		t.Fatal(err)
	}
	if got := p.Snapshot().Cutoff; got != 20 {
		t.Fatalf("cutoff at 0 = %v, want 20", got)
	}

	if err := p.SetNormalized(ParamCutoff, 1); err != nil {
		t.Fatal(err)
	}
	if got := p.Snapshot().Cutoff; math.Abs(got-20000) > 0.01 {
		t.Fatalf("cutoff at 1 = %v, want 20000", got)
	}

	if err := p.SetNormalized(ParamLowMode, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := p.SetNormalized(ParamHighMode, 1); err != nil {
		t.Fatal(err)
	}
	s := p.Snapshot()
	if s.Low != effects.BandModeClipNegative || s.High != effects.BandModeRectifyNegative {
		t.Fatalf("modes = %v/%v, want half/full", s.Low, s.High)
	}

	if err := p.SetNormalized("foo", 0.5); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("SetNormalized(foo) error = %v, want ErrUnknownParameter", err)
	}
}

func TestSetSnapshot_Sanitizes(t *testing.T) {
	p := New()
	p.SetSnapshot(Snapshot{Cutoff: 3, Low: effects.BandMode(17), High: effects.BandModeRectifyNegative})

	want := Snapshot{Cutoff: 20, Low: effects.BandModeOff, High: effects.BandModeRectifyNegative}
	if got := p.Snapshot(); got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestValue(t *testing.T) {
	p := New()
	p.OnParameterChanged(ParamCutoff, 750)
	p.OnParameterChanged(ParamHighMode, 2)

	tests := []struct {
		id   string
		want float64
		ok   bool
	}{
		{ParamCutoff, 750, true},
		{ParamLowMode, 0, true},
		{ParamHighMode, 2, true},
		{"foo", 0, false},
	}
	for _, tt := range tests {
		got, ok := p.Value(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Value(%q) = (%v, %v), want (%v, %v)", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPackRoundTrip(t *testing.T) {
	for _, s := range []Snapshot{
		DefaultSnapshot(),
		{Cutoff: 20, Low: effects.BandModeRectifyNegative, High: effects.BandModeRectifyNegative},
		{Cutoff: 20000, Low: effects.BandModeClipNegative, High: effects.BandModeOff},
		{Cutoff: 1234.5, Low: effects.BandModeOff, High: effects.BandModeClipNegative},
	} {
		if got := unpack(pack(s)); got != s {
			t.Errorf("unpack(pack(%+v)) = %+v", s, got)
		}
	}
}
