package pass

import (
	"math"
	"testing"
)

func TestButterworthLP_SectionCount(t *testing.T) {
	sr := 48000.0
	for order := 1; order <= 8; order++ {
		want := (order + 1) / 2
		if got := ButterworthLP(1000, order, sr); len(got) != want {
			t.Fatalf("order %d: sections=%d, want %d", order, len(got), want)
		}
		if got := ButterworthHP(1000, order, sr); len(got) != want {
			t.Fatalf("order %d HP: sections=%d, want %d", order, len(got), want)
		}
	}
}

func TestButterworth_Minus3dBAtCutoff(t *testing.T) {
	sr := 48000.0
	for _, order := range []int{1, 2, 3, 4, 6} {
		lp := cascadeMagDB(ButterworthLP(1000, order, sr), 1000, sr)
		hp := cascadeMagDB(ButterworthHP(1000, order, sr), 1000, sr)
		if math.Abs(lp+3.0103) > 0.01 {
			t.Errorf("order %d LP at fc: %.4f dB, want -3.01", order, lp)
		}
		if math.Abs(hp+3.0103) > 0.01 {
			t.Errorf("order %d HP at fc: %.4f dB, want -3.01", order, hp)
		}
	}
}

func TestButterworth_PassbandUnity(t *testing.T) {
	sr := 44100.0
	lp := ButterworthLP(1000, 2, sr)
	hp := ButterworthHP(1000, 2, sr)

	// DC gain of the LP and Nyquist-adjacent gain of the HP are unity.
	if db := cascadeMagDB(lp, 1e-3, sr); math.Abs(db) > 1e-6 {
		t.Errorf("LP DC gain = %.8f dB, want 0", db)
	}
	if db := cascadeMagDB(hp, sr/2-1, sr); math.Abs(db) > 1e-3 {
		t.Errorf("HP near-Nyquist gain = %.6f dB, want 0", db)
	}
}

func TestButterworth_AllSectionsStable(t *testing.T) {
	for _, sr := range []float64{22050, 44100, 48000, 96000, 192000} {
		for _, fc := range []float64{20, 200, 1000, 10000} {
			if fc >= sr/2 {
				continue
			}
			for _, s := range ButterworthLP(fc, 4, sr) {
				assertFiniteCoefficients(t, s)
				assertStableSection(t, s)
			}
			for _, s := range ButterworthHP(fc, 4, sr) {
				assertFiniteCoefficients(t, s)
				assertStableSection(t, s)
			}
		}
	}
}

func TestButterworth_InvalidInputs(t *testing.T) {
	if got := ButterworthLP(1000, -1, 48000); got != nil {
		t.Fatal("expected nil for negative order")
	}
	if got := ButterworthHP(1000, 0, 48000); got != nil {
		t.Fatal("expected nil for zero order")
	}
	if got := ButterworthLP(24000, 2, 48000); got != nil {
		t.Fatal("expected nil for Nyquist cutoff")
	}
	if got := ButterworthHP(math.NaN(), 2, 48000); got != nil {
		t.Fatal("expected nil for NaN cutoff")
	}
	if got := ButterworthLP(1000, 2, 0); got != nil {
		t.Fatal("expected nil for zero sample rate")
	}
}

func TestButterworthQ_KnownValues(t *testing.T) {
	// Order 2, index 0: Q = 1/(2*sin(pi/4)) = 1/sqrt(2)
	if got, want := butterworthQ(2, 0), 1/math.Sqrt2; !almostEqual(got, want, 1e-12) {
		t.Fatalf("order=2 index=0: Q=%.10f, want %.10f", got, want)
	}
	// Order 4: Q values 1.3066 and 0.5412
	if got := butterworthQ(4, 0); !almostEqual(got, 1.3065629648763766, 1e-12) {
		t.Fatalf("order=4 index=0: Q=%.16f", got)
	}
	if got := butterworthQ(4, 1); !almostEqual(got, 0.5411961001461969, 1e-12) {
		t.Fatalf("order=4 index=1: Q=%.16f", got)
	}
}

func TestButterworthPair2_MatchesCascadeDesign(t *testing.T) {
	sr := 44100.0
	lp, hp, ok := ButterworthPair2(1000, sr)
	if !ok {
		t.Fatal("ButterworthPair2 reported invalid parameters")
	}

	wantLP := ButterworthLP(1000, 2, sr)[0]
	wantHP := ButterworthHP(1000, 2, sr)[0]
	if !coeffNear(lp, wantLP) {
		t.Fatalf("LP = %#v, want %#v", lp, wantLP)
	}
	if !coeffNear(hp, wantHP) {
		t.Fatalf("HP = %#v, want %#v", hp, wantHP)
	}

	if _, _, ok := ButterworthPair2(30000, sr); ok {
		t.Fatal("expected ok=false above Nyquist")
	}
}
