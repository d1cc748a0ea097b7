package domain

import (
	"errors"
	"math"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestNormalizeViewTargetPrice(t *testing.T) {
	view := View{Direction: DirectionBullish, TargetPrice: fptr(110), HorizonDays: 30, VolView: VolViewFlat}
	norm := NormalizeView(view, 100, 0.2)

	if math.Abs(norm.SignedMovePct-10) > 1e-12 {
		t.Fatalf("expected +10%% move, got %g", norm.SignedMovePct)
	}
	if math.Abs(norm.ExpectedSpot-110) > 1e-9 {
		t.Fatalf("expected spot 110, got %g", norm.ExpectedSpot)
	}

	// 方向决定符号: 看空观点下同样的目标幅度取负。
	view.Direction = DirectionBearish
	norm = NormalizeView(view, 100, 0.2)
	if math.Abs(norm.SignedMovePct+10) > 1e-12 {
		t.Fatalf("expected -10%% move, got %g", norm.SignedMovePct)
	}
	if math.Abs(norm.ExpectedSpot-90) > 1e-9 {
		t.Fatalf("expected spot 90, got %g", norm.ExpectedSpot)
	}
	if norm.MoveMagPct != 10 {
		t.Fatalf("move magnitude should stay 10, got %g", norm.MoveMagPct)
	}
}

func TestNormalizeViewNeutralKeepsSpot(t *testing.T) {
	view := View{Direction: DirectionNeutral, MovePct: fptr(8), HorizonDays: 30, VolView: VolViewFlat}
	norm := NormalizeView(view, 100, 0.2)

	if norm.SignedMovePct != 0 {
		t.Fatalf("neutral move should be 0, got %g", norm.SignedMovePct)
	}
	if norm.ExpectedSpot != 100 {
		t.Fatalf("neutral expected spot should stay at spot, got %g", norm.ExpectedSpot)
	}
	if norm.MoveMagPct != 8 {
		t.Fatalf("magnitude should be kept for strike placement, got %g", norm.MoveMagPct)
	}
}

func TestNormalizeViewDefaultsToZeroMove(t *testing.T) {
	view := View{Direction: DirectionBullish, HorizonDays: 30, VolView: VolViewFlat}
	norm := NormalizeView(view, 100, 0.2)
	if norm.SignedMovePct != 0 || norm.ExpectedSpot != 100 {
		t.Fatalf("missing move spec should normalize to zero move, got %+v", norm)
	}
}

func TestNormalizeViewVolShiftSignAndClamp(t *testing.T) {
	up := View{Direction: DirectionBullish, HorizonDays: 30, VolView: VolViewUp, VolShift: 0.05}
	if got := NormalizeView(up, 100, 0.2).SignedVolShift; math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("vol up should keep positive shift, got %g", got)
	}

	down := View{Direction: DirectionBullish, HorizonDays: 30, VolView: VolViewDown, VolShift: 0.5}
	got := NormalizeView(down, 100, 0.2).SignedVolShift
	want := -0.2 + 1e-6
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("down shift should clamp above -vol, got %g want %g", got, want)
	}

	flat := View{Direction: DirectionBullish, HorizonDays: 30, VolView: VolViewFlat, VolShift: 0.5}
	if got := NormalizeView(flat, 100, 0.2).SignedVolShift; got != 0 {
		t.Fatalf("flat view should ignore shift, got %g", got)
	}
}

func TestNormalizeViewHorizonYears(t *testing.T) {
	view := View{Direction: DirectionBullish, HorizonDays: 30, VolView: VolViewFlat}
	norm := NormalizeView(view, 100, 0.2)
	if math.Abs(norm.HorizonYears-30.0/365.0) > 1e-12 {
		t.Fatalf("expected 30/365 years, got %g", norm.HorizonYears)
	}
}

func TestViewValidate(t *testing.T) {
	cases := []View{
		{Direction: "sideways", HorizonDays: 30, VolView: VolViewFlat},
		{Direction: DirectionBullish, HorizonDays: 30, VolView: "choppy"},
		{Direction: DirectionBullish, HorizonDays: 0, VolView: VolViewFlat},
		{Direction: DirectionBullish, HorizonDays: 4000, VolView: VolViewFlat},
		{Direction: DirectionBullish, HorizonDays: 30, VolView: VolViewFlat, VolShift: 2.5},
	}
	for i, v := range cases {
		if err := v.Validate(); !errors.Is(err, ErrInvalidView) {
			t.Fatalf("case %d: expected ErrInvalidView, got %v", i, err)
		}
	}

	ok := DefaultView()
	if err := ok.Validate(); err != nil {
		t.Fatalf("default view should validate, got %v", err)
	}
}
