package domain

import (
	"math"
	"strings"
	"testing"

	portfolio "github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

func TestHorizonCurveZeroAtBase(t *testing.T) {
	catalog := pricing.NewCatalog()
	m := testMarket()
	legs := []pricing.Leg{
		{ID: "C1", Kind: pricing.KindVanilla, Quantity: 1, Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 0.5}},
	}

	base, err := StrictTotal(catalog, m, legs)
	if err != nil {
		t.Fatalf("StrictTotal: %v", err)
	}

	spots := portfolio.Linspace(90, 110, 5)
	values, err := HorizonCurve(catalog, m, legs, spots, base)
	if err != nil {
		t.Fatalf("HorizonCurve: %v", err)
	}
	if len(values) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(values))
	}
	// 采样网格包含基准现价, 该点盈亏应为零。
	if math.Abs(values[2]) > 1e-9 {
		t.Fatalf("pnl at base spot should be zero, got %.12f", values[2])
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			t.Fatalf("long call horizon pnl should increase with spot, got %v", values)
		}
	}
}

func TestStrictTotalPropagatesLegError(t *testing.T) {
	catalog := pricing.NewCatalog()
	legs := []pricing.Leg{
		{ID: "BAD", Kind: pricing.KindVanilla, Quantity: 1, Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: -1, Expiry: 0.5}},
	}

	_, err := StrictTotal(catalog, testMarket(), legs)
	if err == nil {
		t.Fatalf("expected error for invalid leg")
	}
	if !strings.Contains(err.Error(), "BAD") {
		t.Fatalf("error should carry leg id, got %v", err)
	}
}

func TestBreakevensSingleRoot(t *testing.T) {
	f := func(s float64) (float64, error) { return s - 100, nil }
	spots := portfolio.Linspace(90, 110, 5)
	values := make([]float64, len(spots))
	for i, s := range spots {
		values[i], _ = f(s)
	}

	roots, err := Breakevens(spots, values, f)
	if err != nil {
		t.Fatalf("Breakevens: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %v", roots)
	}
	if math.Abs(roots[0]-100) > 1e-6 {
		t.Fatalf("root should refine to 100, got %.9f", roots[0])
	}
}

func TestBreakevensOscillating(t *testing.T) {
	f := func(s float64) (float64, error) { return (s - 95) * (s - 105), nil }
	spots := portfolio.Linspace(90, 110, 5)
	values := make([]float64, len(spots))
	for i, s := range spots {
		values[i], _ = f(s)
	}

	roots, err := Breakevens(spots, values, f)
	if err != nil {
		t.Fatalf("Breakevens: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
	if math.Abs(roots[0]-95) > 1e-6 || math.Abs(roots[1]-105) > 1e-6 {
		t.Fatalf("roots should be [95 105], got %v", roots)
	}
	if roots[0] >= roots[1] {
		t.Fatalf("roots should be ascending")
	}
}

func TestBreakevensExactZeroSample(t *testing.T) {
	spots := []float64{90, 100, 110}
	values := []float64{-10, 0, 10}
	f := func(s float64) (float64, error) { return s - 100, nil }

	roots, err := Breakevens(spots, values, f)
	if err != nil {
		t.Fatalf("Breakevens: %v", err)
	}
	if len(roots) != 1 || roots[0] != 100 {
		t.Fatalf("exact-zero sample should yield [100], got %v", roots)
	}
}

func TestBreakevensNone(t *testing.T) {
	spots := []float64{90, 100, 110}
	values := []float64{5, 6, 7}

	roots, err := Breakevens(spots, values, nil)
	if err != nil {
		t.Fatalf("Breakevens: %v", err)
	}
	if len(roots) != 0 {
		t.Fatalf("expected no roots, got %v", roots)
	}
}
