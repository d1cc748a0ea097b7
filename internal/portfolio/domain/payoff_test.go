package domain

import (
	"math"
	"testing"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

func TestLinspace(t *testing.T) {
	pts := Linspace(80, 120, 41)
	if len(pts) != 41 {
		t.Fatalf("expected 41 points, got %d", len(pts))
	}
	if pts[0] != 80 || pts[40] != 120 {
		t.Fatalf("endpoints must be included: got [%.4f, %.4f]", pts[0], pts[40])
	}
	if math.Abs(pts[1]-81) > 1e-12 {
		t.Fatalf("expected uniform step of 1, got %.6f", pts[1]-pts[0])
	}
	if one := Linspace(95, 105, 1); len(one) != 1 || one[0] != 95 {
		t.Fatalf("single point grid should collapse to lower bound, got %v", one)
	}
}

func TestTerminalPayoffShapes(t *testing.T) {
	call := pricing.Leg{ID: "c", Kind: pricing.KindVanilla, Quantity: 1,
		Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 1}}
	if p, err := TerminalPayoff(call, 112); err != nil || p != 12 {
		t.Fatalf("call payoff at 112 should be 12, got %.4f err=%v", p, err)
	}
	if p, _ := TerminalPayoff(call, 90); p != 0 {
		t.Fatalf("OTM call payoff should be 0, got %.4f", p)
	}

	digital := pricing.Leg{ID: "d", Kind: pricing.KindDigital, Quantity: 1,
		Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 1, Payout: 10}}
	if p, _ := TerminalPayoff(digital, 100); p != 0 {
		t.Fatalf("digital exactly at strike should pay nothing, got %.4f", p)
	}
	if p, _ := TerminalPayoff(digital, 100.01); p != 10 {
		t.Fatalf("digital strictly ITM should pay full amount, got %.4f", p)
	}

	fwd := pricing.Leg{ID: "f", Kind: pricing.KindForward, Quantity: 1,
		Params: pricing.InstrumentSpec{Strike: 100, Expiry: 1}}
	if p, _ := TerminalPayoff(fwd, 90); p != -10 {
		t.Fatalf("forward payoff can be negative, got %.4f", p)
	}
}

func TestPayoffCurveExclusions(t *testing.T) {
	legs := []pricing.Leg{
		{ID: "ok", Kind: pricing.KindVanilla, Quantity: 2,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 1}},
		{ID: "bar", Kind: pricing.KindBarrier, Quantity: 1,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 1, Direction: pricing.BarrierUp, Level: 130}},
		{ID: "bad", Kind: pricing.KindVanilla, Quantity: 1,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: -1, Expiry: 1}},
		{ID: "odd", Kind: "swap", Quantity: 1,
			Params: pricing.InstrumentSpec{Strike: 100}},
	}
	spots := Linspace(80, 120, 5)
	values, included, excluded := PayoffCurve(legs, spots)

	if len(included) != 1 || included[0] != "ok" {
		t.Fatalf("expected only the vanilla leg included, got %v", included)
	}
	if len(excluded) != 3 {
		t.Fatalf("expected 3 excluded legs, got %d", len(excluded))
	}
	reasons := map[string]string{}
	for _, ex := range excluded {
		reasons[ex.LegID] = ex.Reason
	}
	if reasons["bar"] != "path-dependent payoff" {
		t.Fatalf("unexpected barrier exclusion reason: %q", reasons["bar"])
	}
	if reasons["bad"] != "invalid leg params" {
		t.Fatalf("unexpected invalid-params reason: %q", reasons["bad"])
	}
	if reasons["odd"] != "unsupported payoff type: swap" {
		t.Fatalf("unexpected unknown-kind reason: %q", reasons["odd"])
	}

	// 网格末端 120:2 手看涨,每手收益 20
	if values[len(values)-1] != 40 {
		t.Fatalf("expected payoff 40 at spot 120, got %.4f", values[len(values)-1])
	}
}

func TestPayoffCurveStraddleShape(t *testing.T) {
	legs := []pricing.Leg{
		{ID: "c", Kind: pricing.KindVanilla, Quantity: 1,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 1}},
		{ID: "p", Kind: pricing.KindVanilla, Quantity: 1,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionPut, Strike: 100, Expiry: 1}},
	}
	spots := Linspace(80, 120, 41)
	values, included, excluded := PayoffCurve(legs, spots)
	if len(included) != 2 || len(excluded) != 0 {
		t.Fatalf("straddle legs should all be included: %v %v", included, excluded)
	}
	minIdx := 0
	for i, v := range values {
		if v < values[minIdx] {
			minIdx = i
		}
	}
	if spots[minIdx] != 100 {
		t.Fatalf("straddle payoff should bottom out at the strike, got %.2f", spots[minIdx])
	}
	if values[0] != 20 || values[len(values)-1] != 20 {
		t.Fatalf("straddle wings should be symmetric: %.4f vs %.4f", values[0], values[len(values)-1])
	}
}

func TestPortfolioPayoffStrict(t *testing.T) {
	legs := []pricing.Leg{
		{ID: "a", Kind: pricing.KindAsian, Quantity: 1,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 1}},
	}
	if _, err := PortfolioPayoff(legs, 100); err == nil {
		t.Fatal("path-dependent leg must fail strict payoff evaluation")
	}
}
