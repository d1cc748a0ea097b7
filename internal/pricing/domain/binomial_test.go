package domain

import (
	"math"
	"testing"
)

func TestBinomialConvergesToBlackScholes(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.05, DivYield: 0.01, Vol: 0.2}
	bs, err := BlackScholes(m, OptionCall, 100, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coarse, err := BinomialCRR(m, OptionCall, 100, 1, 50, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fine, err := BinomialCRR(m, OptionCall, 100, 1, 500, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(fine-bs.Price) > 0.05 {
		t.Fatalf("500-step lattice should be near analytic price: lattice=%.6f analytic=%.6f", fine, bs.Price)
	}
	if math.Abs(fine-bs.Price) >= math.Abs(coarse-bs.Price) {
		t.Fatalf("refining the lattice should not worsen the error: coarse=%.6f fine=%.6f", coarse, fine)
	}
}

func TestAmericanPutEarlyExercisePremium(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}
	euro, err := BinomialCRR(m, OptionPut, 120, 1, 300, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	amer, err := BinomialCRR(m, OptionPut, 120, 1, 300, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amer <= euro {
		t.Fatalf("deep ITM american put should exceed european: amer=%.6f euro=%.6f", amer, euro)
	}
	if amer < 20 {
		t.Fatalf("american put must be worth at least intrinsic 20, got %.6f", amer)
	}
}

func TestAmericanCallNoDividendMatchesEuropean(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}
	euro, err := BinomialCRR(m, OptionCall, 100, 1, 200, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	amer, err := BinomialCRR(m, OptionCall, 100, 1, 200, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 无股息时美式看涨不应提前行权
	if math.Abs(amer-euro) > 1e-9 {
		t.Fatalf("american call without dividends should match european: amer=%.10f euro=%.10f", amer, euro)
	}
}

func TestBinomialExpiryAndValidation(t *testing.T) {
	m := MarketInputs{Spot: 110, Rate: 0.05, Vol: 0.2}
	price, err := BinomialCRR(m, OptionCall, 100, 0, 200, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 10 {
		t.Fatalf("expected intrinsic 10 at expiry, got %.6f", price)
	}
	if _, err := BinomialCRR(m, OptionCall, 100, 1, 0, false); err == nil {
		t.Fatal("expected error for zero steps")
	}
	if _, err := BinomialCRR(MarketInputs{Spot: 100, Vol: 0}, OptionCall, 100, 1, 100, false); err == nil {
		t.Fatal("expected error for non-positive vol")
	}
}

func TestBinomialBarrierKnockOut(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.04, Vol: 0.22}
	vanilla, err := BinomialCRR(m, OptionCall, 100, 0.75, 200, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ko, err := BinomialCRRBarrier(m, OptionCall, 100, 0.75, BarrierUp, 130, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ko <= 0 || ko >= vanilla {
		t.Fatalf("knock-out value must sit strictly between 0 and vanilla: ko=%.6f vanilla=%.6f", ko, vanilla)
	}

	breached, err := BinomialCRRBarrier(MarketInputs{Spot: 135, Rate: 0.04, Vol: 0.22}, OptionCall, 100, 0.75, BarrierUp, 130, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if breached != 0 {
		t.Fatalf("already breached barrier should be worthless, got %.6f", breached)
	}
}
