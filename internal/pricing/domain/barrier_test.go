package domain

import (
	"math"
	"testing"
)

func TestBarrierMCSeedReproducibility(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.04, Vol: 0.22}
	first, err := BarrierMC(m, OptionCall, 100, 0.75, BarrierUp, 130, 4000, 64, 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BarrierMC(m, OptionCall, 100, 0.75, BarrierUp, 130, 4000, 64, 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Price != second.Price || first.StdErr != second.StdErr {
		t.Fatalf("same seed must reproduce identical results: %.10f vs %.10f", first.Price, second.Price)
	}

	other, err := BarrierMC(m, OptionCall, 100, 0.75, BarrierUp, 130, 4000, 64, 8, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.Price == first.Price {
		t.Fatalf("different seeds should not collide exactly, both %.10f", first.Price)
	}
}

func TestUpAndOutBelowVanilla(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.04, Vol: 0.22}
	vanilla, err := BlackScholes(m, OptionCall, 100, 0.75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ko, err := BarrierMC(m, OptionCall, 100, 0.75, BarrierUp, 130, 20000, 96, 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ko.Price >= vanilla.Price {
		t.Fatalf("knock-out must price below vanilla: ko=%.6f vanilla=%.6f", ko.Price, vanilla.Price)
	}
	if ko.StdErr <= 0 {
		t.Fatalf("expected positive standard error, got %.6f", ko.StdErr)
	}
}

func TestBridgeCorrectionLowersPrice(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.04, Vol: 0.22}
	discrete, err := BarrierMC(m, OptionCall, 100, 0.75, BarrierUp, 130, 20000, 96, 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bridge, err := BarrierMC(m, OptionCall, 100, 0.75, BarrierUp, 130, 20000, 96, 7, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 桥修正补上离散观察漏掉的穿越,价格应不高于离散法(允许统计噪声)
	if bridge.Price > discrete.Price+3*(discrete.StdErr+bridge.StdErr) {
		t.Fatalf("bridge price should not exceed discrete beyond noise: bridge=%.6f discrete=%.6f", bridge.Price, discrete.Price)
	}
}

func TestBarrierImmediateKnockOut(t *testing.T) {
	res, err := BarrierMC(MarketInputs{Spot: 135, Rate: 0.04, Vol: 0.22}, OptionCall, 100, 0.75, BarrierUp, 130, 1000, 16, 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Price != 0 {
		t.Fatalf("spot at or beyond the barrier must be worthless, got %.6f", res.Price)
	}

	down, err := BarrierMC(MarketInputs{Spot: 80, Rate: 0.04, Vol: 0.22}, OptionPut, 100, 0.75, BarrierDown, 85, 1000, 16, 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if down.Price != 0 {
		t.Fatalf("down-and-out with spot below the barrier must be worthless, got %.6f", down.Price)
	}
}

func TestBarrierMCExpiryAndValidation(t *testing.T) {
	m := MarketInputs{Spot: 110, Rate: 0.04, Vol: 0.22}
	res, err := BarrierMC(m, OptionCall, 100, 0, BarrierUp, 130, 1000, 16, 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Price != 10 {
		t.Fatalf("expected intrinsic 10 at expiry, got %.6f", res.Price)
	}
	if _, err := BarrierMC(m, OptionCall, 100, 1, BarrierUp, 0, 1000, 16, 7, false); err == nil {
		t.Fatal("expected error for non-positive barrier level")
	}
	if _, err := BarrierMC(m, OptionCall, 100, 1, BarrierUp, 130, 0, 16, 7, false); err == nil {
		t.Fatal("expected error for zero paths")
	}
	if _, err := BarrierMC(m, OptionCall, 100, 1, BarrierUp, 130, 1000, 0, 7, false); err == nil {
		t.Fatal("expected error for zero steps")
	}
}

func TestCloserBarrierCheapens(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.04, Vol: 0.22}
	prev := math.Inf(1)
	// 障碍价逼近现价,敲出概率上升,价格应单调下降。同种子共享随机数。
	for _, level := range []float64{150, 135, 120, 110} {
		ko, err := BarrierMC(m, OptionCall, 100, 0.75, BarrierUp, level, 20000, 96, 7, true)
		if err != nil {
			t.Fatalf("unexpected error at level %.0f: %v", level, err)
		}
		if ko.Price >= prev {
			t.Fatalf("barrier %.0f should price below the farther one: %.6f >= %.6f", level, ko.Price, prev)
		}
		prev = ko.Price
	}
}

func TestDownAndOutPutBelowVanilla(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.03, Vol: 0.25}
	vanilla, err := BlackScholes(m, OptionPut, 100, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ko, err := BarrierMC(m, OptionPut, 100, 1, BarrierDown, 75, 20000, 96, 7, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ko.Price >= vanilla.Price {
		t.Fatalf("down-and-out put must price below vanilla: ko=%.6f vanilla=%.6f", ko.Price, vanilla.Price)
	}
	if math.IsNaN(ko.Price) || math.IsInf(ko.Price, 0) {
		t.Fatalf("expected finite price, got %v", ko.Price)
	}
}
