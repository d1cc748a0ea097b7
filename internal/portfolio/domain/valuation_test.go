package domain

import (
	"math"
	"strings"
	"testing"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

func testMarket() pricing.MarketInputs {
	return pricing.MarketInputs{Spot: 100, Rate: 0.04, DivYield: 0, Vol: 0.22}
}

func straddleLegs() []pricing.Leg {
	return []pricing.Leg{
		{ID: "L1", Kind: pricing.KindVanilla, Method: pricing.MethodBlackScholes, Quantity: 10,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 0.75}},
		{ID: "L2", Kind: pricing.KindVanilla, Method: pricing.MethodBlackScholes, Quantity: 10,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionPut, Strike: 100, Expiry: 0.75}},
	}
}

func TestValuePortfolioAggregation(t *testing.T) {
	catalog := pricing.NewCatalog()
	market := testMarket()
	val, err := ValuePortfolio(catalog, market, straddleLegs(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(val.Legs) != 2 {
		t.Fatalf("expected 2 leg results, got %d", len(val.Legs))
	}
	call, _ := pricing.BlackScholes(market, pricing.OptionCall, 100, 0.75)
	put, _ := pricing.BlackScholes(market, pricing.OptionPut, 100, 0.75)
	want := 10 * (call.Price + put.Price)
	if math.Abs(val.TotalPrice-want) > 1e-9 {
		t.Fatalf("total price mismatch: got %.8f want %.8f", val.TotalPrice, want)
	}
	wantDelta := 10 * (call.Greeks.Delta + put.Greeks.Delta)
	if math.Abs(val.TotalGreeks.Delta-wantDelta) > 1e-9 {
		t.Fatalf("total delta mismatch: got %.8f want %.8f", val.TotalGreeks.Delta, wantDelta)
	}
	if val.Summary["ok"] != 2 || val.Summary["error"] != 0 {
		t.Fatalf("unexpected summary: %+v", val.Summary)
	}
}

func TestValuePortfolioFailureIsolation(t *testing.T) {
	catalog := pricing.NewCatalog()
	market := testMarket()
	legs := straddleLegs()
	legs[1].Params.Strike = -5

	val, err := ValuePortfolio(catalog, market, legs, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val.Summary["ok"] != 1 || val.Summary["error"] != 1 {
		t.Fatalf("unexpected summary: %+v", val.Summary)
	}
	call, _ := pricing.BlackScholes(market, pricing.OptionCall, 100, 0.75)
	if math.Abs(val.TotalPrice-10*call.Price) > 1e-9 {
		t.Fatalf("totals must cover only priced legs: got %.8f want %.8f", val.TotalPrice, 10*call.Price)
	}
	bad := val.Legs[1]
	if bad.Status != pricing.LegStatusError || bad.Error == "" || bad.LegID != "L2" {
		t.Fatalf("failed leg should keep identity and reason: %+v", bad)
	}
}

func TestValuePortfolioStrict(t *testing.T) {
	catalog := pricing.NewCatalog()
	legs := straddleLegs()
	legs[1].Params.Strike = -5

	if _, err := ValuePortfolio(catalog, testMarket(), legs, true); err == nil {
		t.Fatal("strict valuation must fail on the first broken leg")
	} else if !strings.Contains(err.Error(), "L2") {
		t.Fatalf("error should name the failing leg, got %v", err)
	}
}

func TestValuePortfolioMixedKinds(t *testing.T) {
	catalog := pricing.NewCatalog()
	market := testMarket()
	legs := []pricing.Leg{
		{ID: "V1", Kind: pricing.KindVanilla, Method: pricing.MethodBlackScholes, Quantity: 10,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 0.75}},
		{ID: "B1", Kind: pricing.KindBarrier, Method: pricing.MethodMCDiscrete, Quantity: 10,
			Params: pricing.InstrumentSpec{OptionType: pricing.OptionCall, Strike: 100, Expiry: 0.75,
				Direction: pricing.BarrierUp, Level: 130, Paths: 4000, Steps: 48}},
	}
	val, err := ValuePortfolio(catalog, market, legs, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val.Summary["ok"] != 2 {
		t.Fatalf("expected both legs priced, got %+v", val.Summary)
	}
	// 敲出期权价值必须低于同参数欧式
	if val.Legs[1].Price >= val.Legs[0].Price {
		t.Fatalf("knock-out leg should be cheaper than vanilla: %.6f vs %.6f", val.Legs[1].Price, val.Legs[0].Price)
	}
	sum := val.Legs[0].Value + val.Legs[1].Value
	if math.Abs(val.TotalPrice-sum) > 1e-9 {
		t.Fatalf("total must equal sum of leg values: %.8f vs %.8f", val.TotalPrice, sum)
	}
}
