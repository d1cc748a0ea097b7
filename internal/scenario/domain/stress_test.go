package domain

import (
	"context"
	"math"
	"testing"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

func TestBuiltinStressPacks(t *testing.T) {
	packs := BuiltinStressPacks()
	if len(packs) != 5 {
		t.Fatalf("expected 5 builtin packs, got %d", len(packs))
	}

	seen := map[string]bool{}
	for _, p := range packs {
		if p.PackID == "" || p.Name == "" || p.Description == "" {
			t.Fatalf("pack %q missing metadata", p.PackID)
		}
		if !p.Builtin {
			t.Fatalf("pack %q should be builtin", p.PackID)
		}
		if seen[p.PackID] {
			t.Fatalf("duplicate pack id %q", p.PackID)
		}
		seen[p.PackID] = true
	}

	if _, ok := FindStressPack("builtin:equity_crash"); !ok {
		t.Fatalf("equity_crash pack should exist")
	}
	if _, ok := FindStressPack("builtin:nope"); ok {
		t.Fatalf("unknown pack id should not resolve")
	}
}

func TestRunStressProtectivePut(t *testing.T) {
	catalog := pricing.NewCatalog()
	legs := []pricing.Leg{
		{ID: "P1", Kind: pricing.KindVanilla, Quantity: 10, Params: pricing.InstrumentSpec{OptionType: pricing.OptionPut, Strike: 95, Expiry: 0.25}},
	}

	crash, _ := FindStressPack("builtin:equity_crash")
	meltUp, _ := FindStressPack("builtin:melt_up")

	results, err := RunStress(context.Background(), catalog, testMarket(), legs, []StressPack{crash, meltUp})
	if err != nil {
		t.Fatalf("RunStress: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].PnL <= 0 {
		t.Fatalf("long puts should gain in a crash, pnl=%.6f", results[0].PnL)
	}
	if results[1].PnL >= 0 {
		t.Fatalf("long puts should lose in a melt-up, pnl=%.6f", results[1].PnL)
	}
	if math.Abs(results[0].BaseTotal-results[1].BaseTotal) > 1e-12 {
		t.Fatalf("base total should be shared across packs")
	}
	for _, r := range results {
		if math.Abs(r.PnL-(r.StressedTotal-r.BaseTotal)) > 1e-12 {
			t.Fatalf("pnl should equal stressed minus base")
		}
	}
}
