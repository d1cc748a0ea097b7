package domain

import (
	"errors"
	"testing"
)

func TestCatalogMethodTable(t *testing.T) {
	c := NewCatalog()
	expect := map[InstrumentKind][]PricingMethod{
		KindVanilla:  {MethodBlackScholes, MethodBinomialCRR},
		KindAmerican: {MethodBinomialCRR},
		KindDigital:  {MethodBlackScholes},
		KindBarrier:  {MethodMCDiscrete, MethodMCBridge, MethodBinomialCRR},
		KindAsian:    {MethodGeometricClosed, MethodArithmeticMC},
		KindForward:  {MethodDiscountedForward},
	}
	for kind, methods := range expect {
		got := c.Methods(kind)
		if len(got) != len(methods) {
			t.Fatalf("kind %s: expected %d methods, got %d", kind, len(methods), len(got))
		}
		for i, mth := range methods {
			if got[i] != mth {
				t.Fatalf("kind %s: expected method %s at position %d, got %s", kind, mth, i, got[i])
			}
			if !c.Supports(kind, mth) {
				t.Fatalf("kind %s should support %s", kind, mth)
			}
		}
		def, err := c.DefaultMethod(kind)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if def != methods[0] {
			t.Fatalf("kind %s: expected default %s, got %s", kind, methods[0], def)
		}
	}
	if c.Supports(KindVanilla, MethodMCDiscrete) {
		t.Fatal("vanilla should not support monte carlo barrier method")
	}
	if _, err := c.DefaultMethod("swaption"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestCatalogQuoteAnalyticVanilla(t *testing.T) {
	c := NewCatalog()
	m := MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}
	spec := InstrumentSpec{OptionType: OptionCall, Strike: 100, Expiry: 1}
	got, err := c.Quote(m, KindVanilla, MethodBlackScholes, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := BlackScholes(m, OptionCall, 100, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("catalog quote should match direct analytic result: got %+v want %+v", got, want)
	}
}

func TestCatalogQuoteDigitalUsesFD(t *testing.T) {
	c := NewCatalog()
	m := MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}
	spec := InstrumentSpec{OptionType: OptionCall, Strike: 100, Expiry: 1, Payout: 10}
	q, err := c.Quote(m, KindDigital, MethodBlackScholes, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price <= 0 || q.Price >= 10 {
		t.Fatalf("digital price must sit between 0 and discounted payout, got %.6f", q.Price)
	}
	if q.Greeks.Delta <= 0 {
		t.Fatalf("ATM digital call delta should be positive, got %.6f", q.Greeks.Delta)
	}
}

func TestCatalogDefaultsAppliedToBarrier(t *testing.T) {
	c := NewCatalog()
	m := MarketInputs{Spot: 100, Rate: 0.04, Vol: 0.22}
	bare := InstrumentSpec{OptionType: OptionCall, Strike: 100, Expiry: 0.75, Direction: BarrierUp, Level: 130}
	full := bare
	full.Paths = DefaultBarrierPaths
	full.Steps = DefaultBarrierSteps
	full.Seed = DefaultBarrierSeed

	p1, err := c.Price(m, KindBarrier, MethodMCDiscrete, bare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := c.Price(m, KindBarrier, MethodMCDiscrete, full)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("omitted numeric params must fall back to defaults: %.10f vs %.10f", p1, p2)
	}
}

func TestCatalogEmptyMethodUsesDefault(t *testing.T) {
	c := NewCatalog()
	m := MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}
	spec := InstrumentSpec{OptionType: OptionPut, Strike: 110, Expiry: 1}
	byDefault, err := c.Price(m, KindAmerican, "", spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	explicit, err := c.Price(m, KindAmerican, MethodBinomialCRR, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byDefault != explicit {
		t.Fatalf("empty method should resolve to kind default: %.10f vs %.10f", byDefault, explicit)
	}
}

func TestCatalogShapeValidation(t *testing.T) {
	c := NewCatalog()
	m := MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}
	if _, err := c.Price(m, KindVanilla, MethodBlackScholes, InstrumentSpec{OptionType: "straddle", Strike: 100, Expiry: 1}); !errors.Is(err, ErrInvalidOptionType) {
		t.Fatalf("expected ErrInvalidOptionType, got %v", err)
	}
	if _, err := c.Price(m, KindBarrier, MethodMCDiscrete, InstrumentSpec{OptionType: OptionCall, Strike: 100, Expiry: 1, Level: 130}); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
	if _, err := c.Price(m, KindVanilla, MethodArithmeticMC, InstrumentSpec{OptionType: OptionCall, Strike: 100, Expiry: 1}); !errors.Is(err, ErrUnsupportedMethod) {
		t.Fatalf("expected ErrUnsupportedMethod, got %v", err)
	}
}

func TestPriceLegIsolation(t *testing.T) {
	c := NewCatalog()
	m := MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}

	ok := c.PriceLeg(m, Leg{ID: "L1", Kind: KindVanilla, Method: MethodBlackScholes, Quantity: 10, Params: InstrumentSpec{OptionType: OptionCall, Strike: 100, Expiry: 1}})
	if ok.Status != LegStatusOK {
		t.Fatalf("expected ok status, got %s (%s)", ok.Status, ok.Error)
	}
	if !almostEqual(ok.Value, 10*ok.Price, 1e-12) {
		t.Fatalf("value should be quantity times unit price: value=%.6f price=%.6f", ok.Value, ok.Price)
	}

	bad := c.PriceLeg(m, Leg{ID: "L2", Kind: KindVanilla, Method: MethodBlackScholes, Quantity: 1, Params: InstrumentSpec{OptionType: OptionCall, Strike: -5, Expiry: 1}})
	if bad.Status != LegStatusError || bad.Error == "" {
		t.Fatalf("expected error status with message, got %+v", bad)
	}
	if bad.LegID != "L2" || bad.Quantity != 1 {
		t.Fatalf("failed leg must keep its identity, got %+v", bad)
	}

	zero := c.PriceLeg(m, Leg{ID: "L3", Kind: KindVanilla, Quantity: 0, Params: InstrumentSpec{OptionType: OptionCall, Strike: 100, Expiry: 1}})
	if zero.Status != LegStatusError {
		t.Fatalf("zero quantity must be rejected, got %+v", zero)
	}
}

func TestCatalogDescribe(t *testing.T) {
	c := NewCatalog()
	infos := c.Describe()
	if len(infos) != 6 {
		t.Fatalf("expected 6 instrument kinds, got %d", len(infos))
	}
	for _, info := range infos {
		if info.Label == "" {
			t.Fatalf("kind %s is missing a label", info.Kind)
		}
		if len(info.Methods) == 0 {
			t.Fatalf("kind %s has no methods", info.Kind)
		}
		for _, mi := range info.Methods {
			if mi.Note == "" {
				t.Fatalf("method %s/%s is missing a note", info.Kind, mi.Method)
			}
		}
	}
}
