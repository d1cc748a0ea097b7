package domain

import (
	"math"
	"testing"
)

func TestDigitalCallPutParity(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}
	call, err := DigitalPrice(m, OptionCall, 100, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	put, err := DigitalPrice(m, OptionPut, 100, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// N(d2)+N(-d2)=1,两边合计应等于折现支付额
	want := 10 * math.Exp(-0.05)
	if !almostEqual(call+put, want, 1e-9) {
		t.Fatalf("digital parity violated: call+put=%.8f want=%.8f", call+put, want)
	}
}

func TestDigitalExpirySettlement(t *testing.T) {
	m := MarketInputs{Spot: 105, Rate: 0.05, Vol: 0.2}
	itm, err := DigitalPrice(m, OptionCall, 100, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if itm != 10 {
		t.Fatalf("expired ITM digital should pay out in full, got %.6f", itm)
	}
	// 到期价格恰好等于行权价时不支付
	atm, err := DigitalPrice(MarketInputs{Spot: 100, Rate: 0.05, Vol: 0.2}, OptionCall, 100, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atm != 0 {
		t.Fatalf("expired exactly at the strike should pay nothing, got %.6f", atm)
	}
	if _, err := DigitalPrice(m, OptionCall, 100, 1, 0); err == nil {
		t.Fatal("expected error for non-positive payout")
	}
}

func TestForwardValuePricing(t *testing.T) {
	m := MarketInputs{Spot: 100, Rate: 0.05, DivYield: 0.02, Vol: 0.2}
	pv, err := ForwardValue(m, 95, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 100*math.Exp(-0.02) - 95*math.Exp(-0.05)
	if !almostEqual(pv, want, 1e-12) {
		t.Fatalf("forward PV mismatch: got %.8f want %.8f", pv, want)
	}

	// 交割价取远期价格时现值为零
	fair := 100 * math.Exp((0.05-0.02)*1)
	pv, err = ForwardValue(m, fair, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(pv, 0, 1e-9) {
		t.Fatalf("forward struck at fair value should be worth zero, got %.8f", pv)
	}

	pv, err = ForwardValue(m, 95, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pv != 5 {
		t.Fatalf("expired forward should settle at spot minus strike, got %.6f", pv)
	}

	if _, err := ForwardValue(MarketInputs{Spot: 0}, 95, 1); err == nil {
		t.Fatal("expected error for non-positive spot")
	}
}
