package domain

import "math"

// ForwardValue 远期合约现值:S·e^{-qT} − K·e^{-rT},与波动率无关。
func ForwardValue(m MarketInputs, strike, expiry float64) (float64, error) {
	if m.Spot <= 0 {
		return 0, ErrInvalidSpot
	}
	if strike <= 0 {
		return 0, ErrInvalidStrike
	}
	if expiry <= 0 {
		return m.Spot - strike, nil
	}
	return m.Spot*math.Exp(-m.DivYield*expiry) - strike*math.Exp(-m.Rate*expiry), nil
}
