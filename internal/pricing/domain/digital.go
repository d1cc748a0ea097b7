package domain

import "math"

// DigitalPrice 现金或无期权的解析价格:payout · e^{-rT} · N(±d2)。
// 希腊字母由有限差分给出,此处只返回价格。
func DigitalPrice(m MarketInputs, typ OptionType, strike, expiry, payout float64) (float64, error) {
	if payout <= 0 {
		return 0, ErrInvalidPayout
	}
	if expiry <= 0 {
		// 到期时严格价内才支付
		if typ == OptionCall && m.Spot > strike {
			return payout, nil
		}
		if typ == OptionPut && m.Spot < strike {
			return payout, nil
		}
		return 0, nil
	}
	if m.Spot <= 0 {
		return 0, ErrInvalidSpot
	}
	if strike <= 0 {
		return 0, ErrInvalidStrike
	}
	if m.Vol <= 0 {
		return 0, ErrInvalidVol
	}

	d2 := (math.Log(m.Spot/strike) + (m.Rate-m.DivYield-0.5*m.Vol*m.Vol)*expiry) / (m.Vol * math.Sqrt(expiry))
	if typ == OptionCall {
		return payout * math.Exp(-m.Rate*expiry) * normCdf(d2), nil
	}
	return payout * math.Exp(-m.Rate*expiry) * normCdf(-d2), nil
}
