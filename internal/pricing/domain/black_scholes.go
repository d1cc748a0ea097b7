package domain

import "math"

// normCdf 标准正态分布的累积分布函数
func normCdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPdf 标准正态分布的概率密度函数
func normPdf(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// BlackScholes 计算欧式期权的解析价格与希腊字母(含连续股息率)。
// 到期时退化为内在价值,Delta 取 ±1 或 0。
func BlackScholes(m MarketInputs, typ OptionType, strike, expiry float64) (Quote, error) {
	if m.Spot <= 0 {
		return Quote{}, ErrInvalidSpot
	}
	if strike <= 0 {
		return Quote{}, ErrInvalidStrike
	}
	if expiry <= 0 {
		return expiredVanilla(m.Spot, strike, typ), nil
	}
	if m.Vol <= 0 {
		return Quote{}, ErrInvalidVol
	}

	sqrtT := math.Sqrt(expiry)
	d1 := (math.Log(m.Spot/strike) + (m.Rate-m.DivYield+0.5*m.Vol*m.Vol)*expiry) / (m.Vol * sqrtT)
	d2 := d1 - m.Vol*sqrtT
	dfq := math.Exp(-m.DivYield * expiry) // 股息折现因子
	dfr := math.Exp(-m.Rate * expiry)     // 利率折现因子

	var q Quote
	if typ == OptionCall {
		q.Price = m.Spot*dfq*normCdf(d1) - strike*dfr*normCdf(d2)
		q.Greeks.Delta = dfq * normCdf(d1)
		q.Greeks.Theta = -(m.Spot*dfq*normPdf(d1)*m.Vol)/(2*sqrtT) -
			m.Rate*strike*dfr*normCdf(d2) + m.DivYield*m.Spot*dfq*normCdf(d1)
		q.Greeks.Rho = strike * expiry * dfr * normCdf(d2)
	} else {
		q.Price = strike*dfr*normCdf(-d2) - m.Spot*dfq*normCdf(-d1)
		q.Greeks.Delta = dfq * (normCdf(d1) - 1)
		q.Greeks.Theta = -(m.Spot*dfq*normPdf(d1)*m.Vol)/(2*sqrtT) +
			m.Rate*strike*dfr*normCdf(-d2) - m.DivYield*m.Spot*dfq*normCdf(-d1)
		q.Greeks.Rho = -strike * expiry * dfr * normCdf(-d2)
	}
	q.Greeks.Gamma = dfq * normPdf(d1) / (m.Spot * m.Vol * sqrtT)
	q.Greeks.Vega = m.Spot * dfq * normPdf(d1) * sqrtT
	return q, nil
}

// expiredVanilla 到期欧式期权的内在价值与退化希腊字母
func expiredVanilla(spot, strike float64, typ OptionType) Quote {
	var q Quote
	if typ == OptionCall {
		q.Price = math.Max(spot-strike, 0)
		if spot > strike {
			q.Greeks.Delta = 1
		}
	} else {
		q.Price = math.Max(strike-spot, 0)
		if spot < strike {
			q.Greeks.Delta = -1
		}
	}
	return q
}

// CallSpread 牛市看涨价差:买入低行权价、卖出高行权价,逐项相减。
func CallSpread(m MarketInputs, strikeLong, strikeShort, expiry float64) (Quote, error) {
	if strikeShort <= strikeLong {
		return Quote{}, ErrInvalidSpread
	}
	long, err := BlackScholes(m, OptionCall, strikeLong, expiry)
	if err != nil {
		return Quote{}, err
	}
	short, err := BlackScholes(m, OptionCall, strikeShort, expiry)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Price:  long.Price - short.Price,
		Greeks: long.Greeks.Sub(short.Greeks),
	}, nil
}
