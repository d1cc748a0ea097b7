package domain

import "math"

// intrinsic 期权内在价值
func intrinsic(spot, strike float64, typ OptionType) float64 {
	if typ == OptionCall {
		return math.Max(spot-strike, 0)
	}
	return math.Max(strike-spot, 0)
}

// BinomialCRR Cox-Ross-Rubinstein 二叉树估值。
// american 为真时在每个节点比较内在价值与持有价值,取较大者。
func BinomialCRR(m MarketInputs, typ OptionType, strike, expiry float64, steps int, american bool) (float64, error) {
	if steps < 1 {
		return 0, ErrInvalidSteps
	}
	if m.Spot <= 0 {
		return 0, ErrInvalidSpot
	}
	if strike <= 0 {
		return 0, ErrInvalidStrike
	}
	if expiry <= 0 {
		return intrinsic(m.Spot, strike, typ), nil
	}
	if m.Vol <= 0 {
		return 0, ErrInvalidVol
	}

	dt := expiry / float64(steps)
	u := math.Exp(m.Vol * math.Sqrt(dt))
	d := 1 / u
	disc := math.Exp(-m.Rate * dt)
	growth := math.Exp((m.Rate - m.DivYield) * dt)
	p := (growth - d) / (u - d)
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}

	// 末端节点价值
	values := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		s := m.Spot * math.Pow(u, float64(i)) * math.Pow(d, float64(steps-i))
		values[i] = intrinsic(s, strike, typ)
	}
	// 自后向前折现
	for step := steps - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			cont := disc * (p*values[i+1] + (1-p)*values[i])
			if american {
				s := m.Spot * math.Pow(u, float64(i)) * math.Pow(d, float64(step-i))
				if ex := intrinsic(s, strike, typ); ex > cont {
					cont = ex
				}
			}
			values[i] = cont
		}
	}
	return values[0], nil
}

// barrierBreached 判断价格是否触及敲出水平
func barrierBreached(s float64, dir BarrierDirection, level float64) bool {
	if dir == BarrierUp {
		return s >= level
	}
	return s <= level
}

// BinomialCRRBarrier 带敲出条件的 CRR 二叉树:触及障碍的节点价值归零,
// 其余节点按欧式方式向前折现。
func BinomialCRRBarrier(m MarketInputs, typ OptionType, strike, expiry float64, dir BarrierDirection, level float64, steps int) (float64, error) {
	if steps < 1 {
		return 0, ErrInvalidSteps
	}
	if m.Spot <= 0 {
		return 0, ErrInvalidSpot
	}
	if strike <= 0 {
		return 0, ErrInvalidStrike
	}
	if level <= 0 {
		return 0, ErrInvalidBarrier
	}
	if expiry <= 0 {
		return intrinsic(m.Spot, strike, typ), nil
	}
	if m.Vol <= 0 {
		return 0, ErrInvalidVol
	}
	if barrierBreached(m.Spot, dir, level) {
		return 0, nil
	}

	dt := expiry / float64(steps)
	u := math.Exp(m.Vol * math.Sqrt(dt))
	d := 1 / u
	disc := math.Exp(-m.Rate * dt)
	growth := math.Exp((m.Rate - m.DivYield) * dt)
	p := (growth - d) / (u - d)
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}

	values := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		s := m.Spot * math.Pow(u, float64(i)) * math.Pow(d, float64(steps-i))
		if barrierBreached(s, dir, level) {
			values[i] = 0
			continue
		}
		values[i] = intrinsic(s, strike, typ)
	}
	for step := steps - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			s := m.Spot * math.Pow(u, float64(i)) * math.Pow(d, float64(step-i))
			if barrierBreached(s, dir, level) {
				values[i] = 0
				continue
			}
			values[i] = disc * (p*values[i+1] + (1-p)*values[i])
		}
	}
	return values[0], nil
}
