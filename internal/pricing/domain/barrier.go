package domain

import (
	"math"
	"math/rand/v2"
)

// BarrierMC 敲出期权的 GBM 蒙特卡洛估值。
// bridge 为真时在相邻观察点之间叠加布朗桥穿越概率修正,
// 降低离散观察造成的漏判偏差。
func BarrierMC(m MarketInputs, typ OptionType, strike, expiry float64, dir BarrierDirection, level float64, paths, steps int, seed int64, bridge bool) (MCResult, error) {
	if m.Spot <= 0 {
		return MCResult{}, ErrInvalidSpot
	}
	if strike <= 0 {
		return MCResult{}, ErrInvalidStrike
	}
	if level <= 0 {
		return MCResult{}, ErrInvalidBarrier
	}
	if m.Vol <= 0 {
		return MCResult{}, ErrInvalidVol
	}
	if expiry <= 0 {
		return MCResult{Price: intrinsic(m.Spot, strike, typ)}, nil
	}
	if paths < 1 {
		return MCResult{}, ErrInvalidPaths
	}
	if steps < 1 {
		return MCResult{}, ErrInvalidSteps
	}
	// 起点即触障:价值为零
	if barrierBreached(m.Spot, dir, level) {
		return MCResult{}, nil
	}

	dt := expiry / float64(steps)
	drift := (m.Rate - m.DivYield - 0.5*m.Vol*m.Vol) * dt
	diff := m.Vol * math.Sqrt(dt)
	v2dt := m.Vol * m.Vol * dt

	return runPaths(paths, seed, math.Exp(-m.Rate*expiry), func(rng *rand.Rand) float64 {
		s := m.Spot
		alive := true
		for j := 0; j < steps; j++ {
			// 无论路径存活与否都消耗同样数量的随机数,
			// 保证扰动重估时各路径使用相同的随机序列。
			z := rng.NormFloat64()
			var u float64
			if bridge {
				u = rng.Float64()
			}
			next := s * math.Exp(drift+diff*z)
			if alive {
				var hit bool
				if dir == BarrierUp {
					hit = next >= level || s >= level
					if bridge && !hit && s < level && next < level {
						pCross := math.Exp(-2 * math.Log(level/s) * math.Log(level/next) / v2dt)
						hit = u < pCross
					}
				} else {
					hit = next <= level || s <= level
					if bridge && !hit && s > level && next > level {
						pCross := math.Exp(-2 * math.Log(s/level) * math.Log(next/level) / v2dt)
						hit = u < pCross
					}
				}
				if hit {
					alive = false
				}
			}
			s = next
		}
		if !alive {
			return 0
		}
		return intrinsic(s, strike, typ)
	})
}
