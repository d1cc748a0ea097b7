package domain

import (
	portfolio "github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	scenario "github.com/wyfcoding/optionsengine/internal/scenario/domain"
)

// payoffStats 候选结构在到期收益维度上的风险指标。
type payoffStats struct {
	spots       []float64
	pnl         []float64
	maxPnL      float64
	minPnL      float64
	breakevens  []float64
	pnlExpected float64
}

// payoffPnLFunc 到期收益减去建仓成本的盈亏函数, 供盈亏平衡点细化时复用。
func payoffPnLFunc(legs []pricing.Leg, premium float64) scenario.PnLFunc {
	return func(spot float64) (float64, error) {
		payoff, err := portfolio.PortfolioPayoff(legs, spot)
		if err != nil {
			return 0, err
		}
		return payoff - premium, nil
	}
}

// payoffMetrics 在现价两侧 rangePct 的区间内采样到期盈亏并求风险指标。
func payoffMetrics(legs []pricing.Leg, premium, spot, rangePct float64, steps int, expectedSpot float64) (payoffStats, error) {
	lo := max(1e-6, spot*(1.0-rangePct/100.0))
	hi := spot * (1.0 + rangePct/100.0)
	spots := portfolio.Linspace(lo, hi, steps)

	f := payoffPnLFunc(legs, premium)
	pnl := make([]float64, len(spots))
	for i, s := range spots {
		v, err := f(s)
		if err != nil {
			return payoffStats{}, err
		}
		pnl[i] = v
	}

	maxPnL, minPnL := 0.0, 0.0
	if len(pnl) > 0 {
		maxPnL, minPnL = pnl[0], pnl[0]
		for _, v := range pnl[1:] {
			maxPnL = max(maxPnL, v)
			minPnL = min(minPnL, v)
		}
	}

	breakevens, err := scenario.Breakevens(spots, pnl, f)
	if err != nil {
		return payoffStats{}, err
	}

	return payoffStats{
		spots:       spots,
		pnl:         pnl,
		maxPnL:      maxPnL,
		minPnL:      minPnL,
		breakevens:  breakevens,
		pnlExpected: interpAt(spots, pnl, expectedSpot),
	}, nil
}

// interpAt 网格线性插值, 越界钳制到端点。
func interpAt(xs, ys []float64, x float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] >= x {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[len(ys)-1]
}

// slopeHigh 到期收益在现价趋于无穷时的近似斜率: 远期与看涨类腿的数量之和。
func slopeHigh(legs []pricing.Leg) float64 {
	slope := 0.0
	for _, leg := range legs {
		switch leg.Kind {
		case pricing.KindForward:
			slope += leg.Quantity
		case pricing.KindVanilla, pricing.KindAmerican, pricing.KindDigital, pricing.KindBarrier, pricing.KindAsian:
			if leg.Params.OptionType == pricing.OptionCall {
				slope += leg.Quantity
			}
		}
	}
	return slope
}
