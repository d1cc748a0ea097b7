package domain

import (
	"math"
	"strings"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

// ScoreCandidate 确定性打分: 同样输入恒给同样分数。以 50 为基准,
// 按方向与 delta、波动率观点与 vega 的对齐度、目标价盈亏的风险归一值、
// 收益偏好、腿数与事件凸性逐项加减, 最后钳制到 [0, 100] 取整。
func ScoreCandidate(
	view View,
	constraints Constraints,
	netPremium float64,
	greeks pricing.Greeks,
	pnlExpected float64,
	maxLoss *float64,
	legCount int,
) (int, string) {
	score := 50.0

	delta := greeks.Delta
	gamma := greeks.Gamma
	vega := greeks.Vega
	theta := greeks.Theta

	switch view.Direction {
	case DirectionBullish:
		score += 20.0 * math.Tanh(delta/0.5)
	case DirectionBearish:
		score += 20.0 * math.Tanh(-delta/0.5)
	default:
		score += 10.0 - 20.0*min(1.0, math.Abs(delta)/0.3)
	}

	switch view.VolView {
	case VolViewUp:
		score += 10.0 * math.Tanh(vega/35.0)
	case VolViewDown:
		score += 10.0 * math.Tanh(-vega/35.0)
	default:
		score += 5.0 - 5.0*min(1.0, math.Abs(vega)/45.0)
	}

	// 目标价盈亏按风险敞口归一: 有界亏损用最大亏损, 否则用权利金规模。
	denom := 1.0
	if maxLoss != nil && *maxLoss > 1e-9 {
		denom = *maxLoss
	} else {
		denom = max(1.0, math.Abs(netPremium))
	}
	score += 15.0 * max(-1.0, min(1.0, pnlExpected/denom))

	pref := constraints.IncomeVsConvexity
	if pref < 0.45 {
		if netPremium < 0 {
			score += 6.0
		}
		if theta > 0 {
			score += 2.0
		}
	} else if pref > 0.55 {
		if netPremium > 0 {
			score += 4.0
		}
		if gamma > 0 {
			score += 2.0
		}
		if vega > 0 {
			score += 2.0
		}
	}

	if legCount <= 2 {
		score += 4.0
	} else if legCount == 3 {
		score += 2.0
	}

	if view.Event {
		if gamma > 0 {
			score += 2.0
		}
		if vega > 0 {
			score += 2.0
		}
	}

	score = max(0.0, min(100.0, score))

	var reasons []string
	if view.Direction == DirectionBullish && delta > 0.05 {
		reasons = append(reasons, "positive Δ")
	}
	if view.Direction == DirectionBearish && delta < -0.05 {
		reasons = append(reasons, "negative Δ")
	}
	if view.Direction == DirectionNeutral && math.Abs(delta) < 0.08 {
		reasons = append(reasons, "near-neutral Δ")
	}

	if view.VolView == VolViewUp && vega > 0 {
		reasons = append(reasons, "positive ν")
	}
	if view.VolView == VolViewDown && vega < 0 {
		reasons = append(reasons, "negative ν")
	}

	if netPremium < 0 {
		reasons = append(reasons, "net credit")
	} else {
		reasons = append(reasons, "net debit")
	}

	if maxLoss != nil {
		reasons = append(reasons, "defined risk")
	}

	if pnlExpected > 0 {
		reasons = append(reasons, "positive PnL at target")
	}

	rationale := strings.Join(reasons, ", ")
	if rationale == "" {
		rationale = "ranked by Δ/ν alignment, risk, and expected payoff"
	}

	return int(math.Round(score)), rationale
}
