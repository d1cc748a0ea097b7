package domain

import (
	"errors"
	"fmt"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

var (
	ErrPathDependentPayoff = errors.New("path-dependent payoff")
	ErrUnsupportedPayoff   = errors.New("unsupported payoff type")
	ErrInvalidLegParams    = errors.New("invalid leg params")
)

// ExcludedLeg 被排除出收益图的腿及原因
type ExcludedLeg struct {
	LegID  string `json:"leg_id"`
	Reason string `json:"reason"`
}

// Linspace 闭区间等分采样,n<=1 时退化为单点。
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// TerminalPayoff 单位数量的腿在到期价 spot 下的收益。
// 路径依赖的腿没有单点到期收益,返回 ErrPathDependentPayoff。
func TerminalPayoff(leg pricing.Leg, spot float64) (float64, error) {
	switch leg.Kind {
	case pricing.KindVanilla, pricing.KindAmerican:
		if err := checkOptionLeg(leg); err != nil {
			return 0, err
		}
		if leg.Params.OptionType == pricing.OptionCall {
			return max(spot-leg.Params.Strike, 0), nil
		}
		return max(leg.Params.Strike-spot, 0), nil
	case pricing.KindDigital:
		if err := checkOptionLeg(leg); err != nil {
			return 0, err
		}
		if leg.Params.Payout <= 0 {
			return 0, ErrInvalidLegParams
		}
		// 严格价内才支付
		if leg.Params.OptionType == pricing.OptionCall && spot > leg.Params.Strike {
			return leg.Params.Payout, nil
		}
		if leg.Params.OptionType == pricing.OptionPut && spot < leg.Params.Strike {
			return leg.Params.Payout, nil
		}
		return 0, nil
	case pricing.KindForward:
		if leg.Quantity == 0 || leg.Params.Strike <= 0 {
			return 0, ErrInvalidLegParams
		}
		return spot - leg.Params.Strike, nil
	case pricing.KindBarrier, pricing.KindAsian:
		return 0, ErrPathDependentPayoff
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedPayoff, leg.Kind)
	}
}

func checkOptionLeg(leg pricing.Leg) error {
	if leg.Quantity == 0 || leg.Params.Strike <= 0 {
		return ErrInvalidLegParams
	}
	if leg.Params.OptionType != pricing.OptionCall && leg.Params.OptionType != pricing.OptionPut {
		return ErrInvalidLegParams
	}
	return nil
}

// PortfolioPayoff 全部腿在到期价 spot 下的数量加权收益合计,任何腿失败即返回错误。
func PortfolioPayoff(legs []pricing.Leg, spot float64) (float64, error) {
	total := 0.0
	for _, leg := range legs {
		p, err := TerminalPayoff(leg, spot)
		if err != nil {
			return 0, fmt.Errorf("leg %s: %w", leg.ID, err)
		}
		total += leg.Quantity * p
	}
	return total, nil
}

// PayoffCurve 在给定到期价网格上逐点求组合收益。
// 无法给出单点收益的腿被整体排除并附原因,其余腿参与合计。
func PayoffCurve(legs []pricing.Leg, spots []float64) ([]float64, []string, []ExcludedLeg) {
	included := make([]pricing.Leg, 0, len(legs))
	includedIDs := make([]string, 0, len(legs))
	excluded := make([]ExcludedLeg, 0)

	for _, leg := range legs {
		probe := 1.0
		if len(spots) > 0 {
			probe = spots[0]
		}
		if _, err := TerminalPayoff(leg, probe); err != nil {
			reason := err.Error()
			if errors.Is(err, ErrUnsupportedPayoff) {
				reason = fmt.Sprintf("unsupported payoff type: %s", leg.Kind)
			}
			excluded = append(excluded, ExcludedLeg{LegID: leg.ID, Reason: reason})
			continue
		}
		included = append(included, leg)
		includedIDs = append(includedIDs, leg.ID)
	}

	values := make([]float64, len(spots))
	for i, s := range spots {
		total := 0.0
		for _, leg := range included {
			p, _ := TerminalPayoff(leg, s)
			total += leg.Quantity * p
		}
		values[i] = total
	}
	return values, includedIDs, excluded
}
