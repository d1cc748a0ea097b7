package domain

import (
	"fmt"
	"sort"

	portfolio "github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/pkg/idgen"
)

// Candidate 一个已定价、已评分的候选结构。MaxProfit/MaxLoss 为空表示无界。
type Candidate struct {
	CandidateID  string         `json:"candidate_id"`
	StrategyKey  string         `json:"strategy_key"`
	Name         string         `json:"name"`
	FitScore     int            `json:"fit_score"`
	Rationale    string         `json:"rationale"`
	Legs         []pricing.Leg  `json:"legs"`
	NetPremium   float64        `json:"net_premium"`
	MaxProfit    *float64       `json:"max_profit"`
	MaxLoss      *float64       `json:"max_loss"`
	Breakevens   []float64      `json:"breakevens"`
	TotalGreeks  pricing.Greeks `json:"total_greeks"`
	StrategyNote string         `json:"strategy_note"`
	MethodNote   string         `json:"method_note"`
}

// Recommendation 推荐结果: 归一化观点与按契合度排序的前五个候选。
type Recommendation struct {
	NormalizedMovePct float64     `json:"normalized_move_pct"`
	ExpectedSpot      float64     `json:"expected_spot"`
	SignedVolShift    float64     `json:"signed_vol_shift"`
	Candidates        []Candidate `json:"candidates"`
}

const (
	recommendTopN      = 5
	recommendPnLSteps  = 121
	convexMoveTrigger  = 6.0
	unboundedSlopeTol  = 1e-9
	maxLossCapSlackTol = 1e-9
)

// strategyUniverse 按方向摆出候选模板, 顺序即枚举顺序。
// 波动率看涨、事件在即或预期行情超过阈值时补充凸性结构。
func strategyUniverse(view View, norm NormalizedView, constraints Constraints) []string {
	var keys []string
	convex := view.VolView == VolViewUp || view.Event || norm.MoveMagPct >= convexMoveTrigger

	switch view.Direction {
	case DirectionBullish:
		keys = []string{StrategyBullCallSpread, StrategyBullPutSpread, StrategyStrap, StrategyButterflyCall}
		if constraints.AllowMultiExpiry {
			keys = append(keys, StrategyCalendarCall)
		}
		if convex {
			keys = append(keys, StrategyStraddle, StrategyStrangle)
		}
	case DirectionBearish:
		keys = []string{StrategyBearPutSpread, StrategyBearCallSpread, StrategyStrip, StrategyButterflyPut}
		if constraints.AllowMultiExpiry {
			keys = append(keys, StrategyCalendarPut)
		}
		if convex {
			keys = append(keys, StrategyStraddle, StrategyStrangle)
		}
	default:
		keys = []string{StrategyStraddle, StrategyStrangle, StrategyButterflyCall, StrategyButterflyPut}
		if constraints.AllowMultiExpiry {
			keys = append(keys, StrategyCalendarCall, StrategyCalendarPut)
		}
	}

	seen := make(map[string]bool, len(keys))
	deduped := keys[:0]
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, k)
		}
	}
	return deduped
}

// Recommend 生成并排序候选结构。候选定价走严格模式, 任一腿失败立即报错。
func Recommend(catalog *pricing.Catalog, m pricing.MarketInputs, view View, constraints Constraints, gen Generation, method pricing.PricingMethod) (*Recommendation, error) {
	if method == "" {
		method = pricing.MethodBlackScholes
	}
	if err := view.Validate(); err != nil {
		return nil, err
	}
	if err := constraints.Validate(); err != nil {
		return nil, err
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateMethod(method); err != nil {
		return nil, err
	}

	norm := NormalizeView(view, m.Spot, m.Vol)
	keys := strategyUniverse(view, norm, constraints)

	candidates := make([]Candidate, 0, len(keys))
	for _, key := range keys {
		if IsCalendar(key) && !constraints.AllowMultiExpiry {
			continue
		}

		legs, err := BuildLegs(key, m, norm, gen, method)
		if err != nil {
			return nil, err
		}
		if len(legs) > constraints.MaxLegs {
			continue
		}

		valuation, err := portfolio.ValuePortfolio(catalog, m, legs, true)
		if err != nil {
			return nil, fmt.Errorf("price %s: %w", key, err)
		}

		spotRangePct := max(20.0, min(80.0, 2.0*norm.MoveMagPct+10.0))
		stats, err := payoffMetrics(legs, valuation.TotalPrice, m.Spot, spotRangePct, recommendPnLSteps, norm.ExpectedSpot)
		if err != nil {
			return nil, fmt.Errorf("payoff %s: %w", key, err)
		}

		slope := slopeHigh(legs)

		// 亏损无界 (现价趋高时收益斜率为负) 的候选没有有限的最大亏损。
		var maxLoss *float64
		if slope >= -unboundedSlopeTol {
			loss := 0.0
			if stats.minPnL < 0 {
				loss = -stats.minPnL
			}
			maxLoss = &loss
		}

		if constraints.DefinedRiskOnly && maxLoss == nil {
			continue
		}
		if constraints.MaxLoss != nil {
			if maxLoss == nil || *maxLoss > *constraints.MaxLoss+maxLossCapSlackTol {
				continue
			}
		}

		var maxProfit *float64
		if slope <= unboundedSlopeTol {
			profit := stats.maxPnL
			maxProfit = &profit
		}

		score, rationale := ScoreCandidate(view, constraints, valuation.TotalPrice, valuation.TotalGreeks, stats.pnlExpected, maxLoss, len(legs))

		candidates = append(candidates, Candidate{
			CandidateID:  fmt.Sprintf("SC%s", idgen.GenIDString()),
			StrategyKey:  key,
			Name:         StrategyName(key),
			FitScore:     score,
			Rationale:    rationale,
			Legs:         legs,
			NetPremium:   valuation.TotalPrice,
			MaxProfit:    maxProfit,
			MaxLoss:      maxLoss,
			Breakevens:   stats.breakevens,
			TotalGreeks:  valuation.TotalGreeks,
			StrategyNote: StrategyNote(key),
			MethodNote:   catalog.MethodNote(pricing.KindVanilla, method),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].FitScore != candidates[j].FitScore {
			return candidates[i].FitScore > candidates[j].FitScore
		}
		return candidates[i].StrategyKey < candidates[j].StrategyKey
	})
	if len(candidates) > recommendTopN {
		candidates = candidates[:recommendTopN]
	}

	return &Recommendation{
		NormalizedMovePct: norm.SignedMovePct,
		ExpectedSpot:      norm.ExpectedSpot,
		SignedVolShift:    norm.SignedVolShift,
		Candidates:        candidates,
	}, nil
}
