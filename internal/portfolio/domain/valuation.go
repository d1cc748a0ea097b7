// 包 组合估值领域模型:多腿组合的聚合估值、到期收益与持久化定义。
package domain

import (
	"fmt"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

// PortfolioValuation 组合估值结果。合计只统计估值成功的腿。
type PortfolioValuation struct {
	TotalPrice  float64             `json:"total_price"`
	TotalGreeks pricing.Greeks      `json:"total_greeks"`
	Legs        []pricing.LegResult `json:"legs"`
	Summary     map[string]int      `json:"summary"`
}

// ValuePortfolio 对多腿组合逐腿估值并聚合。
// strict 为假时单腿失败只标记该腿;strict 为真时任何失败立即中止。
func ValuePortfolio(catalog *pricing.Catalog, market pricing.MarketInputs, legs []pricing.Leg, strict bool) (*PortfolioValuation, error) {
	out := &PortfolioValuation{
		Legs:    make([]pricing.LegResult, 0, len(legs)),
		Summary: map[string]int{"ok": 0, "error": 0},
	}

	for _, leg := range legs {
		if strict {
			quote, err := catalog.QuoteLeg(market, leg)
			if err != nil {
				return nil, fmt.Errorf("leg %s: %w", leg.ID, err)
			}
			res := pricing.LegResult{
				LegID:    leg.ID,
				Kind:     leg.Kind,
				Method:   catalog.ResolveMethod(leg.Kind, leg.Method),
				Quantity: leg.Quantity,
				Status:   pricing.LegStatusOK,
				Price:    quote.Price,
				Value:    leg.Quantity * quote.Price,
				Greeks:   quote.Greeks,
			}
			out.Legs = append(out.Legs, res)
			out.accumulate(res)
			continue
		}

		res := catalog.PriceLeg(market, leg)
		out.Legs = append(out.Legs, res)
		out.accumulate(res)
	}
	return out, nil
}

func (v *PortfolioValuation) accumulate(res pricing.LegResult) {
	if res.Status != pricing.LegStatusOK {
		v.Summary["error"]++
		return
	}
	v.Summary["ok"]++
	v.TotalPrice += res.Value
	v.TotalGreeks = v.TotalGreeks.Add(res.Greeks.Multiply(res.Quantity))
}
