package domain

import (
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

// Shocks 单次情景的三维冲击: 现价百分比、波动率绝对值、利率基点。
type Shocks struct {
	SpotShiftPct float64 `json:"spot_shift_pct"`
	VolShift     float64 `json:"vol_shift"`
	RateShiftBps float64 `json:"rate_shift_bps"`
}

// Apply 返回冲击后的市场环境。不钳制波动率, 非法的冲击结果交由定价层校验报错。
func (s Shocks) Apply(m pricing.MarketInputs) pricing.MarketInputs {
	m.Spot = m.Spot * (1.0 + s.SpotShiftPct/100.0)
	m.Vol = m.Vol + s.VolShift
	m.Rate = m.Rate + s.RateShiftBps/10000.0
	return m
}

// LegOutcome 单腿在某一市场环境下的估值结果。
type LegOutcome struct {
	PricePerUnit float64        `json:"price_per_unit"`
	PriceTotal   float64        `json:"price_total"`
	Greeks       pricing.Greeks `json:"greeks"`
}

// RepriceResult 基准、冲击与差额三段结果。
type RepriceResult struct {
	Base    LegOutcome `json:"base"`
	Shocked LegOutcome `json:"shocked"`
	Diff    LegOutcome `json:"diff"`
}

func outcome(q pricing.Quote, quantity float64) LegOutcome {
	return LegOutcome{
		PricePerUnit: q.Price,
		PriceTotal:   q.Price * quantity,
		Greeks:       q.Greeks,
	}
}

// RepriceLeg 对单腿做基准与冲击双重估值并返回差额。任一侧定价失败整体报错。
func RepriceLeg(catalog *pricing.Catalog, m pricing.MarketInputs, leg pricing.Leg, shocks Shocks) (*RepriceResult, error) {
	baseQuote, err := catalog.QuoteLeg(m, leg)
	if err != nil {
		return nil, err
	}
	shockedQuote, err := catalog.QuoteLeg(shocks.Apply(m), leg)
	if err != nil {
		return nil, err
	}

	base := outcome(baseQuote, leg.Quantity)
	shocked := outcome(shockedQuote, leg.Quantity)
	diff := LegOutcome{
		PricePerUnit: shocked.PricePerUnit - base.PricePerUnit,
		PriceTotal:   shocked.PriceTotal - base.PriceTotal,
		Greeks:       shocked.Greeks.Sub(base.Greeks),
	}
	return &RepriceResult{Base: base, Shocked: shocked, Diff: diff}, nil
}
