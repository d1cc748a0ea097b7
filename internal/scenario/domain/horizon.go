package domain

import (
	"fmt"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

// StrictTotal 严格模式的组合总值, 只算价格不算希腊字母。任一腿失败整体报错。
func StrictTotal(catalog *pricing.Catalog, m pricing.MarketInputs, legs []pricing.Leg) (float64, error) {
	total := 0.0
	for _, leg := range legs {
		price, err := catalog.Price(m, leg.Kind, leg.Method, leg.Params)
		if err != nil {
			return 0, fmt.Errorf("leg %s: %w", leg.ID, err)
		}
		total += price * leg.Quantity
	}
	return total, nil
}

// HorizonCurve 持有期盯市盈亏曲线: 在各现价采样点做完整重估并减去初始成本。
// 腿的剩余期限与波动率冲击由调用方先行折算到 legs 与 m 中。
func HorizonCurve(catalog *pricing.Catalog, m pricing.MarketInputs, legs []pricing.Leg, spots []float64, baseCost float64) ([]float64, error) {
	values := make([]float64, len(spots))
	for i, s := range spots {
		total, err := StrictTotal(catalog, m.WithSpot(s), legs)
		if err != nil {
			return nil, err
		}
		values[i] = total - baseCost
	}
	return values, nil
}
