// 包 定价引擎的领域模型:市场环境、合约条款与多方法估值。
package domain

// MarketInputs 估值所用的市场环境
type MarketInputs struct {
	Spot     float64 `json:"spot"`      // 标的现价
	Rate     float64 `json:"rate"`      // 连续复利无风险利率
	DivYield float64 `json:"div_yield"` // 连续股息率
	Vol      float64 `json:"vol"`       // 年化波动率
}

// WithSpot 返回替换现价后的市场环境副本
func (m MarketInputs) WithSpot(spot float64) MarketInputs {
	m.Spot = spot
	return m
}

// WithRate 返回替换利率后的市场环境副本
func (m MarketInputs) WithRate(rate float64) MarketInputs {
	m.Rate = rate
	return m
}

// WithVol 返回替换波动率后的市场环境副本
func (m MarketInputs) WithVol(vol float64) MarketInputs {
	m.Vol = vol
	return m
}
