package domain

// Greeks 一阶与二阶风险敏感度
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Add 逐项相加
func (g Greeks) Add(o Greeks) Greeks {
	return Greeks{
		Delta: g.Delta + o.Delta,
		Gamma: g.Gamma + o.Gamma,
		Theta: g.Theta + o.Theta,
		Vega:  g.Vega + o.Vega,
		Rho:   g.Rho + o.Rho,
	}
}

// Multiply 逐项乘以数量
func (g Greeks) Multiply(q float64) Greeks {
	return Greeks{
		Delta: g.Delta * q,
		Gamma: g.Gamma * q,
		Theta: g.Theta * q,
		Vega:  g.Vega * q,
		Rho:   g.Rho * q,
	}
}

// Sub 逐项相减
func (g Greeks) Sub(o Greeks) Greeks {
	return g.Add(o.Multiply(-1))
}

// Quote 单位合约的估值结果
type Quote struct {
	Price  float64 `json:"price"`
	Greeks Greeks  `json:"greeks"`
}
