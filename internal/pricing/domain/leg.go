package domain

import "fmt"

// LegStatus 组合腿的估值状态
type LegStatus string

const (
	LegStatusOK    LegStatus = "ok"
	LegStatusError LegStatus = "error"
)

// Leg 多腿组合中的一条腿。Method 为空时使用该种类的缺省方法。
type Leg struct {
	ID       string         `json:"leg_id"`
	Kind     InstrumentKind `json:"kind"`
	Method   PricingMethod  `json:"method,omitempty"`
	Quantity float64        `json:"quantity"`
	Params   InstrumentSpec `json:"params"`
}

// LegResult 单条腿的估值结果。失败的腿记录原因,不影响其他腿。
type LegResult struct {
	LegID    string         `json:"leg_id"`
	Kind     InstrumentKind `json:"kind"`
	Method   PricingMethod  `json:"method"`
	Quantity float64        `json:"quantity"`
	Status   LegStatus      `json:"status"`
	Price    float64        `json:"price"`  // 单位价格
	Value    float64        `json:"value"`  // 数量加权价值
	Greeks   Greeks         `json:"greeks"` // 单位希腊字母
	Error    string         `json:"error,omitempty"`
}

// ResolveMethod 将空方法落回种类缺省方法。
func (c *Catalog) ResolveMethod(kind InstrumentKind, method PricingMethod) PricingMethod {
	if method != "" {
		return method
	}
	if def, err := c.DefaultMethod(kind); err == nil {
		return def
	}
	return method
}

// PriceLeg 对单条腿做带失败隔离的估值。
func (c *Catalog) PriceLeg(m MarketInputs, leg Leg) LegResult {
	res := LegResult{
		LegID:    leg.ID,
		Kind:     leg.Kind,
		Method:   c.ResolveMethod(leg.Kind, leg.Method),
		Quantity: leg.Quantity,
	}
	if leg.Quantity == 0 {
		res.Status = LegStatusError
		res.Error = ErrZeroQuantity.Error()
		return res
	}
	q, err := c.Quote(m, leg.Kind, leg.Method, leg.Params)
	if err != nil {
		res.Status = LegStatusError
		res.Error = err.Error()
		return res
	}
	res.Status = LegStatusOK
	res.Price = q.Price
	res.Greeks = q.Greeks
	res.Value = leg.Quantity * q.Price
	return res
}

// QuoteLeg 对单条腿做严格估值,任何失败立即返回错误。
func (c *Catalog) QuoteLeg(m MarketInputs, leg Leg) (Quote, error) {
	if leg.Quantity == 0 {
		return Quote{}, fmt.Errorf("%w: %s", ErrZeroQuantity, leg.ID)
	}
	return c.Quote(m, leg.Kind, leg.Method, leg.Params)
}
