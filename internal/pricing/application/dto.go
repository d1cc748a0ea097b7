package application

import "github.com/wyfcoding/optionsengine/internal/pricing/domain"

// PriceVanillaCommand 欧式香草期权闭式估值命令
type PriceVanillaCommand struct {
	Market     domain.MarketInputs
	OptionType domain.OptionType
	Strike     float64
	Expiry     float64
	Quantity   float64
}

// VanillaResult 香草期权估值结果,希腊字母为单位值
type VanillaResult struct {
	PricePerUnit float64       `json:"price_per_unit"`
	PriceTotal   float64       `json:"price_total"`
	Greeks       domain.Greeks `json:"greeks"`
}

// PriceLegCommand 任意 (种类, 方法) 的单腿估值命令
type PriceLegCommand struct {
	Market domain.MarketInputs
	Leg    domain.Leg
}

// LegView 单腿估值结果与方法说明
type LegView struct {
	Result     domain.LegResult `json:"result"`
	MethodNote string           `json:"method_note,omitempty"`
}

// PriceSpreadCommand 牛市看涨价差估值命令
type PriceSpreadCommand struct {
	Market      domain.MarketInputs
	StrikeLong  float64
	StrikeShort float64
	Expiry      float64
	Quantity    float64
}

// SpreadResult 价差估值结果,希腊字母为单位值
type SpreadResult struct {
	PricePerUnit float64       `json:"price_per_unit"`
	PriceTotal   float64       `json:"price_total"`
	Greeks       domain.Greeks `json:"greeks"`
}

// CatalogView 合约目录视图,供前端渲染表单
type CatalogView struct {
	MarketDefaults domain.MarketDefaults `json:"market_defaults"`
	Instruments    []domain.KindInfo     `json:"instruments"`
}
