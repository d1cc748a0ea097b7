package application

import (
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/optionsengine/internal/scenario/domain"
)

// GridCommand 组合冲击网格命令。
type GridCommand struct {
	Market pricing.MarketInputs `json:"market"`
	Legs   []pricing.Leg        `json:"legs"`
	Spec   domain.GridSpec      `json:"spec"`
}

// RepriceCommand 单腿情景重估命令。
type RepriceCommand struct {
	Market pricing.MarketInputs `json:"market"`
	Leg    pricing.Leg          `json:"leg"`
	Shocks domain.Shocks        `json:"shocks"`
}

// StressCommand 压力测试命令。PackIDs 为空时运行全部内置包。
type StressCommand struct {
	Market  pricing.MarketInputs `json:"market"`
	Legs    []pricing.Leg        `json:"legs"`
	PackIDs []string             `json:"pack_ids"`
}

// StressView 压力测试结果集。
type StressView struct {
	BaseTotal float64               `json:"base_total"`
	Results   []domain.StressResult `json:"results"`
}
