package application

import (
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/optionsengine/internal/strategy/domain"
)

// RecommendCommand 策略推荐命令。Constraints/Generation 为空按缺省值处理。
type RecommendCommand struct {
	Market      pricing.MarketInputs
	View        domain.View
	Constraints *domain.Constraints
	Generation  *domain.Generation
	Method      pricing.PricingMethod
}

// AnalyzeCommand 候选结构深度分析命令。Settings 为空按缺省值处理。
type AnalyzeCommand struct {
	Market   pricing.MarketInputs
	View     domain.View
	Legs     []pricing.Leg
	Settings *domain.AnalysisSettings
}
