package domain

import (
	"fmt"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

// Constraints 候选过滤与偏好约束。
type Constraints struct {
	// MaxLoss 可容忍的最大亏损 (货币单位), 为空不设上限。
	MaxLoss *float64 `json:"max_loss,omitempty"`
	// DefinedRiskOnly 为真时剔除最大亏损无界的候选。
	DefinedRiskOnly bool `json:"defined_risk_only"`
	// IncomeVsConvexity 偏好滑杆: 0 偏收权利金, 1 偏凸性 (gamma/vega)。
	IncomeVsConvexity float64 `json:"income_vs_convexity"`
	MaxLegs           int     `json:"max_legs"`
	AllowMultiExpiry  bool    `json:"allow_multi_expiry"`
}

// DefaultConstraints 缺省约束: 只保留风险有界的候选, 偏好居中, 最多四腿。
func DefaultConstraints() Constraints {
	return Constraints{
		DefinedRiskOnly:   true,
		IncomeVsConvexity: 0.5,
		MaxLegs:           4,
		AllowMultiExpiry:  true,
	}
}

func (c Constraints) Validate() error {
	if c.MaxLoss != nil && *c.MaxLoss < 0 {
		return fmt.Errorf("%w: max_loss must be non-negative", ErrInvalidConstraint)
	}
	if c.IncomeVsConvexity < 0 || c.IncomeVsConvexity > 1 {
		return fmt.Errorf("%w: income_vs_convexity must be within [0, 1]", ErrInvalidConstraint)
	}
	if c.MaxLegs < 1 || c.MaxLegs > 6 {
		return fmt.Errorf("%w: max_legs must be within [1, 6]", ErrInvalidConstraint)
	}
	return nil
}

// Generation 行权价与到期日的生成参数。
type Generation struct {
	StrikeStep float64 `json:"strike_step"`
	// WidthPct 价差/宽跨/蝶式的宽度覆盖值 (百分比), 为空按行情观点自动推导。
	WidthPct       *float64 `json:"width_pct,omitempty"`
	ExpiryDays     int      `json:"expiry_days"`
	LongExpiryDays int      `json:"long_expiry_days"`
	TreeSteps      int      `json:"tree_steps"`
}

// DefaultGeneration 缺省生成参数。
func DefaultGeneration() Generation {
	return Generation{
		StrikeStep:     1.0,
		ExpiryDays:     90,
		LongExpiryDays: 120,
		TreeSteps:      200,
	}
}

func (g Generation) Validate() error {
	if g.StrikeStep <= 0 {
		return fmt.Errorf("%w: strike_step must be positive", ErrInvalidGeneration)
	}
	if g.WidthPct != nil && (*g.WidthPct < 0 || *g.WidthPct > 200) {
		return fmt.Errorf("%w: width_pct must be within [0, 200]", ErrInvalidGeneration)
	}
	if g.ExpiryDays < 1 || g.ExpiryDays > 3650 {
		return fmt.Errorf("%w: expiry_days must be within [1, 3650]", ErrInvalidGeneration)
	}
	if g.LongExpiryDays < 1 || g.LongExpiryDays > 3650 {
		return fmt.Errorf("%w: long_expiry_days must be within [1, 3650]", ErrInvalidGeneration)
	}
	if g.TreeSteps < 10 || g.TreeSteps > 2000 {
		return fmt.Errorf("%w: tree_steps must be within [10, 2000]", ErrInvalidGeneration)
	}
	return nil
}

// normalized 保证远月到期严格晚于近月。
func (g Generation) normalized() Generation {
	if g.LongExpiryDays <= g.ExpiryDays {
		g.LongExpiryDays = g.ExpiryDays + 30
	}
	return g
}

// ValidateMethod 策略腿目前只用解析法与二叉树两种香草定价方法。
func ValidateMethod(method pricing.PricingMethod) error {
	switch method {
	case pricing.MethodBlackScholes, pricing.MethodBinomialCRR:
		return nil
	default:
		return fmt.Errorf("%w: %s for strategy legs", pricing.ErrUnsupportedMethod, method)
	}
}
