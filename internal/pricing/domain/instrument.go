package domain

// InstrumentKind 合约种类
type InstrumentKind string

const (
	KindVanilla  InstrumentKind = "vanilla"
	KindAmerican InstrumentKind = "american"
	KindDigital  InstrumentKind = "digital"
	KindBarrier  InstrumentKind = "barrier"
	KindAsian    InstrumentKind = "asian"
	KindForward  InstrumentKind = "forward"
)

// PricingMethod 估值方法
type PricingMethod string

const (
	MethodBlackScholes      PricingMethod = "black_scholes"
	MethodBinomialCRR       PricingMethod = "binomial_crr"
	MethodMCDiscrete        PricingMethod = "mc_discrete"
	MethodMCBridge          PricingMethod = "mc_bridge"
	MethodGeometricClosed   PricingMethod = "geometric_closed_form"
	MethodArithmeticMC      PricingMethod = "arithmetic_mc"
	MethodDiscountedForward PricingMethod = "discounted_forward"
)

// OptionType 期权方向
type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// BarrierDirection 敲出方向
type BarrierDirection string

const (
	BarrierUp   BarrierDirection = "up"
	BarrierDown BarrierDirection = "down"
)

// 各方法的数值参数缺省值
const (
	DefaultVanillaTreeSteps  = 200
	DefaultAmericanTreeSteps = 300
	DefaultBarrierTreeSteps  = 200
	DefaultBarrierPaths      = 20000
	DefaultBarrierSteps      = 96
	DefaultBarrierSeed       = 7
	DefaultAsianFixings      = 52
	DefaultAsianPaths        = 30000
	DefaultAsianSeed         = 11
)

// InstrumentSpec 合约条款。按 Kind 取用对应字段,数值参数为零时落回方法缺省值。
type InstrumentSpec struct {
	OptionType OptionType       `json:"option_type,omitempty"` // 期权方向 (forward 不使用)
	Strike     float64          `json:"strike"`                // 行权价/交割价
	Expiry     float64          `json:"expiry"`                // 年化剩余期限
	Payout     float64          `json:"payout,omitempty"`      // digital 的现金支付额
	Direction  BarrierDirection `json:"direction,omitempty"`   // barrier 的敲出方向
	Level      float64          `json:"level,omitempty"`       // barrier 的障碍价
	Fixings    int              `json:"fixings,omitempty"`     // asian 的观察次数
	Steps      int              `json:"steps,omitempty"`       // 树/路径的时间步数
	Paths      int              `json:"paths,omitempty"`       // 蒙特卡洛路径数
	Seed       int64            `json:"seed,omitempty"`        // 蒙特卡洛随机种子
}

// withDefaults 按 (kind, method) 填充未指定的数值参数。
func (s InstrumentSpec) withDefaults(kind InstrumentKind, method PricingMethod) InstrumentSpec {
	switch kind {
	case KindVanilla:
		if s.Steps == 0 {
			s.Steps = DefaultVanillaTreeSteps
		}
	case KindAmerican:
		if s.Steps == 0 {
			s.Steps = DefaultAmericanTreeSteps
		}
	case KindBarrier:
		if method == MethodBinomialCRR {
			if s.Steps == 0 {
				s.Steps = DefaultBarrierTreeSteps
			}
			break
		}
		if s.Steps == 0 {
			s.Steps = DefaultBarrierSteps
		}
		if s.Paths == 0 {
			s.Paths = DefaultBarrierPaths
		}
		if s.Seed == 0 {
			s.Seed = DefaultBarrierSeed
		}
	case KindAsian:
		if s.Fixings == 0 {
			s.Fixings = DefaultAsianFixings
		}
		if s.Paths == 0 {
			s.Paths = DefaultAsianPaths
		}
		if s.Seed == 0 {
			s.Seed = DefaultAsianSeed
		}
	}
	return s
}

// validateShape 校验与种类相关的枚举字段。数值范围由各估值函数自行检查。
func (s InstrumentSpec) validateShape(kind InstrumentKind) error {
	switch kind {
	case KindVanilla, KindAmerican, KindDigital, KindAsian:
		if s.OptionType != OptionCall && s.OptionType != OptionPut {
			return ErrInvalidOptionType
		}
	case KindBarrier:
		if s.OptionType != OptionCall && s.OptionType != OptionPut {
			return ErrInvalidOptionType
		}
		if s.Direction != BarrierUp && s.Direction != BarrierDown {
			return ErrInvalidDirection
		}
	case KindForward:
		// 仅需要 strike 与 expiry
	default:
		return ErrUnknownKind
	}
	return nil
}
