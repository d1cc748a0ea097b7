package domain

import (
	"fmt"
	"math"
	"strings"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/pkg/idgen"
)

// 策略模板键
const (
	StrategyBullCallSpread = "bull_call_spread"
	StrategyBearPutSpread  = "bear_put_spread"
	StrategyBullPutSpread  = "bull_put_spread"
	StrategyBearCallSpread = "bear_call_spread"
	StrategyStraddle       = "straddle"
	StrategyStrangle       = "strangle"
	StrategyButterflyCall  = "butterfly_call"
	StrategyButterflyPut   = "butterfly_put"
	StrategyCalendarCall   = "calendar_call"
	StrategyCalendarPut    = "calendar_put"
	StrategyStrap          = "strap"
	StrategyStrip          = "strip"
)

var strategyNames = map[string]string{
	StrategyBullCallSpread: "Bull call spread",
	StrategyBearPutSpread:  "Bear put spread",
	StrategyBullPutSpread:  "Bull put spread",
	StrategyBearCallSpread: "Bear call spread",
	StrategyStraddle:       "Long straddle",
	StrategyStrangle:       "Long strangle",
	StrategyButterflyCall:  "Call butterfly",
	StrategyButterflyPut:   "Put butterfly",
	StrategyCalendarCall:   "Call calendar",
	StrategyCalendarPut:    "Put calendar",
	StrategyStrap:          "Strap",
	StrategyStrip:          "Strip",
}

var strategyNotes = map[string]string{
	StrategyBullCallSpread: "Defined-risk bullish structure: long a lower strike call, short a higher strike call.",
	StrategyBearPutSpread:  "Defined-risk bearish structure: long a higher strike put, short a lower strike put.",
	StrategyBullPutSpread:  "Defined-risk income-leaning bullish structure: short a higher strike put, long a lower strike put.",
	StrategyBearCallSpread: "Defined-risk income-leaning bearish structure: short a lower strike call, long a higher strike call.",
	StrategyStraddle:       "Convex / event-style structure: long call + long put at the same strike (typically ATM).",
	StrategyStrangle:       "Convex structure: long OTM put + long OTM call; cheaper than a straddle but needs a larger move.",
	StrategyButterflyCall:  "Range-bound structure (calls): 1:-2:1 call fly around a center strike.",
	StrategyButterflyPut:   "Range-bound structure (puts): 1:-2:1 put fly around a center strike.",
	StrategyCalendarCall:   "Time/vol structure: sell near-term call, buy longer-term call at same strike.",
	StrategyCalendarPut:    "Time/vol structure: sell near-term put, buy longer-term put at same strike.",
	StrategyStrap:          "Directional convexity: long 2 calls + long 1 put (same strike).",
	StrategyStrip:          "Directional convexity: long 1 call + long 2 puts (same strike).",
}

// StrategyName 展示名, 未知键原样返回。
func StrategyName(key string) string {
	if name, ok := strategyNames[key]; ok {
		return name
	}
	return key
}

// StrategyNote 结构说明。
func StrategyNote(key string) string {
	return strategyNotes[key]
}

func roundToStep(x, step float64) float64 {
	if step <= 0 {
		return x
	}
	return math.Round(x/step) * step
}

// autoWidthPct 用户幅度与隐含一倍标准差行情的混合带宽, 限制在 [2, 40] 个百分点。
func autoWidthPct(moveMagPct, vol, horizonYears float64) float64 {
	sigmaPct := vol * math.Sqrt(max(1e-9, horizonYears)) * 100.0
	band := max(moveMagPct, 0.6*sigmaPct)
	return min(40.0, max(2.0, band))
}

// baseStrikes 平值与上下两档行权价, 贴齐步长后修正保证严格排序。
func baseStrikes(spot, step, widthAbs float64) (kAtm, kDn, kUp float64) {
	kAtm = roundToStep(spot, step)
	kUp = roundToStep(spot+widthAbs, step)
	kDn = roundToStep(max(1e-6, spot-widthAbs), step)

	if kUp <= kAtm {
		kUp = kAtm + step
	}
	if kDn >= kAtm {
		kDn = max(1e-6, kAtm-step)
	}
	return kAtm, kDn, kUp
}

func vanillaLeg(qty float64, typ pricing.OptionType, strike, expiry float64, method pricing.PricingMethod, treeSteps int) pricing.Leg {
	spec := pricing.InstrumentSpec{OptionType: typ, Strike: strike, Expiry: expiry}
	if method == pricing.MethodBinomialCRR {
		spec.Steps = treeSteps
	}
	return pricing.Leg{
		ID:       fmt.Sprintf("L%s", idgen.GenShortID(10)),
		Kind:     pricing.KindVanilla,
		Method:   method,
		Quantity: qty,
		Params:   spec,
	}
}

// IsCalendar 日历类模板需要多到期日支持。
func IsCalendar(key string) bool {
	return strings.HasPrefix(key, "calendar")
}

// BuildLegs 按模板键实例化具体的策略腿。
func BuildLegs(key string, m pricing.MarketInputs, view NormalizedView, gen Generation, method pricing.PricingMethod) ([]pricing.Leg, error) {
	if err := ValidateMethod(method); err != nil {
		return nil, err
	}
	gen = gen.normalized()

	spot := m.Spot
	step := gen.StrikeStep

	widthPct := 0.0
	if gen.WidthPct != nil {
		widthPct = *gen.WidthPct
	} else {
		widthPct = autoWidthPct(view.MoveMagPct, m.Vol, view.HorizonYears)
	}
	widthAbs := max(step, spot*widthPct/100.0)

	kAtm, kDn, kUp := baseStrikes(spot, step, widthAbs)

	tShort := max(1.0/365.0, float64(gen.ExpiryDays)/365.0)
	tLong := max(tShort+1.0/365.0, float64(gen.LongExpiryDays)/365.0)

	leg := func(qty float64, typ pricing.OptionType, strike, expiry float64) pricing.Leg {
		return vanillaLeg(qty, typ, strike, expiry, method, gen.TreeSteps)
	}

	switch key {
	case StrategyBullCallSpread:
		return []pricing.Leg{
			leg(+1, pricing.OptionCall, kAtm, tShort),
			leg(-1, pricing.OptionCall, kUp, tShort),
		}, nil
	case StrategyBearPutSpread:
		return []pricing.Leg{
			leg(+1, pricing.OptionPut, kAtm, tShort),
			leg(-1, pricing.OptionPut, kDn, tShort),
		}, nil
	case StrategyBullPutSpread:
		return []pricing.Leg{
			leg(-1, pricing.OptionPut, kAtm, tShort),
			leg(+1, pricing.OptionPut, kDn, tShort),
		}, nil
	case StrategyBearCallSpread:
		return []pricing.Leg{
			leg(-1, pricing.OptionCall, kAtm, tShort),
			leg(+1, pricing.OptionCall, kUp, tShort),
		}, nil
	case StrategyStraddle:
		return []pricing.Leg{
			leg(+1, pricing.OptionCall, kAtm, tShort),
			leg(+1, pricing.OptionPut, kAtm, tShort),
		}, nil
	case StrategyStrangle:
		return []pricing.Leg{
			leg(+1, pricing.OptionPut, kDn, tShort),
			leg(+1, pricing.OptionCall, kUp, tShort),
		}, nil
	case StrategyButterflyCall, StrategyButterflyPut:
		// 蝶式中枢压在目标价上, 两翼各退一个带宽; 排序被破坏时退回平值三档。
		k2 := roundToStep(view.ExpectedSpot, step)
		k1 := roundToStep(max(1e-6, k2-widthAbs), step)
		k3 := roundToStep(k2+widthAbs, step)
		if k1 <= 0 {
			k1 = step
		}
		if !(k1 < k2 && k2 < k3) {
			k1, k2, k3 = kDn, kAtm, kUp
		}
		typ := pricing.OptionCall
		if key == StrategyButterflyPut {
			typ = pricing.OptionPut
		}
		return []pricing.Leg{
			leg(+1, typ, k1, tShort),
			leg(-2, typ, k2, tShort),
			leg(+1, typ, k3, tShort),
		}, nil
	case StrategyCalendarCall:
		return []pricing.Leg{
			leg(-1, pricing.OptionCall, kAtm, tShort),
			leg(+1, pricing.OptionCall, kAtm, tLong),
		}, nil
	case StrategyCalendarPut:
		return []pricing.Leg{
			leg(-1, pricing.OptionPut, kAtm, tShort),
			leg(+1, pricing.OptionPut, kAtm, tLong),
		}, nil
	case StrategyStrap:
		return []pricing.Leg{
			leg(+2, pricing.OptionCall, kAtm, tShort),
			leg(+1, pricing.OptionPut, kAtm, tShort),
		}, nil
	case StrategyStrip:
		return []pricing.Leg{
			leg(+1, pricing.OptionCall, kAtm, tShort),
			leg(+2, pricing.OptionPut, kAtm, tShort),
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, key)
}
