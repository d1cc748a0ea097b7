// 包 策略推荐领域模型:观点归一化、模板腿生成、候选评分与深度分析。
package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownStrategy   = errors.New("unknown strategy key")
	ErrInvalidView       = errors.New("invalid view")
	ErrInvalidConstraint = errors.New("invalid constraints")
	ErrInvalidGeneration = errors.New("invalid generation params")
	ErrInvalidSettings   = errors.New("invalid analysis settings")
)

// Direction 标的方向观点
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
	DirectionNeutral Direction = "neutral"
)

// VolView 波动率观点
type VolView string

const (
	VolViewUp   VolView = "up"
	VolViewDown VolView = "down"
	VolViewFlat VolView = "flat"
)

// Confidence 观点置信度, 仅随请求透传。
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// View 用户对标的与波动率在持有期内的观点。
// 预期行情可用 MovePct (百分比) 或 TargetPrice (绝对价位) 二选一表达, 都缺省按零处理。
type View struct {
	Direction   Direction  `json:"direction"`
	MovePct     *float64   `json:"move_pct,omitempty"`
	TargetPrice *float64   `json:"target_price,omitempty"`
	HorizonDays int        `json:"horizon_days"`
	VolView     VolView    `json:"vol_view"`
	VolShift    float64    `json:"vol_shift"`
	Confidence  Confidence `json:"confidence,omitempty"`
	Event       bool       `json:"event"`
}

// DefaultView 缺省观点: 看多、30 天持有期、波动率走平。
func DefaultView() View {
	return View{Direction: DirectionBullish, HorizonDays: 30, VolView: VolViewFlat}
}

func (v View) Validate() error {
	switch v.Direction {
	case DirectionBullish, DirectionBearish, DirectionNeutral:
	default:
		return fmt.Errorf("%w: direction must be bullish, bearish or neutral", ErrInvalidView)
	}
	switch v.VolView {
	case VolViewUp, VolViewDown, VolViewFlat:
	default:
		return fmt.Errorf("%w: vol_view must be up, down or flat", ErrInvalidView)
	}
	if v.HorizonDays < 1 || v.HorizonDays > 3650 {
		return fmt.Errorf("%w: horizon_days must be within [1, 3650]", ErrInvalidView)
	}
	if v.VolShift < 0 || v.VolShift > 2 {
		return fmt.Errorf("%w: vol_shift must be within [0, 2]", ErrInvalidView)
	}
	return nil
}

// NormalizedView 归一化后的观点: 符号对齐的涨跌幅、目标价、年化持有期与带号波动率冲击。
type NormalizedView struct {
	SignedMovePct  float64 `json:"signed_move_pct"`
	MoveMagPct     float64 `json:"move_mag_pct"`
	ExpectedSpot   float64 `json:"expected_spot"`
	HorizonYears   float64 `json:"horizon_years"`
	SignedVolShift float64 `json:"signed_vol_shift"`
}

// NormalizeView 把用户观点折算到一组带号数值。涨跌幅符号由方向决定;
// 中性观点把幅度仅当作行权价布设的区间宽度, 目标价保持在现价。
func NormalizeView(v View, spot, vol float64) NormalizedView {
	rawMovePct := 0.0
	if v.TargetPrice != nil {
		rawMovePct = (*v.TargetPrice/spot - 1.0) * 100.0
	} else if v.MovePct != nil {
		rawMovePct = *v.MovePct
	}
	moveMag := math.Abs(rawMovePct)

	var signedMove, expectedSpot float64
	switch v.Direction {
	case DirectionBullish:
		signedMove = moveMag
		expectedSpot = spot * (1.0 + signedMove/100.0)
	case DirectionBearish:
		signedMove = -moveMag
		expectedSpot = spot * (1.0 + signedMove/100.0)
	default:
		signedMove = 0.0
		expectedSpot = spot
	}

	horizonYears := max(1.0/365.0, float64(v.HorizonDays)/365.0)

	var signedVolShift float64
	switch v.VolView {
	case VolViewUp:
		signedVolShift = v.VolShift
	case VolViewDown:
		signedVolShift = -v.VolShift
	}
	// 钳制冲击幅度, 冲击后的波动率不得跌破零。
	if vol+signedVolShift <= 0 {
		signedVolShift = max(-vol+1e-6, signedVolShift)
	}

	return NormalizedView{
		SignedMovePct:  signedMove,
		MoveMagPct:     moveMag,
		ExpectedSpot:   expectedSpot,
		HorizonYears:   horizonYears,
		SignedVolShift: signedVolShift,
	}
}
