package domain

import (
	"context"
	"fmt"
	"math"

	portfolio "github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	scenario "github.com/wyfcoding/optionsengine/internal/scenario/domain"
)

// AnalysisSettings 深度分析的采样与热力图参数。
type AnalysisSettings struct {
	SpotRangePct      float64   `json:"spot_range_pct"`
	SpotSteps         int       `json:"spot_steps"`
	GridSpotShiftsPct []float64 `json:"grid_spot_shifts_pct"`
	GridVolShifts     []float64 `json:"grid_vol_shifts"`
	GridRateShiftBps  float64   `json:"grid_rate_shift_bps"`
}

// DefaultAnalysisSettings 缺省分析参数。
func DefaultAnalysisSettings() AnalysisSettings {
	return AnalysisSettings{
		SpotRangePct:      35.0,
		SpotSteps:         101,
		GridSpotShiftsPct: []float64{-20, -10, -5, 0, 5, 10, 20},
		GridVolShifts:     []float64{-0.10, -0.05, 0.0, 0.05, 0.10},
	}
}

func (s AnalysisSettings) Validate() error {
	if s.SpotRangePct < 5 || s.SpotRangePct > 200 {
		return fmt.Errorf("%w: spot_range_pct must be within [5, 200]", ErrInvalidSettings)
	}
	if s.SpotSteps < 21 || s.SpotSteps > 401 {
		return fmt.Errorf("%w: spot_steps must be within [21, 401]", ErrInvalidSettings)
	}
	if len(s.GridSpotShiftsPct) < 1 || len(s.GridSpotShiftsPct) > 25 {
		return fmt.Errorf("%w: grid_spot_shifts_pct must have 1 to 25 points", ErrInvalidSettings)
	}
	if len(s.GridVolShifts) < 1 || len(s.GridVolShifts) > 25 {
		return fmt.Errorf("%w: grid_vol_shifts must have 1 to 25 points", ErrInvalidSettings)
	}
	return nil
}

// Curve 现价采样曲线。
type Curve struct {
	Spots  []float64 `json:"spots"`
	Values []float64 `json:"values"`
}

// Heatmap 持有期热力图与聚焦格点。FocusIJ 为 (现价档下标, 波动率档下标)。
type Heatmap struct {
	SpotShiftsPct     []float64   `json:"spot_shifts_pct"`
	VolShifts         []float64   `json:"vol_shifts"`
	BaseTotal         float64     `json:"base_total"`
	GridTotals        [][]float64 `json:"grid_totals"`
	GridPnL           [][]float64 `json:"grid_pnl"`
	FocusSpotShiftPct float64     `json:"focus_spot_shift_pct"`
	FocusVolShift     float64     `json:"focus_vol_shift"`
	FocusIJ           *[2]int     `json:"focus_ij"`
}

// ScenarioRow 标注情景表的一行。
type ScenarioRow struct {
	Label        string  `json:"label"`
	SpotShiftPct float64 `json:"spot_shift_pct"`
	VolShift     float64 `json:"vol_shift"`
	RateShiftBps float64 `json:"rate_shift_bps"`
	TotalValue   float64 `json:"total_value"`
	PnLVsInitial float64 `json:"pnl_vs_initial"`
}

// Analysis 单个候选结构的完整分析结果。
type Analysis struct {
	BaseTotal    float64             `json:"base_total"`
	TotalGreeks  pricing.Greeks      `json:"total_greeks"`
	PerLeg       []pricing.LegResult `json:"per_leg"`
	Payoff       Curve               `json:"payoff"`
	Horizon      Curve               `json:"horizon"`
	Breakevens   []float64           `json:"breakevens"`
	MaxProfit    *float64            `json:"max_profit"`
	MaxLoss      float64             `json:"max_loss"`
	Heatmap      Heatmap             `json:"heatmap"`
	ScenarioPack []ScenarioRow       `json:"scenario_pack"`
}

// scenarioDefs 固定的八行标注情景。
var scenarioDefs = []struct {
	label        string
	spotShiftPct float64
	volShift     float64
	rateShiftBps float64
}{
	{"Spot -10%", -10.0, 0.0, 0.0},
	{"Spot -5%", -5.0, 0.0, 0.0},
	{"Spot +5%", 5.0, 0.0, 0.0},
	{"Spot +10%", 10.0, 0.0, 0.0},
	{"Vol -5", 0.0, -0.05, 0.0},
	{"Vol +5", 0.0, 0.05, 0.0},
	{"Rate -25bp", 0.0, 0.0, -25.0},
	{"Rate +25bp", 0.0, 0.0, 25.0},
}

// legsAtHorizon 把各腿剩余期限折减持有期, 到期的腿钳制在零。
func legsAtHorizon(legs []pricing.Leg, horizonYears float64) []pricing.Leg {
	out := make([]pricing.Leg, len(legs))
	for i, leg := range legs {
		leg.Params.Expiry = max(0, leg.Params.Expiry-horizonYears)
		out[i] = leg
	}
	return out
}

// nearestIndex 距目标最近的下标, 并列取靠前者。
func nearestIndex(xs []float64, x float64) int {
	best := 0
	for i := range xs {
		if math.Abs(xs[i]-x) < math.Abs(xs[best]-x) {
			best = i
		}
	}
	return best
}

// Analyze 对一组候选腿做完整分析: 基准估值、到期收益、持有期盈亏、
// 盈亏平衡点、热力图与标注情景表。估值全部走严格模式。
func Analyze(ctx context.Context, catalog *pricing.Catalog, m pricing.MarketInputs, view View, legs []pricing.Leg, settings AnalysisSettings, gridWorkers int) (*Analysis, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	spot0 := m.Spot
	norm := NormalizeView(view, spot0, m.Vol)

	base, err := portfolio.ValuePortfolio(catalog, m, legs, true)
	if err != nil {
		return nil, err
	}

	lo := max(1e-6, spot0*(1.0-settings.SpotRangePct/100.0))
	hi := spot0 * (1.0 + settings.SpotRangePct/100.0)
	spots := portfolio.Linspace(lo, hi, settings.SpotSteps)

	// 到期收益曲线只覆盖路径无关的腿, 被排除的腿不计入。
	payoffValues, _, _ := portfolio.PayoffCurve(legs, spots)
	payoffPnL := make([]float64, len(payoffValues))
	for i, v := range payoffValues {
		payoffPnL[i] = v - base.TotalPrice
	}

	marketH := m.WithVol(m.Vol + norm.SignedVolShift)
	legsH := legsAtHorizon(legs, norm.HorizonYears)

	horizonPnL, err := scenario.HorizonCurve(catalog, marketH, legsH, spots, base.TotalPrice)
	if err != nil {
		return nil, err
	}

	horizonPnLAt := func(s float64) (float64, error) {
		total, err := scenario.StrictTotal(catalog, marketH.WithSpot(s), legsH)
		if err != nil {
			return 0, err
		}
		return total - base.TotalPrice, nil
	}
	breakevens, err := scenario.Breakevens(spots, horizonPnL, horizonPnLAt)
	if err != nil {
		return nil, err
	}

	maxPnL, minPnL := 0.0, 0.0
	if len(payoffPnL) > 0 {
		maxPnL, minPnL = payoffPnL[0], payoffPnL[0]
		for _, v := range payoffPnL[1:] {
			maxPnL = max(maxPnL, v)
			minPnL = min(minPnL, v)
		}
	}
	maxLoss := 0.0
	if minPnL < 0 {
		maxLoss = -minPnL
	}
	var maxProfit *float64
	if slopeHigh(legs) <= unboundedSlopeTol {
		profit := maxPnL
		maxProfit = &profit
	}

	baseTotalH, err := scenario.StrictTotal(catalog, marketH, legsH)
	if err != nil {
		return nil, err
	}

	grid, err := scenario.ComputeGrid(ctx, catalog, marketH, legsH, scenario.GridSpec{
		SpotShiftsPct: settings.GridSpotShiftsPct,
		VolShifts:     settings.GridVolShifts,
		RateShiftBps:  settings.GridRateShiftBps,
	}, gridWorkers)
	if err != nil {
		return nil, err
	}
	gridPnL := make([][]float64, len(grid.GridTotals))
	for vi, row := range grid.GridTotals {
		gridPnL[vi] = make([]float64, len(row))
		for si, v := range row {
			gridPnL[vi][si] = v - baseTotalH
		}
	}

	focusSpotShift := (norm.ExpectedSpot/spot0 - 1.0) * 100.0
	focusIJ := [2]int{
		nearestIndex(settings.GridSpotShiftsPct, focusSpotShift),
		nearestIndex(settings.GridVolShifts, norm.SignedVolShift),
	}

	rows := make([]ScenarioRow, 0, len(scenarioDefs))
	for _, def := range scenarioDefs {
		mm := marketH
		mm.Spot = spot0 * (1.0 + def.spotShiftPct/100.0)
		mm.Vol = max(1e-6, marketH.Vol+def.volShift)
		mm.Rate = marketH.Rate + def.rateShiftBps/10000.0

		total, err := scenario.StrictTotal(catalog, mm, legsH)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ScenarioRow{
			Label:        def.label,
			SpotShiftPct: def.spotShiftPct,
			VolShift:     def.volShift,
			RateShiftBps: def.rateShiftBps,
			TotalValue:   total,
			PnLVsInitial: total - base.TotalPrice,
		})
	}

	return &Analysis{
		BaseTotal:    base.TotalPrice,
		TotalGreeks:  base.TotalGreeks,
		PerLeg:       base.Legs,
		Payoff:       Curve{Spots: spots, Values: payoffPnL},
		Horizon:      Curve{Spots: spots, Values: horizonPnL},
		Breakevens:   breakevens,
		MaxProfit:    maxProfit,
		MaxLoss:      maxLoss,
		Heatmap: Heatmap{
			SpotShiftsPct:     settings.GridSpotShiftsPct,
			VolShifts:         settings.GridVolShifts,
			BaseTotal:         baseTotalH,
			GridTotals:        grid.GridTotals,
			GridPnL:           gridPnL,
			FocusSpotShiftPct: focusSpotShift,
			FocusVolShift:     norm.SignedVolShift,
			FocusIJ:           &focusIJ,
		},
		ScenarioPack: rows,
	}, nil
}
