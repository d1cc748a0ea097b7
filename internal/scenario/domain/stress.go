package domain

import (
	"context"
	"errors"

	portfolio "github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

var ErrUnknownStressPack = errors.New("unknown stress pack")

// StressPack 命名压力测试包: 一组带注释的联合冲击。
type StressPack struct {
	PackID      string   `json:"pack_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Shocks      Shocks   `json:"shocks"`
	Builtin     bool     `json:"is_builtin"`
}

// BuiltinStressPacks 内置压力测试包。保持简短且可解释, 便于后续扩展。
func BuiltinStressPacks() []StressPack {
	return []StressPack{
		{
			PackID: "builtin:equity_crash",
			Name:   "Equity crash + vol spike + flight to quality",
			Description: "Sharp selloff drives implied vol up across the surface; " +
				"rates rally as capital rotates into bonds.",
			Tags:    []string{"equity", "vol", "risk-off"},
			Shocks:  Shocks{SpotShiftPct: -15.0, VolShift: 0.15, RateShiftBps: -50.0},
			Builtin: true,
		},
		{
			PackID: "builtin:melt_up",
			Name:   "Melt-up rally + vol bleed",
			Description: "Persistent grind higher compresses implied vol; " +
				"rates drift up with the risk-on tone.",
			Tags:    []string{"equity", "vol", "risk-on"},
			Shocks:  Shocks{SpotShiftPct: 10.0, VolShift: -0.05, RateShiftBps: 10.0},
			Builtin: true,
		},
		{
			PackID: "builtin:vol_crush",
			Name:   "Post-event vol crush",
			Description: "Event passes without a large move; implied vol resets lower " +
				"while spot and rates stay put.",
			Tags:    []string{"vol", "event"},
			Shocks:  Shocks{SpotShiftPct: 0.0, VolShift: -0.10, RateShiftBps: 0.0},
			Builtin: true,
		},
		{
			PackID: "builtin:rates_shock",
			Name:   "Rates shock + modest de-rating",
			Description: "Hawkish repricing lifts the discount rate; equities de-rate " +
				"moderately and vol firms.",
			Tags:    []string{"rates", "equity"},
			Shocks:  Shocks{SpotShiftPct: -4.0, VolShift: 0.04, RateShiftBps: 75.0},
			Builtin: true,
		},
		{
			PackID: "builtin:grind_down",
			Name:   "Slow grind lower",
			Description: "Orderly decline with only a mild bid for protection; " +
				"rates unchanged.",
			Tags:    []string{"equity"},
			Shocks:  Shocks{SpotShiftPct: -6.0, VolShift: 0.02, RateShiftBps: 0.0},
			Builtin: true,
		},
	}
}

// FindStressPack 按 pack_id 查找内置包, 未找到返回 false。
func FindStressPack(packID string) (StressPack, bool) {
	for _, p := range BuiltinStressPacks() {
		if p.PackID == packID {
			return p, true
		}
	}
	return StressPack{}, false
}

// StressResult 单个压力包作用于组合后的基准、冲击与盈亏。
type StressResult struct {
	Pack          StressPack `json:"pack"`
	BaseTotal     float64    `json:"base_total"`
	StressedTotal float64    `json:"stressed_total"`
	PnL           float64    `json:"pnl"`
}

// RunStress 依次运行各压力包。冲击侧沿用网格约定, 失败的腿静默跳过; 基准估值只算一次。
func RunStress(ctx context.Context, catalog *pricing.Catalog, m pricing.MarketInputs, legs []pricing.Leg, packs []StressPack) ([]StressResult, error) {
	base, err := portfolio.ValuePortfolio(catalog, m, legs, false)
	if err != nil {
		return nil, err
	}

	results := make([]StressResult, 0, len(packs))
	for _, pack := range packs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		shocked := ShiftMarket(m, pack.Shocks.SpotShiftPct, pack.Shocks.VolShift, pack.Shocks.RateShiftBps)
		total := cellTotal(catalog, shocked, legs)
		results = append(results, StressResult{
			Pack:          pack,
			BaseTotal:     base.TotalPrice,
			StressedTotal: total,
			PnL:           total - base.TotalPrice,
		})
	}
	return results, nil
}
