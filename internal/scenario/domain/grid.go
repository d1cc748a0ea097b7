// 包 情景分析领域模型:冲击网格、单腿重估与内置压力测试包。
package domain

import (
	"context"
	"errors"
	"runtime"

	portfolio "github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"

	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyGridAxis = errors.New("grid axes must not be empty")
	ErrGridTooLarge  = errors.New("grid too large (max 225 points)")
)

// 单轴上限 25 档, 两轴乘积上限 225 个格点。
const (
	MaxAxisPoints = 25
	MaxGridPoints = 225
)

// GridSpec 冲击网格定义: 现价按百分比平移、波动率按绝对值平移, 利率平移以基点计且作用于整张网格。
type GridSpec struct {
	SpotShiftsPct []float64 `json:"spot_shifts_pct"`
	VolShifts     []float64 `json:"vol_shifts"`
	RateShiftBps  float64   `json:"rate_shift_bps"`
	// PnL 为真时网格返回相对基准估值的盈亏而非估值本身。
	PnL bool `json:"pnl,omitempty"`
}

func (s GridSpec) validate() error {
	rows, cols := len(s.VolShifts), len(s.SpotShiftsPct)
	if rows == 0 || cols == 0 {
		return ErrEmptyGridAxis
	}
	if rows > MaxAxisPoints || cols > MaxAxisPoints || rows*cols > MaxGridPoints {
		return ErrGridTooLarge
	}
	return nil
}

// ScenarioGrid 网格结果, GridTotals 以 [波动率档][现价档] 索引。
type ScenarioGrid struct {
	SpotShiftsPct []float64   `json:"spot_shifts_pct"`
	VolShifts     []float64   `json:"vol_shifts"`
	RateShiftBps  float64     `json:"rate_shift_bps"`
	BaseTotal     float64     `json:"base_total"`
	GridTotals    [][]float64 `json:"grid_totals"`
}

// GridCache 网格结果的读穿缓存。未命中返回 (nil, nil)。
type GridCache interface {
	Get(ctx context.Context, key string) (*ScenarioGrid, error)
	Save(ctx context.Context, key string, grid *ScenarioGrid) error
}

// ShiftMarket 对市场环境施加一组冲击。波动率下限钳制在 1e-8, 避免冲击后出现非法市场。
func ShiftMarket(m pricing.MarketInputs, spotShiftPct, volShift, rateShiftBps float64) pricing.MarketInputs {
	m.Spot = m.Spot * (1.0 + spotShiftPct/100.0)
	m.Vol = max(m.Vol+volShift, 1e-8)
	m.Rate = m.Rate + rateShiftBps/10000.0
	return m
}

// cellTotal 单个格点的组合估值。数量为零或定价失败的腿静默跳过, 网格只求快速可视化。
func cellTotal(catalog *pricing.Catalog, m pricing.MarketInputs, legs []pricing.Leg) float64 {
	total := 0.0
	for _, leg := range legs {
		if leg.Quantity == 0 {
			continue
		}
		res := catalog.PriceLeg(m, leg)
		if res.Status != pricing.LegStatusOK {
			continue
		}
		total += res.Value
	}
	return total
}

// ComputeGrid 并行计算冲击网格。基准估值取非严格模式下的组合总值, 格点按下标写入保证结果确定。
func ComputeGrid(ctx context.Context, catalog *pricing.Catalog, m pricing.MarketInputs, legs []pricing.Leg, spec GridSpec, workers int) (*ScenarioGrid, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	base, err := portfolio.ValuePortfolio(catalog, m, legs, false)
	if err != nil {
		return nil, err
	}

	rows, cols := len(spec.VolShifts), len(spec.SpotShiftsPct)
	totals := make([][]float64, rows)
	for vi := range totals {
		totals[vi] = make([]float64, cols)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for vi := range spec.VolShifts {
		for si := range spec.SpotShiftsPct {
			vi, si := vi, si
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				shocked := ShiftMarket(m, spec.SpotShiftsPct[si], spec.VolShifts[vi], spec.RateShiftBps)
				totals[vi][si] = cellTotal(catalog, shocked, legs)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if spec.PnL {
		for vi := range totals {
			for si := range totals[vi] {
				totals[vi][si] -= base.TotalPrice
			}
		}
	}

	return &ScenarioGrid{
		SpotShiftsPct: spec.SpotShiftsPct,
		VolShifts:     spec.VolShifts,
		RateShiftBps:  spec.RateShiftBps,
		BaseTotal:     base.TotalPrice,
		GridTotals:    totals,
	}, nil
}
