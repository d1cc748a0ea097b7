package application

import (
	"time"

	"github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
)

// PricePortfolioCommand 组合估值命令
type PricePortfolioCommand struct {
	Market pricing.MarketInputs
	Legs   []pricing.Leg
	Strict bool
}

// PayoffCommand 到期收益图命令
type PayoffCommand struct {
	Legs    []pricing.Leg
	SpotMin float64
	SpotMax float64
	Steps   int
}

// PayoffCurveView 到期收益图响应
type PayoffCurveView struct {
	Spots    []float64            `json:"spots"`
	Payoffs  []float64            `json:"payoffs"`
	Included []string             `json:"included_leg_ids"`
	Excluded []domain.ExcludedLeg `json:"excluded"`
}

// CreatePortfolioCommand 创建空组合命令
type CreatePortfolioCommand struct {
	Name string
}

// ImportPortfolioCommand 导入完整组合命令
type ImportPortfolioCommand struct {
	Name string
	Legs []pricing.Leg
}

// UpdatePortfolioCommand 整体替换组合命令
type UpdatePortfolioCommand struct {
	PortfolioID string
	Name        string
	Legs        []pricing.Leg
}

// PriceSavedPortfolioCommand 保存组合估值命令
type PriceSavedPortfolioCommand struct {
	PortfolioID string
	Market      pricing.MarketInputs
	Strict      bool
}

// PortfolioSummaryView 组合列表项
type PortfolioSummaryView struct {
	PortfolioID string    `json:"portfolio_id"`
	Name        string    `json:"name"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PortfolioDetailView 组合详情
type PortfolioDetailView struct {
	PortfolioID string        `json:"portfolio_id"`
	Name        string        `json:"name"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Legs        []pricing.Leg `json:"legs"`
}
