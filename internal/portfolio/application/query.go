package application

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/optionsengine/internal/portfolio/domain"
)

// QueryService 组合查询服务
type QueryService struct {
	portfolioRepo domain.SavedPortfolioRepository
	logger        *slog.Logger
}

// NewQueryService 创建查询服务
func NewQueryService(portfolioRepo domain.SavedPortfolioRepository, logger *slog.Logger) *QueryService {
	return &QueryService{portfolioRepo: portfolioRepo, logger: logger}
}

// GetPortfolio 查询组合详情
func (s *QueryService) GetPortfolio(ctx context.Context, portfolioID string) (*PortfolioDetailView, error) {
	p, err := s.portfolioRepo.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return toDetailView(p)
}

// ListPortfolios 按最近更新排序分页查询组合
func (s *QueryService) ListPortfolios(ctx context.Context, limit, offset int) ([]PortfolioSummaryView, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.portfolioRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]PortfolioSummaryView, 0, len(rows))
	for _, p := range rows {
		out = append(out, PortfolioSummaryView{
			PortfolioID: p.PortfolioID,
			Name:        p.Name,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return out, nil
}
