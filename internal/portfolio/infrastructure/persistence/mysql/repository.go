package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	"gorm.io/gorm"
)

// savedPortfolioRepository GORM 组合定义仓储实现
type savedPortfolioRepository struct {
	db *gorm.DB
}

// NewSavedPortfolioRepository 创建组合定义仓储
func NewSavedPortfolioRepository(db *gorm.DB) domain.SavedPortfolioRepository {
	return &savedPortfolioRepository{db: db}
}

// Save 保存组合定义聚合根
func (r *savedPortfolioRepository) Save(ctx context.Context, p *domain.SavedPortfolio) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// GetByID 根据业务 ID 获取组合定义
func (r *savedPortfolioRepository) GetByID(ctx context.Context, portfolioID string) (*domain.SavedPortfolio, error) {
	var p domain.SavedPortfolio
	if err := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("load portfolio %s: %w", portfolioID, err)
	}
	return &p, nil
}

// List 按最近更新排序分页返回组合定义
func (r *savedPortfolioRepository) List(ctx context.Context, limit, offset int) ([]*domain.SavedPortfolio, error) {
	var out []*domain.SavedPortfolio
	err := r.db.WithContext(ctx).
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete 删除组合定义
func (r *savedPortfolioRepository) Delete(ctx context.Context, portfolioID string) error {
	res := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID).Delete(&domain.SavedPortfolio{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}
