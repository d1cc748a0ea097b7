package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrEmptyName         = errors.New("portfolio name must not be empty")
)

// SavedPortfolio 保存的组合定义聚合根
type SavedPortfolio struct {
	gorm.Model
	PortfolioID string `gorm:"column:portfolio_id;type:varchar(36);uniqueIndex;not null"`
	Name        string `gorm:"column:name;type:varchar(120);not null"`
	Definition  string `gorm:"column:definition;type:json;not null"` // 腿列表 JSON

	// 领域事件
	domainEvents []DomainEvent `gorm:"-"`
}

// TableName 表名
func (SavedPortfolio) TableName() string {
	return "portfolio_definitions"
}

// NewSavedPortfolio 创建组合定义
func NewSavedPortfolio(portfolioID, name, definition string) (*SavedPortfolio, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	p := &SavedPortfolio{
		PortfolioID: portfolioID,
		Name:        name,
		Definition:  definition,
	}
	p.addEvent(&PortfolioSavedEvent{
		PortfolioID: portfolioID,
		Name:        name,
		Timestamp:   time.Now(),
	})
	return p, nil
}

// Replace 整体替换名称与腿定义
func (p *SavedPortfolio) Replace(name, definition string) error {
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	p.Definition = definition

	p.addEvent(&PortfolioUpdatedEvent{
		PortfolioID: p.PortfolioID,
		Name:        name,
		Timestamp:   time.Now(),
	})
	return nil
}

func (p *SavedPortfolio) addEvent(event DomainEvent) {
	p.domainEvents = append(p.domainEvents, event)
}

func (p *SavedPortfolio) GetDomainEvents() []DomainEvent {
	return p.domainEvents
}

func (p *SavedPortfolio) ClearDomainEvents() {
	p.domainEvents = nil
}

// SavedPortfolioRepository 组合定义仓储接口
type SavedPortfolioRepository interface {
	Save(ctx context.Context, p *SavedPortfolio) error
	GetByID(ctx context.Context, portfolioID string) (*SavedPortfolio, error)
	List(ctx context.Context, limit, offset int) ([]*SavedPortfolio, error)
	Delete(ctx context.Context, portfolioID string) error
}
