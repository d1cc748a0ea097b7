// Package domain 组合服务领域事件
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// PortfolioSavedEvent 组合定义保存事件
type PortfolioSavedEvent struct {
	PortfolioID string    `json:"portfolio_id"`
	Name        string    `json:"name"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e *PortfolioSavedEvent) EventName() string     { return "portfolio.definition_saved" }
func (e *PortfolioSavedEvent) OccurredAt() time.Time { return e.Timestamp }

// PortfolioUpdatedEvent 组合定义更新事件
type PortfolioUpdatedEvent struct {
	PortfolioID string    `json:"portfolio_id"`
	Name        string    `json:"name"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e *PortfolioUpdatedEvent) EventName() string     { return "portfolio.definition_updated" }
func (e *PortfolioUpdatedEvent) OccurredAt() time.Time { return e.Timestamp }

// PortfolioDeletedEvent 组合定义删除事件
type PortfolioDeletedEvent struct {
	PortfolioID string    `json:"portfolio_id"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e *PortfolioDeletedEvent) EventName() string     { return "portfolio.definition_deleted" }
func (e *PortfolioDeletedEvent) OccurredAt() time.Time { return e.Timestamp }

// PortfolioPricedEvent 组合估值完成事件
type PortfolioPricedEvent struct {
	PortfolioID string          `json:"portfolio_id,omitempty"`
	LegCount    int             `json:"leg_count"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (e *PortfolioPricedEvent) EventName() string     { return "portfolio.portfolio_priced" }
func (e *PortfolioPricedEvent) OccurredAt() time.Time { return e.Timestamp }
