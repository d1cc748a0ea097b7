package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DomainEvent 领域事件通用接口。
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// RecommendationGeneratedEvent 策略推荐完成事件。
type RecommendationGeneratedEvent struct {
	Direction   Direction       `json:"direction"`
	Candidates  int             `json:"candidates"`
	TopStrategy string          `json:"top_strategy,omitempty"`
	TopPremium  decimal.Decimal `json:"top_premium"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (e RecommendationGeneratedEvent) EventName() string     { return "strategy.recommendation_generated" }
func (e RecommendationGeneratedEvent) OccurredAt() time.Time { return e.Timestamp }
