// Package domain 定价服务领域事件
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// InstrumentPricedEvent 单笔估值完成事件
type InstrumentPricedEvent struct {
	Kind      InstrumentKind  `json:"kind"`
	Method    PricingMethod   `json:"method"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

func (e *InstrumentPricedEvent) EventName() string     { return "pricing.instrument_priced" }
func (e *InstrumentPricedEvent) OccurredAt() time.Time { return e.Timestamp }

// SpreadPricedEvent 价差组合估值完成事件
type SpreadPricedEvent struct {
	StrikeLong  float64         `json:"strike_long"`
	StrikeShort float64         `json:"strike_short"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (e *SpreadPricedEvent) EventName() string     { return "pricing.spread_priced" }
func (e *SpreadPricedEvent) OccurredAt() time.Time { return e.Timestamp }
