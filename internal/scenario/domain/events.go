package domain

import "time"

// DomainEvent 领域事件通用接口。
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// GridComputedEvent 冲击网格计算完成事件。
type GridComputedEvent struct {
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	BaseTotal float64   `json:"base_total"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
}

func (e GridComputedEvent) EventName() string     { return "scenario.grid_computed" }
func (e GridComputedEvent) OccurredAt() time.Time { return e.Timestamp }
