// Package application 策略推荐应用层
package application

import (
	"context"
	"log/slog"
	"time"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/optionsengine/internal/strategy/domain"
	"github.com/wyfcoding/pkg/messagequeue"

	"github.com/shopspring/decimal"
)

// StrategyService 策略推荐服务
type StrategyService struct {
	catalog        *pricing.Catalog
	eventPublisher messagequeue.EventPublisher
	logger         *slog.Logger
	gridWorkers    int
}

// NewStrategyService 创建策略推荐服务
func NewStrategyService(
	catalog *pricing.Catalog,
	eventPublisher messagequeue.EventPublisher,
	logger *slog.Logger,
	gridWorkers int,
) *StrategyService {
	return &StrategyService{
		catalog:        catalog,
		eventPublisher: eventPublisher,
		logger:         logger,
		gridWorkers:    gridWorkers,
	}
}

// Recommend 按用户观点生成候选结构并按契合度排序。
func (s *StrategyService) Recommend(ctx context.Context, cmd RecommendCommand) (*domain.Recommendation, error) {
	constraints := domain.DefaultConstraints()
	if cmd.Constraints != nil {
		constraints = *cmd.Constraints
	}
	gen := domain.DefaultGeneration()
	if cmd.Generation != nil {
		gen = *cmd.Generation
	}

	rec, err := domain.Recommend(s.catalog, cmd.Market, cmd.View, constraints, gen, cmd.Method)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "strategies recommended",
		"direction", cmd.View.Direction,
		"candidates", len(rec.Candidates),
		"expected_spot", rec.ExpectedSpot)

	event := &domain.RecommendationGeneratedEvent{
		Direction:  cmd.View.Direction,
		Candidates: len(rec.Candidates),
		Timestamp:  time.Now(),
	}
	if len(rec.Candidates) > 0 {
		event.TopStrategy = rec.Candidates[0].StrategyKey
		event.TopPremium = decimal.NewFromFloat(rec.Candidates[0].NetPremium)
	}
	s.publishEvents(ctx, []domain.DomainEvent{event})

	return rec, nil
}

// Analyze 对单个候选结构做完整分析。
func (s *StrategyService) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.Analysis, error) {
	settings := domain.DefaultAnalysisSettings()
	if cmd.Settings != nil {
		settings = *cmd.Settings
	}

	analysis, err := domain.Analyze(ctx, s.catalog, cmd.Market, cmd.View, cmd.Legs, settings, s.gridWorkers)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "strategy analyzed",
		"legs", len(cmd.Legs),
		"base_total", analysis.BaseTotal,
		"breakevens", len(analysis.Breakevens))

	return analysis, nil
}

// publishEvents 发布领域事件
func (s *StrategyService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event.EventName(), "", event); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish event",
				"event", event.EventName(),
				"error", err)
		}
	}
}
