// Package application 情景分析应用层
package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/optionsengine/internal/scenario/domain"
	"github.com/wyfcoding/pkg/messagequeue"
)

// ScenarioService 情景分析服务
type ScenarioService struct {
	catalog        *pricing.Catalog
	gridCache      domain.GridCache
	eventPublisher messagequeue.EventPublisher
	logger         *slog.Logger
	gridWorkers    int
}

// NewScenarioService 创建情景分析服务
func NewScenarioService(
	catalog *pricing.Catalog,
	gridCache domain.GridCache,
	eventPublisher messagequeue.EventPublisher,
	logger *slog.Logger,
	gridWorkers int,
) *ScenarioService {
	return &ScenarioService{
		catalog:        catalog,
		gridCache:      gridCache,
		eventPublisher: eventPublisher,
		logger:         logger,
		gridWorkers:    gridWorkers,
	}
}

// ComputeGrid 计算组合冲击网格。命中缓存直接返回, 缓存故障按未命中处理。
func (s *ScenarioService) ComputeGrid(ctx context.Context, cmd *GridCommand) (*domain.ScenarioGrid, error) {
	key := gridCacheKey(cmd)

	if s.gridCache != nil && key != "" {
		cached, err := s.gridCache.Get(ctx, key)
		if err != nil {
			s.logger.WarnContext(ctx, "grid cache read failed", "error", err)
		} else if cached != nil {
			s.publishGridEvent(ctx, cached, true)
			return cached, nil
		}
	}

	grid, err := domain.ComputeGrid(ctx, s.catalog, cmd.Market, cmd.Legs, cmd.Spec, s.gridWorkers)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "scenario grid computed",
		"rows", len(grid.VolShifts),
		"cols", len(grid.SpotShiftsPct),
		"base_total", grid.BaseTotal)

	if s.gridCache != nil && key != "" {
		if err := s.gridCache.Save(ctx, key, grid); err != nil {
			s.logger.WarnContext(ctx, "grid cache write failed", "error", err)
		}
	}

	s.publishGridEvent(ctx, grid, false)
	return grid, nil
}

// Reprice 单腿基准与冲击双重估值。
func (s *ScenarioService) Reprice(ctx context.Context, cmd *RepriceCommand) (*domain.RepriceResult, error) {
	result, err := domain.RepriceLeg(s.catalog, cmd.Market, cmd.Leg, cmd.Shocks)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "leg repriced",
		"kind", cmd.Leg.Kind,
		"base_total", result.Base.PriceTotal,
		"diff_total", result.Diff.PriceTotal)
	return result, nil
}

// ListStressPacks 返回内置压力测试包目录。
func (s *ScenarioService) ListStressPacks(ctx context.Context) []domain.StressPack {
	return domain.BuiltinStressPacks()
}

// RunStress 对组合运行压力测试包。
func (s *ScenarioService) RunStress(ctx context.Context, cmd *StressCommand) (*StressView, error) {
	var packs []domain.StressPack
	if len(cmd.PackIDs) == 0 {
		packs = domain.BuiltinStressPacks()
	} else {
		packs = make([]domain.StressPack, 0, len(cmd.PackIDs))
		for _, id := range cmd.PackIDs {
			pack, ok := domain.FindStressPack(id)
			if !ok {
				return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStressPack, id)
			}
			packs = append(packs, pack)
		}
	}

	results, err := domain.RunStress(ctx, s.catalog, cmd.Market, cmd.Legs, packs)
	if err != nil {
		return nil, err
	}

	view := &StressView{Results: results}
	if len(results) > 0 {
		view.BaseTotal = results[0].BaseTotal
	}

	s.logger.InfoContext(ctx, "stress packs evaluated",
		"packs", len(results),
		"base_total", view.BaseTotal)
	return view, nil
}

func (s *ScenarioService) publishGridEvent(ctx context.Context, grid *domain.ScenarioGrid, cacheHit bool) {
	if s.eventPublisher == nil {
		return
	}
	event := &domain.GridComputedEvent{
		Rows:      len(grid.VolShifts),
		Cols:      len(grid.SpotShiftsPct),
		BaseTotal: grid.BaseTotal,
		CacheHit:  cacheHit,
		Timestamp: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event.EventName(), "", event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event",
			"event", event.EventName(),
			"error", err)
	}
}

// gridCacheKey 由请求内容哈希得到确定性的缓存键。
func gridCacheKey(cmd *GridCommand) string {
	data, err := json.Marshal(cmd)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}
