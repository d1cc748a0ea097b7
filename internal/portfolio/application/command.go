// Package application 组合应用层
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/messagequeue"

	"github.com/shopspring/decimal"
)

var ErrInvalidPayoffGrid = errors.New("payoff grid is invalid")

// CommandService 组合命令服务
type CommandService struct {
	catalog        *pricing.Catalog
	portfolioRepo  domain.SavedPortfolioRepository
	eventPublisher messagequeue.EventPublisher
	logger         *slog.Logger
}

// NewCommandService 创建命令服务
func NewCommandService(
	catalog *pricing.Catalog,
	portfolioRepo domain.SavedPortfolioRepository,
	eventPublisher messagequeue.EventPublisher,
	logger *slog.Logger,
) *CommandService {
	return &CommandService{
		catalog:        catalog,
		portfolioRepo:  portfolioRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// PricePortfolio 对临时组合估值
func (s *CommandService) PricePortfolio(ctx context.Context, cmd PricePortfolioCommand) (*domain.PortfolioValuation, error) {
	if err := s.validateLegs(cmd.Legs); err != nil {
		return nil, err
	}
	val, err := domain.ValuePortfolio(s.catalog, cmd.Market, cmd.Legs, cmd.Strict)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "portfolio priced",
		"legs", len(cmd.Legs),
		"ok", val.Summary["ok"],
		"error", val.Summary["error"],
		"total_price", val.TotalPrice)

	s.publishEvents(ctx, []domain.DomainEvent{
		&domain.PortfolioPricedEvent{
			LegCount:   len(cmd.Legs),
			TotalPrice: decimal.NewFromFloat(val.TotalPrice),
			Timestamp:  time.Now(),
		},
	})
	return val, nil
}

// PayoffCurve 计算到期收益图
func (s *CommandService) PayoffCurve(ctx context.Context, cmd PayoffCommand) (*PayoffCurveView, error) {
	if cmd.Steps == 0 {
		cmd.Steps = 41
	}
	if cmd.SpotMin <= 0 || cmd.SpotMax <= cmd.SpotMin || cmd.Steps < 3 || cmd.Steps > 401 {
		return nil, ErrInvalidPayoffGrid
	}
	spots := domain.Linspace(cmd.SpotMin, cmd.SpotMax, cmd.Steps)
	payoffs, included, excluded := domain.PayoffCurve(cmd.Legs, spots)
	return &PayoffCurveView{
		Spots:    spots,
		Payoffs:  payoffs,
		Included: included,
		Excluded: excluded,
	}, nil
}

// CreatePortfolio 创建空组合
func (s *CommandService) CreatePortfolio(ctx context.Context, cmd CreatePortfolioCommand) (*PortfolioDetailView, error) {
	portfolioID := fmt.Sprintf("PF%s", idgen.GenIDString())
	p, err := domain.NewSavedPortfolio(portfolioID, cmd.Name, "[]")
	if err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "portfolio created", "portfolio_id", portfolioID, "name", cmd.Name)
	s.publishEvents(ctx, p.GetDomainEvents())
	p.ClearDomainEvents()
	return toDetailView(p)
}

// ImportPortfolio 一次调用导入完整的多腿组合
func (s *CommandService) ImportPortfolio(ctx context.Context, cmd ImportPortfolioCommand) (*PortfolioDetailView, error) {
	if err := s.validateLegs(cmd.Legs); err != nil {
		return nil, err
	}
	definition, err := marshalLegs(cmd.Legs)
	if err != nil {
		return nil, err
	}
	portfolioID := fmt.Sprintf("PF%s", idgen.GenIDString())
	p, err := domain.NewSavedPortfolio(portfolioID, cmd.Name, definition)
	if err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "portfolio imported",
		"portfolio_id", portfolioID,
		"name", cmd.Name,
		"legs", len(cmd.Legs))
	s.publishEvents(ctx, p.GetDomainEvents())
	p.ClearDomainEvents()
	return toDetailView(p)
}

// UpdatePortfolio 整体替换组合名称与腿
func (s *CommandService) UpdatePortfolio(ctx context.Context, cmd UpdatePortfolioCommand) (*PortfolioDetailView, error) {
	if err := s.validateLegs(cmd.Legs); err != nil {
		return nil, err
	}
	p, err := s.portfolioRepo.GetByID(ctx, cmd.PortfolioID)
	if err != nil {
		return nil, err
	}
	definition, err := marshalLegs(cmd.Legs)
	if err != nil {
		return nil, err
	}
	if err := p.Replace(cmd.Name, definition); err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "portfolio updated", "portfolio_id", cmd.PortfolioID)
	s.publishEvents(ctx, p.GetDomainEvents())
	p.ClearDomainEvents()
	return toDetailView(p)
}

// DeletePortfolio 删除组合定义
func (s *CommandService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	if err := s.portfolioRepo.Delete(ctx, portfolioID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "portfolio deleted", "portfolio_id", portfolioID)
	s.publishEvents(ctx, []domain.DomainEvent{
		&domain.PortfolioDeletedEvent{PortfolioID: portfolioID, Timestamp: time.Now()},
	})
	return nil
}

// PriceSavedPortfolio 加载保存的组合并按当前市场环境估值
func (s *CommandService) PriceSavedPortfolio(ctx context.Context, cmd PriceSavedPortfolioCommand) (*domain.PortfolioValuation, error) {
	p, err := s.portfolioRepo.GetByID(ctx, cmd.PortfolioID)
	if err != nil {
		return nil, err
	}
	legs, err := unmarshalLegs(p.Definition)
	if err != nil {
		return nil, err
	}
	val, err := domain.ValuePortfolio(s.catalog, cmd.Market, legs, cmd.Strict)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "saved portfolio priced",
		"portfolio_id", cmd.PortfolioID,
		"legs", len(legs),
		"total_price", val.TotalPrice)

	s.publishEvents(ctx, []domain.DomainEvent{
		&domain.PortfolioPricedEvent{
			PortfolioID: cmd.PortfolioID,
			LegCount:    len(legs),
			TotalPrice:  decimal.NewFromFloat(val.TotalPrice),
			Timestamp:   time.Now(),
		},
	})
	return val, nil
}

// validateLegs 校验腿的基本形态:数量非零且 (kind, method) 在目录中。
func (s *CommandService) validateLegs(legs []pricing.Leg) error {
	for _, leg := range legs {
		if leg.Quantity == 0 {
			return fmt.Errorf("%w: %s", pricing.ErrZeroQuantity, leg.ID)
		}
		if !s.catalog.Supports(leg.Kind, leg.Method) {
			return fmt.Errorf("leg %s: %w: %s/%s", leg.ID, pricing.ErrUnsupportedMethod, leg.Kind, leg.Method)
		}
	}
	return nil
}

// publishEvents 发布领域事件
func (s *CommandService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
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

func marshalLegs(legs []pricing.Leg) (string, error) {
	if legs == nil {
		legs = []pricing.Leg{}
	}
	raw, err := json.Marshal(legs)
	if err != nil {
		return "", fmt.Errorf("marshal legs: %w", err)
	}
	return string(raw), nil
}

func unmarshalLegs(definition string) ([]pricing.Leg, error) {
	var legs []pricing.Leg
	if definition == "" {
		return legs, nil
	}
	if err := json.Unmarshal([]byte(definition), &legs); err != nil {
		return nil, fmt.Errorf("unmarshal legs: %w", err)
	}
	return legs, nil
}

func toDetailView(p *domain.SavedPortfolio) (*PortfolioDetailView, error) {
	legs, err := unmarshalLegs(p.Definition)
	if err != nil {
		return nil, err
	}
	if legs == nil {
		legs = []pricing.Leg{}
	}
	return &PortfolioDetailView{
		PortfolioID: p.PortfolioID,
		Name:        p.Name,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Legs:        legs,
	}, nil
}
