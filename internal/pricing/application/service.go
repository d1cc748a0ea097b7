// Package application 定价应用层
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/pkg/messagequeue"

	"github.com/shopspring/decimal"
)

// PricingService 定价命令服务
type PricingService struct {
	catalog        *domain.Catalog
	eventPublisher messagequeue.EventPublisher
	logger         *slog.Logger
}

// NewPricingService 创建定价服务
func NewPricingService(
	catalog *domain.Catalog,
	eventPublisher messagequeue.EventPublisher,
	logger *slog.Logger,
) *PricingService {
	return &PricingService{
		catalog:        catalog,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Catalog 返回共享的估值目录。
func (s *PricingService) Catalog() *domain.Catalog {
	return s.catalog
}

// PriceVanilla 香草期权闭式估值,返回单位价格、数量加权总价与希腊字母。
func (s *PricingService) PriceVanilla(ctx context.Context, cmd PriceVanillaCommand) (*VanillaResult, error) {
	quote, err := domain.BlackScholes(cmd.Market, cmd.OptionType, cmd.Strike, cmd.Expiry)
	if err != nil {
		return nil, err
	}
	qty := cmd.Quantity
	if qty == 0 {
		qty = 1
	}

	s.logger.InfoContext(ctx, "vanilla priced",
		"option_type", cmd.OptionType,
		"strike", cmd.Strike,
		"price", quote.Price)

	s.publishEvents(ctx, []domain.DomainEvent{
		&domain.InstrumentPricedEvent{
			Kind:      domain.KindVanilla,
			Method:    domain.MethodBlackScholes,
			Price:     decimal.NewFromFloat(quote.Price),
			Timestamp: time.Now(),
		},
	})

	return &VanillaResult{
		PricePerUnit: quote.Price,
		PriceTotal:   quote.Price * qty,
		Greeks:       quote.Greeks,
	}, nil
}

// PriceLeg 通过调度器对任意 (kind, method) 腿估值。估值失败记录在
// 结果状态里而不是作为错误返回,与组合估值的失败隔离语义一致。
func (s *PricingService) PriceLeg(ctx context.Context, cmd PriceLegCommand) *LegView {
	result := s.catalog.PriceLeg(cmd.Market, cmd.Leg)

	if result.Status == domain.LegStatusOK {
		s.logger.InfoContext(ctx, "instrument priced",
			"kind", result.Kind,
			"method", result.Method,
			"price", result.Price)
		s.publishEvents(ctx, []domain.DomainEvent{
			&domain.InstrumentPricedEvent{
				Kind:      result.Kind,
				Method:    result.Method,
				Price:     decimal.NewFromFloat(result.Price),
				Timestamp: time.Now(),
			},
		})
	} else {
		s.logger.WarnContext(ctx, "instrument pricing failed",
			"kind", cmd.Leg.Kind,
			"method", cmd.Leg.Method,
			"error", result.Error)
	}

	return &LegView{
		Result:     result,
		MethodNote: s.catalog.MethodNote(result.Kind, result.Method),
	}
}

// PriceSpread 对牛市看涨价差估值
func (s *PricingService) PriceSpread(ctx context.Context, cmd PriceSpreadCommand) (*SpreadResult, error) {
	quote, err := domain.CallSpread(cmd.Market, cmd.StrikeLong, cmd.StrikeShort, cmd.Expiry)
	if err != nil {
		return nil, err
	}
	qty := cmd.Quantity
	if qty == 0 {
		qty = 1
	}

	s.logger.InfoContext(ctx, "call spread priced",
		"strike_long", cmd.StrikeLong,
		"strike_short", cmd.StrikeShort,
		"price", quote.Price)

	s.publishEvents(ctx, []domain.DomainEvent{
		&domain.SpreadPricedEvent{
			StrikeLong:  cmd.StrikeLong,
			StrikeShort: cmd.StrikeShort,
			Price:       decimal.NewFromFloat(quote.Price),
			Timestamp:   time.Now(),
		},
	})

	return &SpreadResult{
		PricePerUnit: quote.Price,
		PriceTotal:   quote.Price * qty,
		Greeks:       quote.Greeks,
	}, nil
}

// DescribeCatalog 返回全部合约种类、方法与参数元数据
func (s *PricingService) DescribeCatalog(ctx context.Context) *CatalogView {
	return &CatalogView{
		MarketDefaults: s.catalog.MarketFormDefaults(),
		Instruments:    s.catalog.Describe(),
	}
}

// publishEvents 发布领域事件
func (s *PricingService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
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
