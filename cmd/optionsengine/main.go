package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	portfolioapp "github.com/wyfcoding/optionsengine/internal/portfolio/application"
	portfoliodomain "github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	portfoliomysql "github.com/wyfcoding/optionsengine/internal/portfolio/infrastructure/persistence/mysql"
	portfoliohttp "github.com/wyfcoding/optionsengine/internal/portfolio/interfaces/http"
	pricingapp "github.com/wyfcoding/optionsengine/internal/pricing/application"
	pricingdomain "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	pricinghttp "github.com/wyfcoding/optionsengine/internal/pricing/interfaces/http"
	scenarioapp "github.com/wyfcoding/optionsengine/internal/scenario/application"
	scenarioredis "github.com/wyfcoding/optionsengine/internal/scenario/infrastructure/persistence/redis"
	scenariohttp "github.com/wyfcoding/optionsengine/internal/scenario/interfaces/http"
	strategyapp "github.com/wyfcoding/optionsengine/internal/strategy/application"
	strategyhttp "github.com/wyfcoding/optionsengine/internal/strategy/interfaces/http"
	"github.com/wyfcoding/optionsengine/pkg/ratelimit"
	"github.com/wyfcoding/pkg/app"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/middleware"
	pkgredis "github.com/wyfcoding/pkg/redis"
)

// BootstrapName 服务唯一标识
const BootstrapName = "optionsengine"

// Config 服务扩展配置
type Config struct {
	config.Config `mapstructure:",squash"`
	Engine        struct {
		GridWorkers        int  `mapstructure:"grid_workers" toml:"grid_workers"`
		RateLimitEnabled   bool `mapstructure:"rate_limit_enabled" toml:"rate_limit_enabled"`
		RateLimitPerSecond int  `mapstructure:"rate_limit_per_second" toml:"rate_limit_per_second"`
		RateLimitBurst     int  `mapstructure:"rate_limit_burst" toml:"rate_limit_burst"`
	} `mapstructure:"engine" toml:"engine"`
}

// AppContext 应用上下文
type AppContext struct {
	Config           *Config
	PricingService   *pricingapp.PricingService
	PortfolioCmd     *portfolioapp.CommandService
	PortfolioQuery   *portfolioapp.QueryService
	ScenarioService  *scenarioapp.ScenarioService
	StrategyService  *strategyapp.StrategyService
	PricingHandler   *pricinghttp.PricingHandler
	PortfolioHandler *portfoliohttp.PortfolioHandler
	ScenarioHandler  *scenariohttp.ScenarioHandler
	StrategyHandler  *strategyhttp.StrategyHandler
	ComputeLimiter   ratelimit.Limiter
	Metrics          *metrics.Metrics
}

func main() {
	if err := app.NewBuilder[*Config, *AppContext](BootstrapName).
		WithConfig(&Config{}).
		WithService(initService).
		WithGin(registerGin).
		WithGinMiddleware(
			middleware.CORS(),
			middleware.TimeoutMiddleware(30*time.Second),
		).
		Build().
		Run(); err != nil {
		slog.Error("service bootstrap failed", "error", err)
	}
}

func registerGin(e *gin.Engine, ctx *AppContext) {
	if ctx.Config.Server.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	api := e.Group("/api/v1")
	if ctx.Config.Engine.RateLimitEnabled {
		api.Use(ratelimit.PerClient(ctx.ComputeLimiter, ratelimit.Rule{
			PerSecond: ctx.Config.Engine.RateLimitPerSecond,
			Burst:     ctx.Config.Engine.RateLimitBurst,
		}))
	}
	{
		ctx.PricingHandler.RegisterRoutes(api)
		ctx.PortfolioHandler.RegisterRoutes(api)
		ctx.ScenarioHandler.RegisterRoutes(api)
		ctx.StrategyHandler.RegisterRoutes(api)
	}
}

func initService(cfg *Config, m *metrics.Metrics) (*AppContext, func(), error) {
	bootLog := slog.With("module", "bootstrap")
	logger := logging.Default()

	if cfg.Engine.RateLimitPerSecond <= 0 {
		cfg.Engine.RateLimitPerSecond = 10
	}
	if cfg.Engine.RateLimitBurst <= 0 {
		cfg.Engine.RateLimitBurst = 2 * cfg.Engine.RateLimitPerSecond
	}

	// 1. 数据库
	dbWrapper, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init db: %w", err)
	}
	db := dbWrapper.RawDB()

	// 自动迁移
	if err := db.AutoMigrate(&portfoliodomain.SavedPortfolio{}, &outbox.Message{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	// 2. 消息队列 & Outbox
	producer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, m)
	outboxMgr := outbox.NewManager(db, logger.Logger)
	outboxProc := outbox.NewProcessor(outboxMgr, func(ctx context.Context, topic, key string, payload []byte) error {
		return producer.PublishToTopic(ctx, topic, []byte(key), payload)
	}, 100, 5*time.Second)
	outboxProc.Start()
	publisher := outbox.NewPublisher(outboxMgr)

	// 3. Redis: 情景网格缓存与限流
	redisClient, redisCleanup, err := pkgredis.NewClient(&cfg.Data.Redis, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	gridCache := scenarioredis.NewGridCache(redisClient)
	computeLimiter := ratelimit.NewRedisLimiter(redisClient, BootstrapName)

	// 4. 估值目录与仓储
	catalog := pricingdomain.NewCatalog()
	portfolioRepo := portfoliomysql.NewSavedPortfolioRepository(db)

	// 5. 服务
	pricingService := pricingapp.NewPricingService(catalog, publisher, logger.Logger)
	portfolioCmd := portfolioapp.NewCommandService(catalog, portfolioRepo, publisher, logger.Logger)
	portfolioQuery := portfolioapp.NewQueryService(portfolioRepo, logger.Logger)
	scenarioService := scenarioapp.NewScenarioService(catalog, gridCache, publisher, logger.Logger, cfg.Engine.GridWorkers)
	strategyService := strategyapp.NewStrategyService(catalog, publisher, logger.Logger, cfg.Engine.GridWorkers)

	// 6. Handler
	pricingHandler := pricinghttp.NewPricingHandler(pricingService)
	portfolioHandler := portfoliohttp.NewPortfolioHandler(portfolioCmd, portfolioQuery)
	scenarioHandler := scenariohttp.NewScenarioHandler(scenarioService)
	strategyHandler := strategyhttp.NewStrategyHandler(strategyService)

	cleanup := func() {
		bootLog.Info("shutting down...")
		outboxProc.Stop()
		if producer != nil {
			producer.Close()
		}
		redisCleanup()
		if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
			sqlDB.Close()
		}
	}

	return &AppContext{
		Config:           cfg,
		PricingService:   pricingService,
		PortfolioCmd:     portfolioCmd,
		PortfolioQuery:   portfolioQuery,
		ScenarioService:  scenarioService,
		StrategyService:  strategyService,
		PricingHandler:   pricingHandler,
		PortfolioHandler: portfolioHandler,
		ScenarioHandler:  scenarioHandler,
		StrategyHandler:  strategyHandler,
		ComputeLimiter:   computeLimiter,
		Metrics:          m,
	}, cleanup, nil
}
