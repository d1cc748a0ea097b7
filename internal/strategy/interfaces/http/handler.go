package http

import (
	"errors"
	"net/http"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	pricinghttp "github.com/wyfcoding/optionsengine/internal/pricing/interfaces/http"
	"github.com/wyfcoding/optionsengine/internal/strategy/application"
	"github.com/wyfcoding/optionsengine/internal/strategy/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"

	"github.com/gin-gonic/gin"
)

// StrategyHandler 策略推荐与深度分析的 HTTP 接口。
type StrategyHandler struct {
	service *application.StrategyService
}

func NewStrategyHandler(service *application.StrategyService) *StrategyHandler {
	return &StrategyHandler{service: service}
}

func (h *StrategyHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/strategy")
	{
		api.POST("/recommend", h.Recommend)
		api.POST("/analyze", h.Analyze)
	}
}

// RecommendRequest 策略推荐请求。constraints/generation 缺省时使用服务端缺省值。
type RecommendRequest struct {
	Market      pricinghttp.MarketBody `json:"market" binding:"required"`
	View        domain.View            `json:"view" binding:"required"`
	Constraints *domain.Constraints    `json:"constraints"`
	Generation  *domain.Generation     `json:"generation"`
	Method      string                 `json:"method"`
}

// AnalyzeRequest 候选结构深度分析请求。
type AnalyzeRequest struct {
	Market   pricinghttp.MarketBody   `json:"market" binding:"required"`
	View     domain.View              `json:"view" binding:"required"`
	Legs     []pricing.Leg            `json:"legs" binding:"required,min=1"`
	Settings *domain.AnalysisSettings `json:"settings"`
}

func (h *StrategyHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	rec, err := h.service.Recommend(c.Request.Context(), application.RecommendCommand{
		Market:      req.Market.ToDomain(),
		View:        req.View,
		Constraints: req.Constraints,
		Generation:  req.Generation,
		Method:      pricing.PricingMethod(req.Method),
	})
	if err != nil {
		logging.Error(c.Request.Context(), "strategy recommend failed", "error", err)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, rec)
}

func (h *StrategyHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), application.AnalyzeCommand{
		Market:   req.Market.ToDomain(),
		View:     req.View,
		Legs:     req.Legs,
		Settings: req.Settings,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "strategy analyze failed", "error", err)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, analysis)
}

// statusFor 策略层校验错误映射为 400, 其余沿用定价层映射。
func statusFor(err error) int {
	for _, bad := range []error{
		domain.ErrInvalidView,
		domain.ErrInvalidConstraint,
		domain.ErrInvalidGeneration,
		domain.ErrInvalidSettings,
		domain.ErrUnknownStrategy,
	} {
		if errors.Is(err, bad) {
			return http.StatusBadRequest
		}
	}
	return pricinghttp.StatusForPricingError(err)
}
