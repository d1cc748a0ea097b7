package http

import (
	"errors"
	"net/http"

	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	pricinghttp "github.com/wyfcoding/optionsengine/internal/pricing/interfaces/http"
	"github.com/wyfcoding/optionsengine/internal/scenario/application"
	"github.com/wyfcoding/optionsengine/internal/scenario/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"

	"github.com/gin-gonic/gin"
)

// ScenarioHandler 情景分析与压力测试的 HTTP 接口。
type ScenarioHandler struct {
	service *application.ScenarioService
}

func NewScenarioHandler(service *application.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

func (h *ScenarioHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/portfolio/scenario-grid", h.ScenarioGrid)

	api := router.Group("/scenario")
	{
		api.POST("/reprice", h.Reprice)
		api.GET("/stress-packs", h.ListStressPacks)
		api.POST("/stress", h.RunStress)
	}
}

// GridRequest 冲击网格请求。
type GridRequest struct {
	Market        pricinghttp.MarketBody `json:"market" binding:"required"`
	Legs          []pricing.Leg          `json:"legs" binding:"required,min=1"`
	SpotShiftsPct []float64              `json:"spot_shifts_pct" binding:"required,min=1,max=25"`
	VolShifts     []float64              `json:"vol_shifts" binding:"required,min=1,max=25"`
	RateShiftBps  float64                `json:"rate_shift_bps"`
	PnL           bool                   `json:"pnl"`
}

// RepriceRequest 单腿情景重估请求。
type RepriceRequest struct {
	Market pricinghttp.MarketBody `json:"market" binding:"required"`
	Leg    pricing.Leg            `json:"leg" binding:"required"`
	Shocks domain.Shocks          `json:"shocks"`
}

// StressRequest 压力测试请求。
type StressRequest struct {
	Market  pricinghttp.MarketBody `json:"market" binding:"required"`
	Legs    []pricing.Leg          `json:"legs" binding:"required,min=1"`
	PackIDs []string               `json:"pack_ids"`
}

func (h *ScenarioHandler) ScenarioGrid(c *gin.Context) {
	var req GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	grid, err := h.service.ComputeGrid(c.Request.Context(), &application.GridCommand{
		Market: req.Market.ToDomain(),
		Legs:   req.Legs,
		Spec: domain.GridSpec{
			SpotShiftsPct: req.SpotShiftsPct,
			VolShifts:     req.VolShifts,
			RateShiftBps:  req.RateShiftBps,
			PnL:           req.PnL,
		},
	})
	if err != nil {
		logging.Error(c.Request.Context(), "scenario grid failed", "error", err)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, grid)
}

func (h *ScenarioHandler) Reprice(c *gin.Context) {
	var req RepriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	result, err := h.service.Reprice(c.Request.Context(), &application.RepriceCommand{
		Market: req.Market.ToDomain(),
		Leg:    req.Leg,
		Shocks: req.Shocks,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "scenario reprice failed", "error", err)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, result)
}

func (h *ScenarioHandler) ListStressPacks(c *gin.Context) {
	response.Success(c, h.service.ListStressPacks(c.Request.Context()))
}

func (h *ScenarioHandler) RunStress(c *gin.Context) {
	var req StressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	view, err := h.service.RunStress(c.Request.Context(), &application.StressCommand{
		Market:  req.Market.ToDomain(),
		Legs:    req.Legs,
		PackIDs: req.PackIDs,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "stress run failed", "error", err)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, view)
}

func statusFor(err error) int {
	for _, bad := range []error{
		domain.ErrEmptyGridAxis,
		domain.ErrGridTooLarge,
		domain.ErrUnknownStressPack,
	} {
		if errors.Is(err, bad) {
			return http.StatusBadRequest
		}
	}
	return pricinghttp.StatusForPricingError(err)
}
