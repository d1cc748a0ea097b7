package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/optionsengine/internal/pricing/application"
	"github.com/wyfcoding/optionsengine/internal/pricing/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// HTTP 处理器
// 负责香草期权、价差、任意单腿估值与目录查询的 HTTP 请求
type PricingHandler struct {
	service *application.PricingService
}

// 创建 HTTP 处理器实例
func NewPricingHandler(service *application.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

// 注册路由
func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/pricing")
	{
		api.POST("/vanilla", h.PriceVanilla)
		api.POST("/call-spread", h.PriceSpread)
		api.POST("/instrument", h.PriceInstrument)
		api.GET("/catalog", h.GetCatalog)
	}
}

// MarketBody 市场环境请求体
type MarketBody struct {
	Spot     float64 `json:"spot" binding:"gt=0"`
	Rate     float64 `json:"rate"`
	DivYield float64 `json:"div_yield"`
	Vol      float64 `json:"vol" binding:"gt=0"`
}

func (b MarketBody) ToDomain() domain.MarketInputs {
	return domain.MarketInputs{Spot: b.Spot, Rate: b.Rate, DivYield: b.DivYield, Vol: b.Vol}
}

// VanillaRequest 香草期权闭式估值请求
type VanillaRequest struct {
	Market     MarketBody `json:"market"`
	OptionType string     `json:"option_type" binding:"required,oneof=call put"`
	Strike     float64    `json:"strike" binding:"gt=0"`
	Expiry     float64    `json:"expiry" binding:"gt=0"`
	Quantity   float64    `json:"quantity" binding:"omitempty,gt=0"`
}

// PriceVanilla 香草期权闭式估值
func (h *PricingHandler) PriceVanilla(c *gin.Context) {
	var req VanillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.PriceVanillaCommand{
		Market:     req.Market.ToDomain(),
		OptionType: domain.OptionType(req.OptionType),
		Strike:     req.Strike,
		Expiry:     req.Expiry,
		Quantity:   req.Quantity,
	}

	res, err := h.service.PriceVanilla(c.Request.Context(), cmd)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to price vanilla", "error", err)
		response.ErrorWithStatus(c, StatusForPricingError(err), err.Error(), "")
		return
	}

	response.Success(c, res)
}

// SpreadRequest 牛市看涨价差估值请求
type SpreadRequest struct {
	Market      MarketBody `json:"market"`
	StrikeLong  float64    `json:"strike_long" binding:"gt=0"`
	StrikeShort float64    `json:"strike_short" binding:"gt=0"`
	Expiry      float64    `json:"expiry" binding:"gt=0"`
	Quantity    float64    `json:"quantity" binding:"omitempty,gt=0"`
}

// PriceSpread 价差估值
func (h *PricingHandler) PriceSpread(c *gin.Context) {
	var req SpreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.PriceSpreadCommand{
		Market:      req.Market.ToDomain(),
		StrikeLong:  req.StrikeLong,
		StrikeShort: req.StrikeShort,
		Expiry:      req.Expiry,
		Quantity:    req.Quantity,
	}

	res, err := h.service.PriceSpread(c.Request.Context(), cmd)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to price spread", "error", err)
		response.ErrorWithStatus(c, StatusForPricingError(err), err.Error(), "")
		return
	}

	response.Success(c, res)
}

// InstrumentRequest 任意单腿估值请求
type InstrumentRequest struct {
	Market MarketBody `json:"market"`
	Leg    domain.Leg `json:"leg" binding:"required"`
}

// PriceInstrument 任意 (kind, method) 单腿估值。估值失败时响应仍为 200,
// 失败原因在结果的 status/error 字段里。
func (h *PricingHandler) PriceInstrument(c *gin.Context) {
	var req InstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	view := h.service.PriceLeg(c.Request.Context(), application.PriceLegCommand{
		Market: req.Market.ToDomain(),
		Leg:    req.Leg,
	})
	response.Success(c, view)
}

// GetCatalog 查询合约目录
func (h *PricingHandler) GetCatalog(c *gin.Context) {
	response.Success(c, h.service.DescribeCatalog(c.Request.Context()))
}

// StatusForPricingError 将领域校验错误映射为 400,其余视为内部错误。
func StatusForPricingError(err error) int {
	for _, sentinel := range []error{
		domain.ErrInvalidSpot,
		domain.ErrInvalidStrike,
		domain.ErrInvalidVol,
		domain.ErrInvalidPayout,
		domain.ErrInvalidBarrier,
		domain.ErrInvalidDirection,
		domain.ErrInvalidOptionType,
		domain.ErrInvalidSteps,
		domain.ErrInvalidPaths,
		domain.ErrInvalidFixings,
		domain.ErrInvalidSpread,
		domain.ErrZeroQuantity,
		domain.ErrUnknownKind,
		domain.ErrUnsupportedMethod,
	} {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
