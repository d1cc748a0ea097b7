package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wyfcoding/optionsengine/internal/portfolio/application"
	"github.com/wyfcoding/optionsengine/internal/portfolio/domain"
	pricing "github.com/wyfcoding/optionsengine/internal/pricing/domain"
	pricinghttp "github.com/wyfcoding/optionsengine/internal/pricing/interfaces/http"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler 组合估值与组合定义管理的 HTTP 接口。
type PortfolioHandler struct {
	commands *application.CommandService
	queries  *application.QueryService
}

func NewPortfolioHandler(commands *application.CommandService, queries *application.QueryService) *PortfolioHandler {
	return &PortfolioHandler{commands: commands, queries: queries}
}

func (h *PortfolioHandler) RegisterRoutes(router *gin.RouterGroup) {
	valuation := router.Group("/portfolio")
	{
		valuation.POST("/price", h.PricePortfolio)
		valuation.POST("/payoff", h.PayoffCurve)
	}
	saved := router.Group("/portfolios")
	{
		saved.GET("", h.ListPortfolios)
		saved.POST("", h.CreatePortfolio)
		saved.POST("/import", h.ImportPortfolio)
		saved.GET("/:id", h.GetPortfolio)
		saved.PUT("/:id", h.UpdatePortfolio)
		saved.DELETE("/:id", h.DeletePortfolio)
		saved.POST("/:id/price", h.PriceSavedPortfolio)
	}
}

// PricePortfolioRequest 组合即时估值请求。
type PricePortfolioRequest struct {
	Market pricinghttp.MarketBody `json:"market" binding:"required"`
	Legs   []pricing.Leg          `json:"legs" binding:"required,min=1"`
	Strict bool                   `json:"strict"`
}

// PayoffRequest 到期收益曲线请求。
type PayoffRequest struct {
	Legs    []pricing.Leg `json:"legs" binding:"required,min=1"`
	SpotMin float64       `json:"spot_min" binding:"gt=0"`
	SpotMax float64       `json:"spot_max" binding:"gtfield=SpotMin"`
	Steps   int           `json:"steps" binding:"omitempty,gte=3,lte=401"`
}

// CreatePortfolioRequest 新建空组合请求。
type CreatePortfolioRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// ImportPortfolioRequest 整体导入组合请求。
type ImportPortfolioRequest struct {
	Name string        `json:"name" binding:"required,max=120"`
	Legs []pricing.Leg `json:"legs" binding:"required"`
}

// UpdatePortfolioRequest 覆盖已保存组合请求。
type UpdatePortfolioRequest struct {
	Name string        `json:"name" binding:"required,max=120"`
	Legs []pricing.Leg `json:"legs" binding:"required"`
}

// PriceSavedRequest 已保存组合估值请求。
type PriceSavedRequest struct {
	Market pricinghttp.MarketBody `json:"market" binding:"required"`
	Strict bool                   `json:"strict"`
}

func (h *PortfolioHandler) PricePortfolio(c *gin.Context) {
	var req PricePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	result, err := h.commands.PricePortfolio(c.Request.Context(), application.PricePortfolioCommand{
		Market: req.Market.ToDomain(),
		Legs:   req.Legs,
		Strict: req.Strict,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "price portfolio failed", "error", err)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, result)
}

func (h *PortfolioHandler) PayoffCurve(c *gin.Context) {
	var req PayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	view, err := h.commands.PayoffCurve(c.Request.Context(), application.PayoffCommand{
		Legs:    req.Legs,
		SpotMin: req.SpotMin,
		SpotMax: req.SpotMax,
		Steps:   req.Steps,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "payoff curve failed", "error", err)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, view)
}

func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	view, err := h.commands.CreatePortfolio(c.Request.Context(), application.CreatePortfolioCommand{Name: req.Name})
	if err != nil {
		logging.Error(c.Request.Context(), "create portfolio failed", "error", err, "name", req.Name)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, view)
}

func (h *PortfolioHandler) ImportPortfolio(c *gin.Context) {
	var req ImportPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	view, err := h.commands.ImportPortfolio(c.Request.Context(), application.ImportPortfolioCommand{
		Name: req.Name,
		Legs: req.Legs,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "import portfolio failed", "error", err, "name", req.Name)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, view)
}

func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	views, err := h.queries.ListPortfolios(c.Request.Context(), limit, offset)
	if err != nil {
		logging.Error(c.Request.Context(), "list portfolios failed", "error", err)
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, views)
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	view, err := h.queries.GetPortfolio(c.Request.Context(), c.Param("id"))
	if err != nil {
		logging.Error(c.Request.Context(), "get portfolio failed", "error", err, "portfolio_id", c.Param("id"))
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, view)
}

func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	view, err := h.commands.UpdatePortfolio(c.Request.Context(), application.UpdatePortfolioCommand{
		PortfolioID: c.Param("id"),
		Name:        req.Name,
		Legs:        req.Legs,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "update portfolio failed", "error", err, "portfolio_id", c.Param("id"))
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, view)
}

func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	if err := h.commands.DeletePortfolio(c.Request.Context(), c.Param("id")); err != nil {
		logging.Error(c.Request.Context(), "delete portfolio failed", "error", err, "portfolio_id", c.Param("id"))
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, gin.H{"portfolio_id": c.Param("id"), "deleted": true})
}

func (h *PortfolioHandler) PriceSavedPortfolio(c *gin.Context) {
	var req PriceSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	result, err := h.commands.PriceSavedPortfolio(c.Request.Context(), application.PriceSavedPortfolioCommand{
		PortfolioID: c.Param("id"),
		Market:      req.Market.ToDomain(),
		Strict:      req.Strict,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "price saved portfolio failed", "error", err, "portfolio_id", c.Param("id"))
		response.ErrorWithStatus(c, statusFor(err), err.Error(), "")
		return
	}
	response.Success(c, result)
}

// statusFor 组合层错误到 HTTP 状态码的映射, 定价层哨兵错误沿用定价接口的映射。
func statusFor(err error) int {
	if errors.Is(err, domain.ErrPortfolioNotFound) {
		return http.StatusNotFound
	}
	for _, bad := range []error{
		domain.ErrEmptyName,
		domain.ErrPathDependentPayoff,
		domain.ErrUnsupportedPayoff,
		domain.ErrInvalidLegParams,
		application.ErrInvalidPayoffGrid,
	} {
		if errors.Is(err, bad) {
			return http.StatusBadRequest
		}
	}
	return pricinghttp.StatusForPricingError(err)
}
