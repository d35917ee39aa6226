package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lowball-ledger/internal/middleware"
	"github.com/lowball-ledger/internal/repository"
	"github.com/lowball-ledger/internal/service"
	"github.com/lowball-ledger/pkg/response"
)

// TradeHandler handles trade API requests
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// ListTrades returns the user's trades, paginated
// GET /api/v1/trades?page=1&page_size=50
func (h *TradeHandler) ListTrades(c *gin.Context) {
	userID := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	trades, total, err := h.tradeService.ListTrades(userID, page, pageSize)
	if err != nil {
		response.InternalError(c, "failed to list trades")
		return
	}

	response.SuccessPaginated(c, trades, total, page, pageSize)
}

// GetTrade returns one trade
// GET /api/v1/trades/:id
func (h *TradeHandler) GetTrade(c *gin.Context) {
	userID := middleware.GetUserID(c)

	trade, err := h.tradeService.GetTrade(userID, c.Param("id"))
	if err != nil {
		h.handleTradeError(c, err)
		return
	}

	response.Success(c, trade)
}

// CreateTrade records a completed trade
// POST /api/v1/trades
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.CreateTrade(userID, &req)
	if err != nil {
		h.handleTradeError(c, err)
		return
	}

	response.Created(c, trade)
}

// UpdateTrade edits a trade, recomputing its derived figures
// PUT /api/v1/trades/:id
func (h *TradeHandler) UpdateTrade(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.UpdateTrade(userID, c.Param("id"), &req)
	if err != nil {
		h.handleTradeError(c, err)
		return
	}

	response.Success(c, trade)
}

// DeleteTrade removes a trade
// DELETE /api/v1/trades/:id
func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.tradeService.DeleteTrade(userID, c.Param("id")); err != nil {
		h.handleTradeError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ImportTrades bulk-creates trades from an uploaded CSV file
// POST /api/v1/trades/import (multipart field "file")
func (h *TradeHandler) ImportTrades(c *gin.Context) {
	userID := middleware.GetUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing csv file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.tradeService.ImportCSV(userID, file)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("csv parse failed: %v", err))
		return
	}

	response.Success(c, result)
}

// ExportTrades streams the user's trades as CSV
// GET /api/v1/trades/export
func (h *TradeHandler) ExportTrades(c *gin.Context) {
	userID := middleware.GetUserID(c)

	filename := fmt.Sprintf("trades-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := h.tradeService.ExportCSV(userID, c.Writer); err != nil {
		response.InternalError(c, "failed to export trades")
		return
	}
}

func (h *TradeHandler) handleTradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrTradeNotFound):
		response.NotFound(c, "trade not found")
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidCostBasis),
		errors.Is(err, service.ErrInvalidLowballBasis),
		errors.Is(err, service.ErrMissingSaleFigures),
		errors.Is(err, service.ErrNegativeAmount):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "trade operation failed")
	}
}

// RegisterRoutes registers trade routes
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	trades := rg.Group("/trades")
	trades.Use(authMiddleware)
	{
		trades.GET("", h.ListTrades)
		trades.POST("", h.CreateTrade)
		trades.POST("/import", h.ImportTrades)
		trades.GET("/export", h.ExportTrades)
		trades.GET("/:id", h.GetTrade)
		trades.PUT("/:id", h.UpdateTrade)
		trades.DELETE("/:id", h.DeleteTrade)
	}
}
