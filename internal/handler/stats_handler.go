package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lowball-ledger/internal/middleware"
	"github.com/lowball-ledger/internal/service"
	"github.com/lowball-ledger/internal/stats"
	"github.com/lowball-ledger/pkg/response"
)

// StatsHandler handles analytics and goals API requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Metrics returns the sliding-window profit sums
// GET /api/v1/stats/metrics
func (h *StatsHandler) Metrics(c *gin.Context) {
	userID := middleware.GetUserID(c)

	metrics, err := h.statsService.Metrics(userID, time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute metrics")
		return
	}

	response.Success(c, metrics)
}

// Leaderboard returns the per-item profit ranking
// GET /api/v1/stats/leaderboard?limit=10
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	leaderboard, err := h.statsService.Leaderboard(userID, limit)
	if err != nil {
		response.InternalError(c, "failed to compute leaderboard")
		return
	}

	response.Success(c, leaderboard)
}

// ItemHistory returns the user's trades for one item
// GET /api/v1/stats/leaderboard/:item
func (h *StatsHandler) ItemHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	trades, err := h.statsService.ItemHistory(userID, c.Param("item"))
	if err != nil {
		response.InternalError(c, "failed to load item history")
		return
	}

	response.Success(c, trades)
}

// Series returns a time-bucketed profit series
// GET /api/v1/stats/series?granularity=day&range=30
func (h *StatsHandler) Series(c *gin.Context) {
	userID := middleware.GetUserID(c)

	granularity := stats.Granularity(c.DefaultQuery("granularity", "day"))
	if !granularity.Valid() {
		response.BadRequest(c, "granularity must be day, week or month")
		return
	}
	rangeDays, _ := strconv.Atoi(c.DefaultQuery("range", "30"))

	buckets, err := h.statsService.Series(userID, granularity, rangeDays, time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute series")
		return
	}

	response.Success(c, buckets)
}

// Categories returns per-category profit totals
// GET /api/v1/stats/categories?range=30
func (h *StatsHandler) Categories(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rangeDays, _ := strconv.Atoi(c.DefaultQuery("range", "0"))

	breakdown, err := h.statsService.Categories(userID, rangeDays, time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute category breakdown")
		return
	}

	response.Success(c, breakdown)
}

// Averages returns per-trade means over the trailing range
// GET /api/v1/stats/averages?range=30
func (h *StatsHandler) Averages(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rangeDays, _ := strconv.Atoi(c.DefaultQuery("range", "30"))

	averages, err := h.statsService.Averages(userID, rangeDays, time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute averages")
		return
	}

	response.Success(c, averages)
}

// CashFlow returns the per-day money in/out series
// GET /api/v1/stats/cashflow?days=7
func (h *StatsHandler) CashFlow(c *gin.Context) {
	userID := middleware.GetUserID(c)

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	flow, err := h.statsService.CashFlow(userID, days, time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute cash flow")
		return
	}

	response.Success(c, flow)
}

// Calendar returns the per-day profit/loss grid for a month
// GET /api/v1/stats/calendar?year=2025&month=8
func (h *StatsHandler) Calendar(c *gin.Context) {
	userID := middleware.GetUserID(c)

	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	monthNum, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if monthNum < 1 || monthNum > 12 {
		response.BadRequest(c, "month must be between 1 and 12")
		return
	}

	days, err := h.statsService.Calendar(userID, year, time.Month(monthNum))
	if err != nil {
		response.InternalError(c, "failed to compute calendar")
		return
	}

	response.Success(c, days)
}

// Opportunity evaluates a prospective flip before any coins move
// POST /api/v1/stats/opportunity
func (h *StatsHandler) Opportunity(c *gin.Context) {
	var req service.OpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.statsService.EvaluateOpportunity(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetGoals returns the user's profit goals with progress
// GET /api/v1/goals
func (h *StatsHandler) GetGoals(c *gin.Context) {
	userID := middleware.GetUserID(c)

	goals, err := h.statsService.Goals(userID, time.Now())
	if err != nil {
		response.InternalError(c, "failed to load goals")
		return
	}

	response.Success(c, goals)
}

// UpdateGoals replaces the user's profit targets
// PUT /api/v1/goals
func (h *StatsHandler) UpdateGoals(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Daily   int64 `json:"daily" binding:"min=0"`
		Weekly  int64 `json:"weekly" binding:"min=0"`
		Monthly int64 `json:"monthly" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	goals, err := h.statsService.UpdateGoals(userID, req.Daily, req.Weekly, req.Monthly)
	if err != nil {
		response.InternalError(c, "failed to update goals")
		return
	}

	response.Success(c, goals)
}

// RegisterRoutes registers stats and goals routes
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	statsGroup := rg.Group("/stats")
	statsGroup.Use(authMiddleware)
	{
		statsGroup.GET("/metrics", h.Metrics)
		statsGroup.GET("/leaderboard", h.Leaderboard)
		statsGroup.GET("/leaderboard/:item", h.ItemHistory)
		statsGroup.GET("/series", h.Series)
		statsGroup.GET("/categories", h.Categories)
		statsGroup.GET("/averages", h.Averages)
		statsGroup.GET("/cashflow", h.CashFlow)
		statsGroup.GET("/calendar", h.Calendar)
		statsGroup.POST("/opportunity", h.Opportunity)
	}

	goals := rg.Group("/goals")
	goals.Use(authMiddleware)
	{
		goals.GET("", h.GetGoals)
		goals.PUT("", h.UpdateGoals)
	}
}
