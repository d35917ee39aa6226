package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lowball-ledger/internal/middleware"
	"github.com/lowball-ledger/internal/repository"
	"github.com/lowball-ledger/internal/service"
	"github.com/lowball-ledger/pkg/response"
)

// InventoryHandler handles inventory API requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// ListItems returns the user's held items
// GET /api/v1/inventory
func (h *InventoryHandler) ListItems(c *gin.Context) {
	userID := middleware.GetUserID(c)

	items, err := h.inventoryService.ListItems(userID)
	if err != nil {
		response.InternalError(c, "failed to list inventory")
		return
	}

	response.Success(c, items)
}

// AddItem records a purchase
// POST /api/v1/inventory
func (h *InventoryHandler) AddItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventoryService.AddItem(userID, &req)
	if err != nil {
		h.handleInventoryError(c, err)
		return
	}

	response.Created(c, item)
}

// DeleteItem removes a held item without a sale
// DELETE /api/v1/inventory/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.inventoryService.DeleteItem(userID, c.Param("id")); err != nil {
		h.handleInventoryError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// MarkAsSold converts a held item into a completed trade
// POST /api/v1/inventory/:id/sell
func (h *InventoryHandler) MarkAsSold(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.inventoryService.MarkAsSold(userID, c.Param("id"), &req)
	if err != nil {
		h.handleInventoryError(c, err)
		return
	}

	response.Created(c, trade)
}

// Summary returns the held-items KPIs
// GET /api/v1/inventory/summary
func (h *InventoryHandler) Summary(c *gin.Context) {
	userID := middleware.GetUserID(c)

	summary, err := h.inventoryService.Summary(userID)
	if err != nil {
		response.InternalError(c, "failed to compute inventory summary")
		return
	}

	response.Success(c, summary)
}

// RefreshPrices re-pulls current lowest BINs for the user's held items
// POST /api/v1/inventory/refresh
func (h *InventoryHandler) RefreshPrices(c *gin.Context) {
	userID := middleware.GetUserID(c)

	updated, err := h.inventoryService.RefreshPrices(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "failed to refresh prices")
		return
	}

	response.Success(c, gin.H{"updated": updated})
}

func (h *InventoryHandler) handleInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInventoryItemNotFound):
		response.NotFound(c, "inventory item not found")
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidCostBasis),
		errors.Is(err, service.ErrInvalidLowballBasis),
		errors.Is(err, service.ErrMissingPurchaseFigures),
		errors.Is(err, service.ErrMissingSaleFigures),
		errors.Is(err, service.ErrNegativeAmount):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "inventory operation failed")
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	inventory := rg.Group("/inventory")
	inventory.Use(authMiddleware)
	{
		inventory.GET("", h.ListItems)
		inventory.POST("", h.AddItem)
		inventory.GET("/summary", h.Summary)
		inventory.POST("/refresh", h.RefreshPrices)
		inventory.POST("/:id/sell", h.MarkAsSold)
		inventory.DELETE("/:id", h.DeleteItem)
	}
}
