package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lowball-ledger/internal/middleware"
	"github.com/lowball-ledger/internal/repository"
	"github.com/lowball-ledger/internal/service"
	"github.com/lowball-ledger/pkg/response"
)

// TemplateHandler handles trade template API requests
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// ListTemplates returns the user's templates
// GET /api/v1/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID := middleware.GetUserID(c)

	templates, err := h.templateService.ListTemplates(userID)
	if err != nil {
		response.InternalError(c, "failed to list templates")
		return
	}

	response.Success(c, templates)
}

// CreateTemplate saves a new template
// POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tmpl, err := h.templateService.CreateTemplate(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory),
			errors.Is(err, service.ErrInvalidCostBasis),
			errors.Is(err, service.ErrInvalidLowballBasis):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to create template")
		}
		return
	}

	response.Created(c, tmpl)
}

// DeleteTemplate removes a template
// DELETE /api/v1/templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.templateService.DeleteTemplate(userID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			response.NotFound(c, "template not found")
			return
		}
		response.InternalError(c, "failed to delete template")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// RegisterRoutes registers template routes
func (h *TemplateHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	templates := rg.Group("/templates")
	templates.Use(authMiddleware)
	{
		templates.GET("", h.ListTemplates)
		templates.POST("", h.CreateTemplate)
		templates.DELETE("/:id", h.DeleteTemplate)
	}
}
