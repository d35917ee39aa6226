package service

import (
	"github.com/google/uuid"
	"github.com/lowball-ledger/internal/models"
	"github.com/lowball-ledger/internal/repository"
)

// TemplateService handles reusable trade pre-fills
type TemplateService struct {
	templateRepo *repository.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo *repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// TemplateRequest carries a new template's fields
type TemplateRequest struct {
	Name         string `json:"name" binding:"required"`
	ItemName     string `json:"item_name" binding:"required"`
	Category     string `json:"category" binding:"required"`
	CostBasis    string `json:"cost_basis"`
	LowballBasis string `json:"lowball_basis"`
}

// CreateTemplate validates and persists a template
func (s *TemplateService) CreateTemplate(userID uint, req *TemplateRequest) (*models.TradeTemplate, error) {
	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	costBasis := models.CostBasis(req.CostBasis)
	if req.CostBasis == "" {
		costBasis = models.CostBasisLowestBin
	} else if !costBasis.Valid() {
		return nil, ErrInvalidCostBasis
	}

	lowballBasis := models.LowballBasis(req.LowballBasis)
	if req.LowballBasis == "" {
		lowballBasis = models.LowballBasisLowestBin
	} else if !lowballBasis.Valid() {
		return nil, ErrInvalidLowballBasis
	}

	tmpl := &models.TradeTemplate{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		ItemName:     req.ItemName,
		Category:     category,
		CostBasis:    costBasis,
		LowballBasis: lowballBasis,
	}

	if err := s.templateRepo.Create(tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

// ListTemplates retrieves a user's templates
func (s *TemplateService) ListTemplates(userID uint) ([]models.TradeTemplate, error) {
	return s.templateRepo.GetByUserID(userID)
}

// DeleteTemplate removes a template
func (s *TemplateService) DeleteTemplate(userID uint, id string) error {
	return s.templateRepo.Delete(userID, id)
}
