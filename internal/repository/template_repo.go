package repository

import (
	"errors"

	"github.com/lowball-ledger/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
)

// TemplateRepository handles trade template data access
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create creates a new template
func (r *TemplateRepository) Create(tmpl *models.TradeTemplate) error {
	return r.db.Create(tmpl).Error
}

// GetByUserID retrieves all templates for a user
func (r *TemplateRepository) GetByUserID(userID uint) ([]models.TradeTemplate, error) {
	var templates []models.TradeTemplate
	result := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&templates)
	return templates, result.Error
}

// GetByID retrieves a template by ID, scoped to its owner
func (r *TemplateRepository) GetByID(userID uint, id string) (*models.TradeTemplate, error) {
	var tmpl models.TradeTemplate
	result := r.db.Where("user_id = ? AND id = ?", userID, id).First(&tmpl)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, result.Error
	}
	return &tmpl, nil
}

// Delete removes a template, scoped to its owner
func (r *TemplateRepository) Delete(userID uint, id string) error {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.TradeTemplate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
