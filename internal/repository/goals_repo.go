package repository

import (
	"errors"

	"github.com/lowball-ledger/internal/models"
	"gorm.io/gorm"
)

// GoalsRepository handles profit goals data access
type GoalsRepository struct {
	db *gorm.DB
}

// NewGoalsRepository creates a new GoalsRepository
func NewGoalsRepository(db *gorm.DB) *GoalsRepository {
	return &GoalsRepository{db: db}
}

// GetByUserID retrieves the goals row for a user, creating a zeroed row on
// first access so every user always has one.
func (r *GoalsRepository) GetByUserID(userID uint) (*models.ProfitGoals, error) {
	var goals models.ProfitGoals
	result := r.db.Where("user_id = ?", userID).First(&goals)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			goals = models.ProfitGoals{UserID: userID}
			if err := r.db.Create(&goals).Error; err != nil {
				return nil, err
			}
			return &goals, nil
		}
		return nil, result.Error
	}
	return &goals, nil
}

// Update updates a goals row
func (r *GoalsRepository) Update(goals *models.ProfitGoals) error {
	return r.db.Save(goals).Error
}
