package repository

import (
	"errors"

	"github.com/lowball-ledger/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
)

// InventoryRepository handles inventory item data access
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Create creates a new inventory item
func (r *InventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// GetByID retrieves an inventory item by ID, scoped to its owner
func (r *InventoryRepository) GetByID(userID uint, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	result := r.db.Where("user_id = ? AND id = ?", userID, id).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

// GetByUserID retrieves all inventory items for a user, newest first
func (r *InventoryRepository) GetByUserID(userID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	result := r.db.Where("user_id = ?", userID).Order("date_purchased DESC").Find(&items)
	return items, result.Error
}

// DistinctItemNames lists the distinct item names currently held, across all
// users. Used by the price refresh worker.
func (r *InventoryRepository) DistinctItemNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.InventoryItem{}).
		Distinct("item_name").
		Pluck("item_name", &names).Error
	return names, err
}

// Update updates an inventory item
func (r *InventoryRepository) Update(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// Delete removes an inventory item, scoped to its owner
func (r *InventoryRepository) Delete(userID uint, id string) error {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInventoryItemNotFound
	}
	return nil
}

// ConvertToTrade atomically inserts the completed trade and removes the
// inventory row it came from.
func (r *InventoryRepository) ConvertToTrade(item *models.InventoryItem, trade *models.Trade) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trade).Error; err != nil {
			return err
		}
		result := tx.Where("user_id = ? AND id = ?", item.UserID, item.ID).Delete(&models.InventoryItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInventoryItemNotFound
		}
		return nil
	})
}
