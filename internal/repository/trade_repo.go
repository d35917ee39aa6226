package repository

import (
	"errors"
	"time"

	"github.com/lowball-ledger/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
)

// TradeRepository handles trade data access
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create creates a new trade
func (r *TradeRepository) Create(trade *models.Trade) error {
	return r.db.Create(trade).Error
}

// CreateBatch creates multiple trades in one insert
func (r *TradeRepository) CreateBatch(trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	return r.db.Create(&trades).Error
}

// GetByID retrieves a trade by ID, scoped to its owner
func (r *TradeRepository) GetByID(userID uint, id string) (*models.Trade, error) {
	var trade models.Trade
	result := r.db.Where("user_id = ? AND id = ?", userID, id).First(&trade)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, result.Error
	}
	return &trade, nil
}

// GetByUserID retrieves all trades for a user, newest first
func (r *TradeRepository) GetByUserID(userID uint) ([]models.Trade, error) {
	var trades []models.Trade
	result := r.db.Where("user_id = ?", userID).Order("date_time DESC").Find(&trades)
	return trades, result.Error
}

// GetByUserIDPaginated retrieves trades with pagination
func (r *TradeRepository) GetByUserIDPaginated(userID uint, page, pageSize int) ([]models.Trade, int64, error) {
	var trades []models.Trade
	var total int64

	if err := r.db.Model(&models.Trade{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.db.Where("user_id = ?", userID).
		Order("date_time DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&trades)

	return trades, total, result.Error
}

// GetByItemName retrieves a user's trades for one item, case-insensitive
func (r *TradeRepository) GetByItemName(userID uint, itemName string) ([]models.Trade, error) {
	var trades []models.Trade
	result := r.db.Where("user_id = ? AND LOWER(item_name) = LOWER(?)", userID, itemName).
		Order("date_time DESC").
		Find(&trades)
	return trades, result.Error
}

// GetTradesAfter retrieves trades dated at or after a cutoff
func (r *TradeRepository) GetTradesAfter(userID uint, after time.Time) ([]models.Trade, error) {
	var trades []models.Trade
	result := r.db.Where("user_id = ? AND date_time >= ?", userID, after).
		Order("date_time DESC").
		Find(&trades)
	return trades, result.Error
}

// Update updates a trade
func (r *TradeRepository) Update(trade *models.Trade) error {
	return r.db.Save(trade).Error
}

// Delete removes a trade, scoped to its owner
func (r *TradeRepository) Delete(userID uint, id string) error {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.Trade{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTradeNotFound
	}
	return nil
}
