package models

import (
	"time"
)

// InventoryItem represents an item bought but not yet sold.
// Marking it as sold converts it into a completed Trade and removes the row.
type InventoryItem struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	UserID         uint         `gorm:"index;not null" json:"user_id"`
	ItemName       string       `gorm:"size:100;not null;index" json:"item_name"`
	Category       Category     `gorm:"size:20;not null" json:"category"`
	PricePaid      int64        `gorm:"not null;default:0" json:"price_paid"`
	LowestBin      int64        `gorm:"not null;default:0" json:"lowest_bin"`
	CraftCost      int64        `gorm:"not null;default:0" json:"craft_cost"`
	AhAverageValue int64        `gorm:"not null;default:0" json:"ah_average_value"`
	LowballBasis   LowballBasis `gorm:"size:20;not null;default:'lowest_bin'" json:"lowball_basis"`
	LowballPercent float64      `gorm:"not null;default:0" json:"lowball_percent"`
	DatePurchased  time.Time    `gorm:"index;not null" json:"date_purchased"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// LowballBasisValue returns the coin amount selected by the lowball basis
func (i *InventoryItem) LowballBasisValue() int64 {
	if i.LowballBasis == LowballBasisCraftCost {
		return i.CraftCost
	}
	return i.LowestBin
}
