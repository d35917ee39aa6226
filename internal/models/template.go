package models

import (
	"time"
)

// TradeTemplate stores a reusable pre-fill for frequently flipped items
type TradeTemplate struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	UserID       uint         `gorm:"index;not null" json:"user_id"`
	Name         string       `gorm:"size:100;not null" json:"name"`
	ItemName     string       `gorm:"size:100;not null" json:"item_name"`
	Category     Category     `gorm:"size:20;not null" json:"category"`
	CostBasis    CostBasis    `gorm:"size:20;not null;default:'lowest_bin'" json:"cost_basis"`
	LowballBasis LowballBasis `gorm:"size:20;not null;default:'lowest_bin'" json:"lowball_basis"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for TradeTemplate model
func (TradeTemplate) TableName() string {
	return "trade_templates"
}
