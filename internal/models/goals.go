package models

import (
	"time"
)

// ProfitGoals holds a user's profit targets per window
type ProfitGoals struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Daily     int64     `gorm:"not null;default:0" json:"daily"`
	Weekly    int64     `gorm:"not null;default:0" json:"weekly"`
	Monthly   int64     `gorm:"not null;default:0" json:"monthly"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for ProfitGoals model
func (ProfitGoals) TableName() string {
	return "profit_goals"
}
