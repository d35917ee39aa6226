package models

import (
	"time"
)

// Category represents the item category of a trade
type Category string

const (
	CategoryArmors        Category = "Armors"
	CategorySwords        Category = "Swords"
	CategoryBows          Category = "Bows"
	CategoryMageWeapons   Category = "Mage Weapons"
	CategorySkins         Category = "Skins"
	CategoryDyes          Category = "Dyes"
	CategoryAccessories   Category = "Accessories"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// Categories lists every valid item category
var Categories = []Category{
	CategoryArmors,
	CategorySwords,
	CategoryBows,
	CategoryMageWeapons,
	CategorySkins,
	CategoryDyes,
	CategoryAccessories,
	CategoryMiscellaneous,
}

// Valid reports whether the category is a known value
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// CostBasis selects which price field backs the profit calculation
type CostBasis string

const (
	CostBasisLowestBin CostBasis = "lowest_bin"
	CostBasisCraftCost CostBasis = "craft_cost"
	CostBasisPricePaid CostBasis = "price_paid"
)

// Valid reports whether the cost basis is a known value
func (b CostBasis) Valid() bool {
	return b == CostBasisLowestBin || b == CostBasisCraftCost || b == CostBasisPricePaid
}

// LowballBasis selects which price field backs the lowball percentage
type LowballBasis string

const (
	LowballBasisLowestBin LowballBasis = "lowest_bin"
	LowballBasisCraftCost LowballBasis = "craft_cost"
)

// Valid reports whether the lowball basis is a known value
func (b LowballBasis) Valid() bool {
	return b == LowballBasisLowestBin || b == LowballBasisCraftCost
}

// TradeStatus represents the lifecycle state of a trade record
type TradeStatus string

const (
	TradeStatusInventory TradeStatus = "inventory"
	TradeStatusCompleted TradeStatus = "completed"
)

// Trade represents a completed buy-then-sell cycle
type Trade struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	UserID         uint         `gorm:"index;not null" json:"user_id"`
	ItemName       string       `gorm:"size:100;not null;index" json:"item_name"`
	Category       Category     `gorm:"size:20;not null" json:"category"`
	LowestBin      int64        `gorm:"not null;default:0" json:"lowest_bin"`
	CraftCost      int64        `gorm:"not null;default:0" json:"craft_cost"`
	PricePaid      int64        `gorm:"not null;default:0" json:"price_paid"`
	AhAverageValue int64        `gorm:"not null;default:0" json:"ah_average_value"`
	SoldPrice      int64        `gorm:"not null;default:0" json:"sold_price"`
	CostBasis      CostBasis    `gorm:"size:20;not null;default:'lowest_bin'" json:"cost_basis"`
	LowballBasis   LowballBasis `gorm:"size:20;not null;default:'lowest_bin'" json:"lowball_basis"`
	LowballPercent float64      `gorm:"not null;default:0" json:"lowball_percent"`
	TaxPercent     float64      `gorm:"not null;default:0" json:"tax_percent"`
	TaxAmount      int64        `gorm:"not null;default:0" json:"tax_amount"`
	NetProfit      int64        `gorm:"not null;default:0;index" json:"net_profit"`
	Status         TradeStatus  `gorm:"size:20;not null;default:'completed'" json:"status"`
	DateTime       time.Time    `gorm:"index;not null" json:"date_time"`
	DateSold       *time.Time   `json:"date_sold,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}

// CostBasisValue returns the coin amount selected by the trade's cost basis
func (t *Trade) CostBasisValue() int64 {
	switch t.CostBasis {
	case CostBasisCraftCost:
		return t.CraftCost
	case CostBasisPricePaid:
		return t.PricePaid
	default:
		return t.LowestBin
	}
}

// LowballBasisValue returns the coin amount selected by the lowball basis
func (t *Trade) LowballBasisValue() int64 {
	if t.LowballBasis == LowballBasisCraftCost {
		return t.CraftCost
	}
	return t.LowestBin
}
