package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lowball-ledger/internal/models"
	"github.com/lowball-ledger/internal/repository"
	"github.com/lowball-ledger/internal/valuation"
	"github.com/lowball-ledger/pkg/coins"
)

// Listing fee charged when putting an item up for sale, applied to the
// unrealized profit estimate only. Actual sale tax uses the tiered schedule.
const listingFeePercent = 1.0

var (
	ErrMissingPurchaseFigures = errors.New("price paid must be positive")
)

// InventoryService handles items bought but not yet sold and their
// conversion into completed trades.
type InventoryService struct {
	inventoryRepo *repository.InventoryRepository
	tradeService  *TradeService
	priceService  *PriceService
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	inventoryRepo *repository.InventoryRepository,
	tradeService *TradeService,
	priceService *PriceService,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		tradeService:  tradeService,
		priceService:  priceService,
	}
}

// InventoryRequest carries the raw figures for a purchase entry
type InventoryRequest struct {
	ItemName       string     `json:"item_name" binding:"required"`
	Category       string     `json:"category" binding:"required"`
	PricePaid      string     `json:"price_paid" binding:"required"`
	LowestBin      string     `json:"lowest_bin"`
	CraftCost      string     `json:"craft_cost"`
	AhAverageValue string     `json:"ah_average_value"`
	LowballBasis   string     `json:"lowball_basis"`
	DatePurchased  *time.Time `json:"date_purchased"`
}

// AddItem validates and persists a purchase
func (s *InventoryService) AddItem(userID uint, req *InventoryRequest) (*models.InventoryItem, error) {
	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	lowballBasis := models.LowballBasis(req.LowballBasis)
	if req.LowballBasis == "" {
		lowballBasis = models.LowballBasisLowestBin
	} else if !lowballBasis.Valid() {
		return nil, ErrInvalidLowballBasis
	}

	item := &models.InventoryItem{
		ID:             uuid.NewString(),
		UserID:         userID,
		ItemName:       req.ItemName,
		Category:       category,
		PricePaid:      coins.Parse(req.PricePaid),
		LowestBin:      coins.Parse(req.LowestBin),
		CraftCost:      coins.Parse(req.CraftCost),
		AhAverageValue: coins.Parse(req.AhAverageValue),
		LowballBasis:   lowballBasis,
	}
	for _, v := range []int64{item.PricePaid, item.LowestBin, item.CraftCost, item.AhAverageValue} {
		if v < 0 {
			return nil, ErrNegativeAmount
		}
	}
	if item.PricePaid <= 0 {
		return nil, ErrMissingPurchaseFigures
	}

	if req.DatePurchased != nil {
		item.DatePurchased = *req.DatePurchased
	} else {
		item.DatePurchased = time.Now()
	}

	item.LowballPercent = math.Round(valuation.LowballPercent(item.PricePaid, item.LowballBasisValue()))

	if err := s.inventoryRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems retrieves a user's held items, newest purchase first
func (s *InventoryService) ListItems(userID uint) ([]models.InventoryItem, error) {
	return s.inventoryRepo.GetByUserID(userID)
}

// DeleteItem removes a held item without recording a sale
func (s *InventoryService) DeleteItem(userID uint, id string) error {
	return s.inventoryRepo.Delete(userID, id)
}

// SellRequest carries the sale figures for mark-as-sold
type SellRequest struct {
	SoldPrice string     `json:"sold_price" binding:"required"`
	CostBasis string     `json:"cost_basis"`
	DateSold  *time.Time `json:"date_sold"`
}

// MarkAsSold converts a held item into a completed trade. The trade is
// valued through the same engine as direct creation; the inventory row is
// removed in the same transaction as the trade insert.
func (s *InventoryService) MarkAsSold(userID uint, id string, req *SellRequest) (*models.Trade, error) {
	item, err := s.inventoryRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	costBasis := models.CostBasis(req.CostBasis)
	if req.CostBasis == "" {
		costBasis = models.CostBasisPricePaid
	} else if !costBasis.Valid() {
		return nil, ErrInvalidCostBasis
	}

	soldPrice := coins.Parse(req.SoldPrice)
	dateSold := time.Now()
	if req.DateSold != nil {
		dateSold = *req.DateSold
	}

	trade := &models.Trade{
		ID:             uuid.NewString(),
		UserID:         userID,
		ItemName:       item.ItemName,
		Category:       item.Category,
		LowestBin:      item.LowestBin,
		CraftCost:      item.CraftCost,
		PricePaid:      item.PricePaid,
		AhAverageValue: item.AhAverageValue,
		SoldPrice:      soldPrice,
		CostBasis:      costBasis,
		LowballBasis:   item.LowballBasis,
		LowballPercent: item.LowballPercent,
		Status:         models.TradeStatusCompleted,
		DateTime:       item.DatePurchased,
		DateSold:       &dateSold,
	}

	costValue := trade.CostBasisValue()
	if soldPrice <= 0 || costValue <= 0 {
		return nil, ErrMissingSaleFigures
	}

	result := valuation.Profit(soldPrice, costValue)
	trade.TaxPercent = result.TaxPercent
	trade.TaxAmount = result.TaxAmount
	trade.NetProfit = result.NetProfit

	if err := s.inventoryRepo.ConvertToTrade(item, trade); err != nil {
		return nil, err
	}
	s.tradeService.notifyChanged(userID)
	return trade, nil
}

// InventorySummary holds the held-items KPIs
type InventorySummary struct {
	TotalItems       int   `json:"total_items"`
	TotalCost        int64 `json:"total_cost"`
	MarketValue      int64 `json:"market_value"`
	UnrealizedProfit int64 `json:"unrealized_profit"`
}

// Summary computes the held-items KPIs. Unrealized profit is market value
// minus cost minus the flat listing fee on the would-be sale price.
func (s *InventoryService) Summary(userID uint) (*InventorySummary, error) {
	items, err := s.inventoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	summary := &InventorySummary{TotalItems: len(items)}
	for _, item := range items {
		summary.TotalCost += item.PricePaid
		summary.MarketValue += item.LowestBin

		fee := int64(math.Round(float64(item.LowestBin) * listingFeePercent / 100))
		summary.UnrealizedProfit += item.LowestBin - item.PricePaid - fee
	}
	return summary, nil
}

// RefreshPrices re-pulls current lowest BINs for a user's held items and
// recomputes their lowball percentages. Items without an available price are
// left unchanged. Returns how many items were updated.
func (s *InventoryService) RefreshPrices(ctx context.Context, userID uint) (int, error) {
	items, err := s.inventoryRepo.GetByUserID(userID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range items {
		item := &items[i]
		price, err := s.priceService.GetLowestBin(ctx, item.ItemName)
		if err != nil || price == item.LowestBin {
			continue
		}
		item.LowestBin = price
		item.LowballPercent = math.Round(valuation.LowballPercent(item.PricePaid, item.LowballBasisValue()))
		if err := s.inventoryRepo.Update(item); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
