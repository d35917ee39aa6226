package service

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lowball-ledger/internal/models"
	"github.com/lowball-ledger/internal/repository"
	"github.com/lowball-ledger/internal/valuation"
	"github.com/lowball-ledger/pkg/coins"
)

var (
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidCostBasis    = errors.New("invalid cost basis")
	ErrInvalidLowballBasis = errors.New("invalid lowball basis")
	ErrMissingSaleFigures  = errors.New("sold price and cost basis value must be positive")
	ErrNegativeAmount      = errors.New("price fields must not be negative")
)

// Notifier is told when a user's trade collection changed, so live dashboard
// clients can refresh.
type Notifier interface {
	NotifyTradesChanged(userID uint)
}

// TradeService handles trade CRUD and applies the valuation engine to every
// write. Derived fields (tax, profit, lowball percent) are computed here and
// stored; they are never recomputed on read.
type TradeService struct {
	tradeRepo *repository.TradeRepository
	notifier  Notifier
}

// NewTradeService creates a new TradeService
func NewTradeService(tradeRepo *repository.TradeRepository) *TradeService {
	return &TradeService{tradeRepo: tradeRepo}
}

// SetNotifier wires the change notifier. Optional.
func (s *TradeService) SetNotifier(n Notifier) {
	s.notifier = n
}

// TradeRequest carries the raw figures for creating or editing a trade.
// Price fields accept shorthand ("1.5b", "250k") or plain numbers; malformed
// values parse to zero.
type TradeRequest struct {
	ItemName       string     `json:"item_name" binding:"required"`
	Category       string     `json:"category" binding:"required"`
	LowestBin      string     `json:"lowest_bin"`
	CraftCost      string     `json:"craft_cost"`
	PricePaid      string     `json:"price_paid"`
	AhAverageValue string     `json:"ah_average_value"`
	SoldPrice      string     `json:"sold_price" binding:"required"`
	CostBasis      string     `json:"cost_basis"`
	LowballBasis   string     `json:"lowball_basis"`
	DateTime       *time.Time `json:"date_time"`
	DateSold       *time.Time `json:"date_sold"`
}

// CreateTrade validates the request, runs the valuation engine and persists
// the completed trade.
func (s *TradeService) CreateTrade(userID uint, req *TradeRequest) (*models.Trade, error) {
	trade, err := s.buildTrade(userID, req)
	if err != nil {
		return nil, err
	}
	trade.ID = uuid.NewString()

	if err := s.tradeRepo.Create(trade); err != nil {
		return nil, err
	}
	s.notifyChanged(userID)
	return trade, nil
}

// UpdateTrade re-runs the valuation engine over the edited figures so the
// stored tax and profit stay consistent with the sold price and cost basis.
func (s *TradeService) UpdateTrade(userID uint, id string, req *TradeRequest) (*models.Trade, error) {
	existing, err := s.tradeRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.buildTrade(userID, req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.tradeRepo.Update(updated); err != nil {
		return nil, err
	}
	s.notifyChanged(userID)
	return updated, nil
}

// GetTrade retrieves one trade
func (s *TradeService) GetTrade(userID uint, id string) (*models.Trade, error) {
	return s.tradeRepo.GetByID(userID, id)
}

// ListTrades retrieves a user's trades with pagination
func (s *TradeService) ListTrades(userID uint, page, pageSize int) ([]models.Trade, int64, error) {
	return s.tradeRepo.GetByUserIDPaginated(userID, page, pageSize)
}

// DeleteTrade removes a trade
func (s *TradeService) DeleteTrade(userID uint, id string) error {
	if err := s.tradeRepo.Delete(userID, id); err != nil {
		return err
	}
	s.notifyChanged(userID)
	return nil
}

// buildTrade turns raw request figures into a fully valued trade record
func (s *TradeService) buildTrade(userID uint, req *TradeRequest) (*models.Trade, error) {
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

	trade := &models.Trade{
		UserID:         userID,
		ItemName:       req.ItemName,
		Category:       category,
		LowestBin:      coins.Parse(req.LowestBin),
		CraftCost:      coins.Parse(req.CraftCost),
		PricePaid:      coins.Parse(req.PricePaid),
		AhAverageValue: coins.Parse(req.AhAverageValue),
		SoldPrice:      coins.Parse(req.SoldPrice),
		CostBasis:      costBasis,
		LowballBasis:   lowballBasis,
		Status:         models.TradeStatusCompleted,
	}

	if req.DateTime != nil {
		trade.DateTime = *req.DateTime
	} else {
		trade.DateTime = time.Now()
	}
	if req.DateSold != nil {
		trade.DateSold = req.DateSold
	} else {
		sold := trade.DateTime
		trade.DateSold = &sold
	}

	// Coin amounts are non-negative; shorthand like "-5m" parses but is
	// never a valid price
	for _, v := range []int64{trade.LowestBin, trade.CraftCost, trade.PricePaid, trade.AhAverageValue, trade.SoldPrice} {
		if v < 0 {
			return nil, ErrNegativeAmount
		}
	}

	costValue := trade.CostBasisValue()
	if trade.SoldPrice <= 0 || costValue <= 0 {
		return nil, ErrMissingSaleFigures
	}

	result := valuation.Profit(trade.SoldPrice, costValue)
	trade.TaxPercent = result.TaxPercent
	trade.TaxAmount = result.TaxAmount
	trade.NetProfit = result.NetProfit
	trade.LowballPercent = math.Round(valuation.LowballPercent(trade.PricePaid, trade.LowballBasisValue()))

	return trade, nil
}

func (s *TradeService) notifyChanged(userID uint) {
	if s.notifier != nil {
		s.notifier.NotifyTradesChanged(userID)
	}
}
