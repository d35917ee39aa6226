package service

import (
	"errors"
	"time"

	"github.com/lowball-ledger/internal/models"
	"github.com/lowball-ledger/internal/repository"
	"github.com/lowball-ledger/internal/stats"
	"github.com/lowball-ledger/internal/valuation"
	"github.com/lowball-ledger/pkg/coins"
)

var (
	ErrMissingOpportunityFigures = errors.New("current, buy and sell prices must be positive")
)

// StatsService serves derived metrics over a user's trades. All aggregation
// is recomputed from the stored collection on each call; stored per-trade
// profit figures are never re-derived here.
type StatsService struct {
	tradeRepo     *repository.TradeRepository
	inventoryRepo *repository.InventoryRepository
	goalsRepo     *repository.GoalsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	tradeRepo *repository.TradeRepository,
	inventoryRepo *repository.InventoryRepository,
	goalsRepo *repository.GoalsRepository,
) *StatsService {
	return &StatsService{
		tradeRepo:     tradeRepo,
		inventoryRepo: inventoryRepo,
		goalsRepo:     goalsRepo,
	}
}

// Metrics returns the sliding-window profit sums
func (s *StatsService) Metrics(userID uint, now time.Time) (*stats.ProfitMetrics, error) {
	trades, err := s.tradeRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	m := stats.MetricsFor(trades, now)
	return &m, nil
}

// Leaderboard returns the per-item profit ranking, optionally truncated
func (s *StatsService) Leaderboard(userID uint, limit int) ([]stats.LeaderboardItem, error) {
	trades, err := s.tradeRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return stats.TopN(stats.LeaderboardFor(trades), limit), nil
}

// ItemHistory returns a user's trades for one item name, newest first
func (s *StatsService) ItemHistory(userID uint, itemName string) ([]models.Trade, error) {
	return s.tradeRepo.GetByItemName(userID, itemName)
}

// Series returns a time-bucketed profit series over the trailing range
func (s *StatsService) Series(userID uint, g stats.Granularity, rangeDays int, now time.Time) ([]stats.Bucket, error) {
	trades, err := s.tradesInRange(userID, rangeDays, now)
	if err != nil {
		return nil, err
	}
	return stats.BucketBy(trades, g), nil
}

// Categories returns per-category profit over the trailing range
func (s *StatsService) Categories(userID uint, rangeDays int, now time.Time) ([]stats.CategoryProfit, error) {
	trades, err := s.tradesInRange(userID, rangeDays, now)
	if err != nil {
		return nil, err
	}
	return stats.CategoryBreakdown(trades), nil
}

// Averages returns per-trade means over the trailing range
func (s *StatsService) Averages(userID uint, rangeDays int, now time.Time) (*stats.TradeAverages, error) {
	trades, err := s.tradesInRange(userID, rangeDays, now)
	if err != nil {
		return nil, err
	}
	a := stats.AveragesFor(trades)
	return &a, nil
}

// CashFlow returns the per-day money in/out series for the trailing days
func (s *StatsService) CashFlow(userID uint, days int, now time.Time) ([]stats.DayCashFlow, error) {
	trades, err := s.tradeRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	inventory, err := s.inventoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return stats.CashFlowFor(trades, inventory, now, days), nil
}

// Calendar returns the per-day profit/loss grid for a calendar month
func (s *StatsService) Calendar(userID uint, year int, month time.Month) ([]stats.CalendarDay, error) {
	trades, err := s.tradeRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return stats.CalendarFor(trades, year, month, time.UTC), nil
}

// OpportunityRequest carries a prospective flip's figures.
// Price fields accept the same shorthand as trade entry.
type OpportunityRequest struct {
	CurrentPrice    string `json:"current_price" binding:"required"`
	TargetBuyPrice  string `json:"target_buy_price" binding:"required"`
	TargetSellPrice string `json:"target_sell_price" binding:"required"`
	EstimatedDays   int    `json:"estimated_days"`
}

// EvaluateOpportunity scores a prospective flip before any coins move.
// Stateless; nothing is persisted.
func (s *StatsService) EvaluateOpportunity(req *OpportunityRequest) (*valuation.OpportunityResult, error) {
	current := coins.Parse(req.CurrentPrice)
	buy := coins.Parse(req.TargetBuyPrice)
	sell := coins.Parse(req.TargetSellPrice)
	if current <= 0 || buy <= 0 || sell <= 0 {
		return nil, ErrMissingOpportunityFigures
	}

	result := valuation.Opportunity(buy, sell, req.EstimatedDays)
	return &result, nil
}

// GoalProgress pairs a goal with its current metric
type GoalProgress struct {
	Goal     int64   `json:"goal"`
	Current  int64   `json:"current"`
	Progress float64 `json:"progress"`
}

// GoalsWithProgress holds a user's goals and their progress per window
type GoalsWithProgress struct {
	Goals   models.ProfitGoals `json:"goals"`
	Daily   GoalProgress       `json:"daily"`
	Weekly  GoalProgress       `json:"weekly"`
	Monthly GoalProgress       `json:"monthly"`
}

// Goals returns the user's profit goals with progress against the current
// sliding-window metrics. Progress is capped at 100%.
func (s *StatsService) Goals(userID uint, now time.Time) (*GoalsWithProgress, error) {
	goals, err := s.goalsRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	metrics, err := s.Metrics(userID, now)
	if err != nil {
		return nil, err
	}

	return &GoalsWithProgress{
		Goals:   *goals,
		Daily:   progressFor(metrics.Daily, goals.Daily),
		Weekly:  progressFor(metrics.Weekly, goals.Weekly),
		Monthly: progressFor(metrics.Monthly, goals.Monthly),
	}, nil
}

// UpdateGoals replaces the user's profit targets
func (s *StatsService) UpdateGoals(userID uint, daily, weekly, monthly int64) (*models.ProfitGoals, error) {
	goals, err := s.goalsRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	goals.Daily = daily
	goals.Weekly = weekly
	goals.Monthly = monthly
	if err := s.goalsRepo.Update(goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func progressFor(current, goal int64) GoalProgress {
	p := GoalProgress{Goal: goal, Current: current}
	if goal > 0 {
		p.Progress = float64(current) / float64(goal) * 100
		if p.Progress > 100 {
			p.Progress = 100
		}
		if p.Progress < 0 {
			p.Progress = 0
		}
	}
	return p
}

func (s *StatsService) tradesInRange(userID uint, rangeDays int, now time.Time) ([]models.Trade, error) {
	if rangeDays <= 0 {
		return s.tradeRepo.GetByUserID(userID)
	}
	cutoff := now.AddDate(0, 0, -rangeDays)
	return s.tradeRepo.GetTradesAfter(userID, cutoff)
}
