package service

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/lowball-ledger/internal/models"
)

// tradeCSVRow is the import/export row format for bulk trade entry.
// Price columns accept the same shorthand as the API ("1.5b", "250k").
type tradeCSVRow struct {
	ItemName       string `csv:"item_name"`
	Category       string `csv:"category"`
	LowestBin      string `csv:"lowest_bin"`
	CraftCost      string `csv:"craft_cost"`
	PricePaid      string `csv:"price_paid"`
	AhAverageValue string `csv:"ah_average_value"`
	SoldPrice      string `csv:"sold_price"`
	CostBasis      string `csv:"cost_basis"`
	LowballBasis   string `csv:"lowball_basis"`
	DateTime       string `csv:"date_time"`
}

// ImportResult reports the outcome of a CSV import
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportCSV reads trade rows from r and creates them through the same
// valuation path as single-trade creation. Rows that fail validation are
// skipped and reported, not fatal.
func (s *TradeService) ImportCSV(userID uint, r io.Reader) (*ImportResult, error) {
	var rows []tradeCSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	var trades []models.Trade

	for i, row := range rows {
		req := &TradeRequest{
			ItemName:       row.ItemName,
			Category:       row.Category,
			LowestBin:      row.LowestBin,
			CraftCost:      row.CraftCost,
			PricePaid:      row.PricePaid,
			AhAverageValue: row.AhAverageValue,
			SoldPrice:      row.SoldPrice,
			CostBasis:      row.CostBasis,
			LowballBasis:   row.LowballBasis,
		}
		if row.DateTime != "" {
			ts, err := time.Parse(time.RFC3339, row.DateTime)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid date_time %q", i+1, row.DateTime))
				continue
			}
			req.DateTime = &ts
		}
		if req.ItemName == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing item name", i+1))
			continue
		}

		trade, err := s.buildTrade(userID, req)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		trade.ID = uuid.NewString()
		trades = append(trades, *trade)
	}

	if err := s.tradeRepo.CreateBatch(trades); err != nil {
		return nil, err
	}
	result.Imported = len(trades)
	if result.Imported > 0 {
		s.notifyChanged(userID)
	}
	return result, nil
}

// ExportCSV writes all of a user's trades to w as CSV
func (s *TradeService) ExportCSV(userID uint, w io.Writer) error {
	trades, err := s.tradeRepo.GetByUserID(userID)
	if err != nil {
		return err
	}

	rows := make([]tradeCSVRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, tradeCSVRow{
			ItemName:       t.ItemName,
			Category:       string(t.Category),
			LowestBin:      formatCoins(t.LowestBin),
			CraftCost:      formatCoins(t.CraftCost),
			PricePaid:      formatCoins(t.PricePaid),
			AhAverageValue: formatCoins(t.AhAverageValue),
			SoldPrice:      formatCoins(t.SoldPrice),
			CostBasis:      string(t.CostBasis),
			LowballBasis:   string(t.LowballBasis),
			DateTime:       t.DateTime.Format(time.RFC3339),
		})
	}

	return gocsv.Marshal(&rows, w)
}

// formatCoins renders an exact integer for export. Shorthand is display-only
// and lossy, so exports keep full precision to survive re-import.
func formatCoins(v int64) string {
	return fmt.Sprintf("%d", v)
}
