package stats

import (
	"time"

	"github.com/lowball-ledger/internal/models"
)

// DayCashFlow is one day of money in vs money out
type DayCashFlow struct {
	Date     time.Time `json:"date"`
	MoneyIn  int64     `json:"money_in"`
	MoneyOut int64     `json:"money_out"`
	Net      int64     `json:"net"`
}

// CashFlowFor builds a per-day cash flow for the trailing days window ending
// at now. Money in is the sold price of trades sold that day; money out is
// the cost basis of those trades plus inventory purchases made that day.
func CashFlowFor(trades []models.Trade, inventory []models.InventoryItem, now time.Time, days int) []DayCashFlow {
	if days <= 0 {
		days = 7
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make([]DayCashFlow, days)
	index := make(map[time.Time]*DayCashFlow, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -(days - 1 - i))
		out[i] = DayCashFlow{Date: date}
		index[date] = &out[i]
	}

	for _, t := range trades {
		day := time.Date(t.DateTime.Year(), t.DateTime.Month(), t.DateTime.Day(), 0, 0, 0, 0, now.Location())
		d, ok := index[day]
		if !ok {
			continue
		}
		d.MoneyIn += t.SoldPrice
		d.MoneyOut += t.CostBasisValue()
	}

	for _, item := range inventory {
		day := time.Date(item.DatePurchased.Year(), item.DatePurchased.Month(), item.DatePurchased.Day(), 0, 0, 0, 0, now.Location())
		if d, ok := index[day]; ok {
			d.MoneyOut += item.PricePaid
		}
	}

	for i := range out {
		out[i].Net = out[i].MoneyIn - out[i].MoneyOut
	}
	return out
}

// CalendarDay is one day of the profit/loss calendar
type CalendarDay struct {
	Date       time.Time `json:"date"`
	NetProfit  int64     `json:"net_profit"`
	TradeCount int       `json:"trade_count"`
}

// CalendarFor returns one entry per day of the given calendar month with the
// net profit and trade count for that day. Days without trades are included
// with zero values so the calendar grid renders complete.
func CalendarFor(trades []models.Trade, year int, month time.Month, loc *time.Location) []CalendarDay {
	if loc == nil {
		loc = time.UTC
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	out := make([]CalendarDay, daysInMonth)
	for i := range out {
		out[i].Date = first.AddDate(0, 0, i)
	}

	for _, t := range trades {
		dt := t.DateTime.In(loc)
		if dt.Year() != year || dt.Month() != month {
			continue
		}
		d := &out[dt.Day()-1]
		d.NetProfit += t.NetProfit
		d.TradeCount++
	}
	return out
}
