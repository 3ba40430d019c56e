package history

import (
	"github.com/shopspring/decimal"

	"github.com/piotrekio/mquery/internal/model"
)

// Summary totals the entries of one currency.
type Summary struct {
	Currency string
	Income   decimal.Decimal // sum of positive amounts
	Expenses decimal.Decimal // sum of zero and negative amounts
	Count    int
}

// Balance returns Income + Expenses.
func (s Summary) Balance() decimal.Decimal {
	return s.Income.Add(s.Expenses)
}

// Summarize totals the entries whose currency is exactly currency.
func Summarize(entries []model.Entry, currency string) Summary {
	s := Summary{Currency: currency, Income: decimal.Zero, Expenses: decimal.Zero}
	for _, e := range entries {
		if e.Currency != currency {
			continue
		}
		s.Count++
		if e.IsIncome() {
			s.Income = s.Income.Add(e.Amount)
		} else {
			s.Expenses = s.Expenses.Add(e.Amount)
		}
	}
	return s
}
