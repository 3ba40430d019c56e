package model

import (
	"github.com/shopspring/decimal"
)

// Entry is one transaction parsed from a statement line.
type Entry struct {
	Date        Date
	Description string
	Category    string          // may be empty
	Amount      decimal.Decimal // negative = expense, positive = income
	Currency    string          // e.g. "PLN"
}

// IsIncome reports whether the entry increases the balance. Zero counts as an expense.
func (e Entry) IsIncome() bool {
	return e.Amount.IsPositive()
}

// Equal reports whether e and o hold the same values. Amounts are compared
// numerically, so 1.5 equals 1.50.
func (e Entry) Equal(o Entry) bool {
	return e.Date == o.Date &&
		e.Description == o.Description &&
		e.Category == o.Category &&
		e.Amount.Equal(o.Amount) &&
		e.Currency == o.Currency
}
