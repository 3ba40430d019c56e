package history

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/piotrekio/mquery/internal/model"
)

// ErrInvalidFilterValue is returned for a criterion that can never be satisfied
// sensibly, such as a negative amount threshold.
var ErrInvalidFilterValue = errors.New("invalid filter value")

// Predicate reports whether an entry should be kept.
type Predicate func(model.Entry) bool

// Criteria holds the optional filters applied to a history. Every criterion that
// is set must match for an entry to be kept.
//
// An empty string or a zero amount threshold counts as unset, so an explicit
// --amount-from 0 does nothing.
type Criteria struct {
	AmountFrom  decimal.NullDecimal // abs(amount) >= AmountFrom
	AmountTo    decimal.NullDecimal // abs(amount) <= AmountTo
	Category    string              // case-insensitive substring
	Currency    string              // exact match
	DateFrom    *model.Date         // inclusive
	DateTo      *model.Date         // inclusive
	Description string              // case-insensitive substring
}

// Validate rejects negative amount thresholds.
func (c Criteria) Validate() error {
	if c.AmountFrom.Valid && c.AmountFrom.Decimal.IsNegative() {
		return fmt.Errorf("%w: amount-from %s is negative", ErrInvalidFilterValue, c.AmountFrom.Decimal)
	}
	if c.AmountTo.Valid && c.AmountTo.Decimal.IsNegative() {
		return fmt.Errorf("%w: amount-to %s is negative", ErrInvalidFilterValue, c.AmountTo.Decimal)
	}
	return nil
}

// IsEmpty reports whether no criterion is active.
func (c Criteria) IsEmpty() bool {
	return len(c.Predicates()) == 0
}

// Predicates returns one predicate per active criterion.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate

	if isSet(c.AmountFrom) {
		from := c.AmountFrom.Decimal
		preds = append(preds, func(e model.Entry) bool {
			return e.Amount.Abs().GreaterThanOrEqual(from)
		})
	}
	if isSet(c.AmountTo) {
		to := c.AmountTo.Decimal
		preds = append(preds, func(e model.Entry) bool {
			return e.Amount.Abs().LessThanOrEqual(to)
		})
	}
	if c.Category != "" {
		preds = append(preds, containsFold(func(e model.Entry) string { return e.Category }, c.Category))
	}
	if c.Currency != "" {
		currency := c.Currency
		preds = append(preds, func(e model.Entry) bool {
			return e.Currency == currency
		})
	}
	if c.DateFrom != nil && !c.DateFrom.IsZero() {
		from := *c.DateFrom
		preds = append(preds, func(e model.Entry) bool {
			return !e.Date.Before(from)
		})
	}
	if c.DateTo != nil && !c.DateTo.IsZero() {
		to := *c.DateTo
		preds = append(preds, func(e model.Entry) bool {
			return !e.Date.After(to)
		})
	}
	if c.Description != "" {
		preds = append(preds, containsFold(func(e model.Entry) string { return e.Description }, c.Description))
	}

	return preds
}

// Filter returns the entries matching all criteria, in their original order.
func Filter(entries []model.Entry, c Criteria) []model.Entry {
	preds := c.Predicates()

	result := make([]model.Entry, 0, len(entries))
next:
	for _, e := range entries {
		for _, p := range preds {
			if !p(e) {
				continue next
			}
		}
		result = append(result, e)
	}
	return result
}

func isSet(d decimal.NullDecimal) bool {
	return d.Valid && !d.Decimal.IsZero()
}

func containsFold(field func(model.Entry) string, substr string) Predicate {
	fold := cases.Fold()
	needle := fold.String(substr)
	return func(e model.Entry) bool {
		return strings.Contains(fold.String(field(e)), needle)
	}
}
