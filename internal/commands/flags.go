package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/piotrekio/mquery/internal/model"
)

// amountValue is a pflag.Value for a non-negative decimal threshold. A decimal
// comma is accepted as well as a point.
type amountValue struct {
	v *decimal.NullDecimal
}

var _ pflag.Value = amountValue{}

func (a amountValue) String() string {
	if a.v == nil || !a.v.Valid {
		return ""
	}
	return a.v.Decimal.String()
}

func (a amountValue) Set(s string) error {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return fmt.Errorf("%q is not a decimal number", s)
	}
	if d.IsNegative() {
		return fmt.Errorf("%s is negative; amounts are compared by absolute value", d)
	}
	*a.v = decimal.NewNullDecimal(d)
	return nil
}

func (a amountValue) Type() string { return "amount" }

// dateValue is a pflag.Value for a YYYY-MM-DD date.
type dateValue struct {
	v **model.Date
}

var _ pflag.Value = dateValue{}

func (d dateValue) String() string {
	if d.v == nil || *d.v == nil {
		return ""
	}
	return (*d.v).String()
}

func (d dateValue) Set(s string) error {
	parsed, err := model.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d.v = &parsed
	return nil
}

func (d dateValue) Type() string { return "date" }
