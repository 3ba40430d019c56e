package history

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piotrekio/mquery/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func date(y, m, d int) model.Date {
	return model.MustDate(y, time.Month(m), d)
}

func datePtr(y, m, d int) *model.Date {
	dt := date(y, m, d)
	return &dt
}

var testHistory = []model.Entry{
	{Date: date(2020, 1, 10), Amount: dec("150.0"), Currency: "PLN", Category: "foo", Description: "lorem ipsum"},
	{Date: date(2020, 1, 9), Amount: dec("-100.0"), Currency: "PLN", Category: "foo", Description: "dolor ipsum"},
	{Date: date(2020, 1, 9), Amount: dec("-40.0"), Currency: "PLN", Category: "foo", Description: "dolor sit amet"},
	{Date: date(2020, 1, 8), Amount: dec("-150.0"), Currency: "PLN", Category: "bar", Description: "lorem ipsum"},
	{Date: date(2020, 1, 8), Amount: dec("-90.0"), Currency: "EUR", Category: "foo", Description: "lorem ipsum"},
	{Date: date(2020, 1, 7), Amount: dec("-90.0"), Currency: "PLN", Category: "bar", Description: "dolor sit amet"},
}

func pick(idx ...int) []model.Entry {
	out := make([]model.Entry, 0, len(idx))
	for _, i := range idx {
		out = append(out, testHistory[i])
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []model.Entry
	}{
		{"amount from", Criteria{AmountFrom: nullDec("100")}, pick(0, 1, 3)},
		{"amount to", Criteria{AmountTo: nullDec("95")}, pick(2, 4, 5)},
		{"amount range", Criteria{AmountFrom: nullDec("80"), AmountTo: nullDec("95")}, pick(4, 5)},
		{"category", Criteria{Category: "ar"}, pick(3, 5)},
		{"category case-insensitive", Criteria{Category: "BAR"}, pick(3, 5)},
		{"currency", Criteria{Currency: "EUR"}, pick(4)},
		{"currency is case-sensitive", Criteria{Currency: "eur"}, pick()},
		{"description", Criteria{Description: "ipsum"}, pick(0, 1, 3, 4)},
		{"date from", Criteria{DateFrom: datePtr(2020, 1, 9)}, pick(0, 1, 2)},
		{"date to", Criteria{DateTo: datePtr(2020, 1, 8)}, pick(3, 4, 5)},
		{"date range", Criteria{DateFrom: datePtr(2020, 1, 8), DateTo: datePtr(2020, 1, 9)}, pick(1, 2, 3, 4)},
		{"combined", Criteria{Category: "foo", Currency: "PLN", AmountTo: nullDec("100")}, pick(1, 2)},
		{"no criteria", Criteria{}, pick(0, 1, 2, 3, 4, 5)},
		{"zero threshold is unset", Criteria{AmountFrom: nullDec("0"), AmountTo: nullDec("0")}, pick(0, 1, 2, 3, 4, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(testHistory, tt.criteria))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	c := Criteria{Description: "o", AmountFrom: nullDec("50"), DateTo: datePtr(2020, 1, 9)}
	once := Filter(testHistory, c)
	assert.Equal(t, once, Filter(once, c))
}

func TestFilter_PreservesOrder(t *testing.T) {
	h := randomHistory(rand.New(rand.NewPCG(1, 2)), 200)
	for _, c := range []Criteria{
		{AmountFrom: nullDec("250")},
		{AmountTo: nullDec("100"), Currency: "EUR"},
		{DateFrom: datePtr(2020, 1, 3), DateTo: datePtr(2020, 1, 5)},
		{Category: "a"},
	} {
		got := Filter(h, c)
		j := 0
		for _, e := range got {
			for j < len(h) && !h[j].Equal(e) {
				j++
			}
			require.Less(t, j, len(h), "filtered entry %+v is out of order", e)
			j++
		}
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	h := append([]model.Entry(nil), testHistory...)
	Filter(h, Criteria{Currency: "EUR"})
	assert.Equal(t, testHistory, h)
}

func TestCriteria_Validate(t *testing.T) {
	assert.NoError(t, Criteria{AmountFrom: nullDec("0"), AmountTo: nullDec("5")}.Validate())
	assert.ErrorIs(t, Criteria{AmountFrom: nullDec("-1")}.Validate(), ErrInvalidFilterValue)
	assert.ErrorIs(t, Criteria{AmountTo: nullDec("-0.01")}.Validate(), ErrInvalidFilterValue)
}

func TestCriteria_IsEmpty(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.True(t, Criteria{AmountFrom: nullDec("0")}.IsEmpty())
	assert.False(t, Criteria{Currency: "PLN"}.IsEmpty())
}

func TestGroupByDate(t *testing.T) {
	g := GroupByDate(testHistory, false)

	assert.Equal(t, []model.Date{date(2020, 1, 10), date(2020, 1, 9), date(2020, 1, 8), date(2020, 1, 7)}, g.Dates())
	assert.Equal(t, pick(1, 2), g.Entries(date(2020, 1, 9)))
	assert.Equal(t, pick(3, 4), g.Entries(date(2020, 1, 8)))
	assert.Nil(t, g.Entries(date(1999, 1, 1)))
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 6, g.Count())
}

func TestGroupByDate_Descending(t *testing.T) {
	g := GroupByDate(testHistory, true)

	assert.Equal(t, []model.Date{date(2020, 1, 7), date(2020, 1, 8), date(2020, 1, 9), date(2020, 1, 10)}, g.Dates())
	assert.Equal(t, pick(1, 2), g.Entries(date(2020, 1, 9)), "bucket order is unchanged")

	var seen []model.Date
	for d := range g.All() {
		seen = append(seen, d)
	}
	assert.Equal(t, g.Dates(), seen)
}

func TestGroupByDate_FirstSeenOrder(t *testing.T) {
	h := []model.Entry{
		{Date: date(2020, 1, 1), Description: "a"},
		{Date: date(2020, 3, 1), Description: "b"},
		{Date: date(2020, 1, 1), Description: "c"},
		{Date: date(2020, 2, 1), Description: "d"},
	}
	g := GroupByDate(h, false)
	assert.Equal(t, []model.Date{date(2020, 1, 1), date(2020, 3, 1), date(2020, 2, 1)}, g.Dates())
	assert.Equal(t, []model.Entry{h[0], h[2]}, g.Entries(date(2020, 1, 1)))
}

func TestGroupByDate_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for range 20 {
		h := randomHistory(r, r.IntN(50))
		g := GroupByDate(h, r.IntN(2) == 0)

		total := 0
		for d, entries := range g.All() {
			total += len(entries)
			for _, e := range entries {
				assert.Equal(t, d, e.Date)
			}
		}
		assert.Equal(t, len(h), total)
		assert.Equal(t, len(h), g.Count())
	}
}

func TestGroupByDate_Empty(t *testing.T) {
	g := GroupByDate(nil, false)
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Dates())
}

func TestSummarize(t *testing.T) {
	h := append(pick(0, 1, 2, 3, 4, 5), model.Entry{Date: date(2020, 1, 7), Amount: decimal.Zero, Currency: "PLN"})

	s := Summarize(h, "PLN")
	assert.Equal(t, "PLN", s.Currency)
	assert.Equal(t, 6, s.Count)
	assert.True(t, s.Income.Equal(dec("150")), "income %s", s.Income)
	assert.True(t, s.Expenses.Equal(dec("-380")), "expenses %s", s.Expenses)
	assert.True(t, s.Balance().Equal(dec("-230")), "balance %s", s.Balance())

	eur := Summarize(h, "EUR")
	assert.Equal(t, 1, eur.Count)
	assert.True(t, eur.Income.IsZero())
	assert.True(t, eur.Expenses.Equal(dec("-90")))
}

func TestSummarize_ExactDecimal(t *testing.T) {
	var h []model.Entry
	for range 10 {
		h = append(h, model.Entry{Amount: dec("0.1"), Currency: "PLN"})
	}
	s := Summarize(h, "PLN")
	assert.Equal(t, "1", s.Income.String())
}

func randomHistory(r *rand.Rand, n int) []model.Entry {
	currencies := []string{"PLN", "EUR", "USD"}
	categories := []string{"alpha", "beta", "gamma", ""}
	h := make([]model.Entry, n)
	for i := range h {
		h[i] = model.Entry{
			Date:        date(2020, 1, 1+r.IntN(7)),
			Description: string(rune('a' + r.IntN(26))),
			Category:    categories[r.IntN(len(categories))],
			Amount:      decimal.New(r.Int64N(100000)-50000, -2),
			Currency:    currencies[r.IntN(len(currencies))],
		}
	}
	return h
}
