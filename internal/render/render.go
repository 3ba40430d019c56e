package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	money "github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"github.com/piotrekio/mquery/internal/history"
	"github.com/piotrekio/mquery/internal/model"
)

const (
	amountWidth      = 10
	descriptionWidth = 50
	ellipsis         = "..."
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Renderer prints histories and summaries to a terminal.
type Renderer struct {
	w   io.Writer
	err error

	date        lipgloss.Style
	income      lipgloss.Style
	expense     lipgloss.Style
	description lipgloss.Style
	category    lipgloss.Style
}

// New returns a Renderer writing to w. In ColorAuto mode colors are used only when
// w is a terminal.
func New(w io.Writer, mode ColorMode) *Renderer {
	lr := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		lr.SetColorProfile(termenv.ANSI)
	case ColorNever:
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		w:           w,
		date:        lr.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
		income:      lr.NewStyle().Foreground(lipgloss.Color("2")),
		expense:     lr.NewStyle().Foreground(lipgloss.Color("3")),
		description: lr.NewStyle().Foreground(lipgloss.Color("6")),
		category:    lr.NewStyle().Foreground(lipgloss.Color("5")),
	}
}

// History prints a date header followed by one line per entry for every bucket.
func (r *Renderer) History(groups *history.ByDate) error {
	for d, entries := range groups.All() {
		r.printf("%s\n", r.date.Render(d.String()))
		for _, e := range entries {
			r.entry(e)
		}
	}
	return r.err
}

func (r *Renderer) entry(e model.Entry) {
	style := r.expense
	if e.IsIncome() {
		style = r.income
	}
	r.printf("%s %s %s %s\n",
		style.Bold(true).Render(fmt.Sprintf("%*s", amountWidth, FormatAmount(e.Amount, e.Currency))),
		style.Render(e.Currency),
		r.description.Render(fmt.Sprintf("%-*s", descriptionWidth, Truncate(e.Description, descriptionWidth))),
		r.category.Render(e.Category),
	)
}

// Summary prints income, expenses and balance for one currency.
func (r *Renderer) Summary(s history.Summary) error {
	balance := s.Balance()
	balanceStyle := r.expense
	if balance.IsPositive() {
		balanceStyle = r.income
	}

	rows := []struct {
		label string
		value decimal.Decimal
		style lipgloss.Style
	}{
		{"Income", s.Income, r.income},
		{"Expenses", s.Expenses, r.expense},
		{"Balance", balance, balanceStyle},
	}
	for _, row := range rows {
		r.printf("%s %s %s\n",
			r.date.Render(fmt.Sprintf("%-9s", row.label+":")),
			row.style.Bold(true).Render(fmt.Sprintf("%*s", amountWidth, FormatAmount(row.value, s.Currency))),
			row.style.Render(s.Currency),
		)
	}
	return r.err
}

func (r *Renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// FormatAmount prints a with the number of minor-unit digits of currency (2 when
// the currency is unknown), or more when a carries more significant digits.
func FormatAmount(a decimal.Decimal, currency string) string {
	places := int32(2)
	if c := money.GetCurrency(currency); c != nil {
		places = int32(c.Fraction)
	}
	if exp := -a.Exponent(); exp > places {
		places = exp
	}
	return a.StringFixed(places)
}

// Truncate shortens s to at most width characters, ending it with "..." when it
// had to be cut.
func Truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-len(ellipsis)]) + ellipsis
}
