package helpers

import (
	"fmt"
	"math"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotApplicable is rendered for missing or non-numeric values
const NotApplicable = "N/A"

// Unit names understood by the formatter. They mirror indicators.Unit.
const (
	UnitCurrency   = "currency"
	UnitPercentage = "percentage"
	UnitRatio      = "ratio"
)

// Formatter renders metric values for display in a given currency and locale
type Formatter struct {
	currency *currencyFormatter
	printer  *message.Printer
}

// NewFormatter creates a formatter for an ISO currency code and a BCP 47 locale
func NewFormatter(currencyCode, locale string) (*Formatter, error) {
	cur, err := newCurrencyFormatter(currencyCode)
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{
		currency: cur,
		printer:  message.NewPrinter(tag),
	}, nil
}

var (
	defaultOnce      sync.Once
	defaultFormatter *Formatter
)

// DefaultFormatter formats Brazilian Real amounts in pt-BR
func DefaultFormatter() *Formatter {
	defaultOnce.Do(func() {
		f, err := NewFormatter("BRL", "pt-BR")
		if err != nil {
			panic(err)
		}
		defaultFormatter = f
	})
	return defaultFormatter
}

func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// fixed rounds half away from zero and keeps exactly places decimals
func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// FormatCurrency renders an amount with the currency symbol and no decimals
func (f *Formatter) FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NotApplicable
	}
	return f.currency.format(amount)
}

// FormatValue renders a value in its unit:
// currency as "R$ 1.234.568", percentage as "12.35%", ratio as "2.50".
func (f *Formatter) FormatValue(v *float64, unit string) string {
	if !usable(v) {
		return NotApplicable
	}
	switch unit {
	case UnitPercentage:
		return fixed(*v, 2) + "%"
	case UnitRatio:
		return fixed(*v, 2)
	default:
		return f.FormatCurrency(*v)
	}
}

// FormatAxis renders a chart axis tick. Large currency amounts are abbreviated
// with B, M or K and one decimal; everything else falls back to FormatValue.
func (f *Formatter) FormatAxis(v *float64, unit string) string {
	if !usable(v) {
		return NotApplicable
	}
	if unit == UnitCurrency || unit == "" {
		switch x := *v; {
		case x >= 1e9:
			return fixed(x/1e9, 1) + "B"
		case x >= 1e6:
			return fixed(x/1e6, 1) + "M"
		case x >= 1e3:
			return fixed(x/1e3, 1) + "K"
		}
	}
	return f.FormatValue(v, unit)
}

// FormatMillions renders an amount in millions with the locale's separators,
// e.g. "R$ 1,5 milhões". Zero is rendered as "R$ 0".
func (f *Formatter) FormatMillions(v *float64) string {
	if !usable(v) {
		return NotApplicable
	}
	if *v == 0 {
		return f.currency.symbol() + " 0"
	}
	return fmt.Sprintf("%s %s milhões", f.currency.symbol(), f.millions(*v))
}

// FormatComparison renders a reference value on a comparison card.
// Currency amounts are shown in millions without the symbol, with a decimal point.
func (f *Formatter) FormatComparison(v *float64, unit string) string {
	if !usable(v) {
		return NotApplicable
	}
	if unit == UnitCurrency {
		return fixed(*v/1e6, 1) + " milhões"
	}
	return f.FormatValue(v, unit)
}

func (f *Formatter) millions(v float64) string {
	m := decimal.NewFromFloat(v).Div(decimal.NewFromInt(1_000_000)).Round(1)
	return f.printer.Sprintf("%.1f", m.InexactFloat64())
}

// FormatChange renders a percentage change with one decimal and an explicit sign, e.g. "+12.5%"
func FormatChange(change *float64) string {
	if !usable(change) {
		return NotApplicable
	}
	s := fixed(*change, 1)
	if *change > 0 {
		s = "+" + s
	}
	return s + "%"
}
