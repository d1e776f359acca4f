package helpers

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// currencyFormatter renders whole currency amounts using the symbol and
// separators of an ISO currency, e.g. "R$ 1.234.568" for BRL.
type currencyFormatter struct {
	code string
	f    *money.Formatter
}

func newCurrencyFormatter(code string) (*currencyFormatter, error) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency code %q", code)
	}

	// grapheme and amount are separated by a space, on the side the currency uses
	template := "$ 1"
	if strings.HasPrefix(cur.Template, "1") {
		template = "1 $"
	}
	return &currencyFormatter{
		code: cur.Code,
		f:    money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, template),
	}, nil
}

// maxWhole is the largest amount format can render
var maxWhole = decimal.NewFromInt(math.MaxInt64)

// format rounds to whole units, half away from zero.
// Amounts beyond the int64 range are rendered as NotApplicable.
func (c *currencyFormatter) format(amount float64) string {
	whole := decimal.NewFromFloat(amount).Round(0)
	if whole.Abs().GreaterThan(maxWhole) {
		return NotApplicable
	}
	return c.f.Format(whole.IntPart())
}

// symbol returns the currency grapheme, e.g. "R$"
func (c *currencyFormatter) symbol() string {
	return c.f.Grapheme
}
