package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// DisplayPlaces is the number of decimal places of converted amounts.
const DisplayPlaces = 2

// CurrencyConverter converts with a fixed rate table. Rates are expressed as
// units of the currency per one unit of the base currency.
type CurrencyConverter struct {
	base  string
	rates map[string]decimal.Decimal
}

func NewCurrencyConverter(base string, rates map[string]decimal.Decimal) *CurrencyConverter {
	base = normalizeCode(base)
	table := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		table[normalizeCode(code)] = rate
	}
	table[base] = decimal.NewFromInt(1)
	return &CurrencyConverter{base: base, rates: table}
}

func (c *CurrencyConverter) Base() string {
	return c.base
}

// Supports reports whether code is the base currency or has a configured rate.
func (c *CurrencyConverter) Supports(code string) bool {
	_, ok := c.rates[normalizeCode(code)]
	return ok
}

// Convert returns amount unchanged when from and to are the same currency.
// Otherwise the result is rounded half away from zero to DisplayPlaces.
func (c *CurrencyConverter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from, to = normalizeCode(from), normalizeCode(to)
	fromRate, ok := c.rates[from]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}
	toRate, ok := c.rates[to]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}
	if from == to {
		return amount, nil
	}
	converted := amount.Mul(toRate).DivRound(fromRate, DisplayPlaces+8)
	return converted.Round(DisplayPlaces), nil
}

// ApplyCurrencyDisplay converts a base-currency amount for presentation.
// Stored amounts always stay in the base currency.
func (c *CurrencyConverter) ApplyCurrencyDisplay(amount decimal.Decimal, target string) (decimal.Decimal, error) {
	if target == "" {
		return amount, nil
	}
	return c.Convert(amount, c.base, target)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
