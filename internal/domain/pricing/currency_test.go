package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newConverter() *CurrencyConverter {
	return NewCurrencyConverter("pln", map[string]decimal.Decimal{"eur": d("0.23"), "USD": d("0.25")})
}

func TestCurrencyConverter_BaseIsIdentity(t *testing.T) {
	c := newConverter()
	for _, amount := range []string{"0", "1800", "1234.5678", "0.005"} {
		got, err := c.ApplyCurrencyDisplay(d(amount), "PLN")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(d(amount)) || got.String() != d(amount).String() {
			t.Fatalf("identity conversion changed %s into %s", amount, got)
		}
	}
	got, _ := c.ApplyCurrencyDisplay(d("10.123"), "")
	if !got.Equal(d("10.123")) {
		t.Fatalf("empty target should keep the amount, got %s", got)
	}
}

func TestCurrencyConverter_SecondaryCurrency(t *testing.T) {
	c := newConverter()
	cases := []struct {
		amount, target, want string
	}{
		{"1800", "EUR", "414"},
		{"1800", "usd", "450"},
		{"10.5", "EUR", "2.42"},    // 2.415 rounds half up
		{"10.49", "EUR", "2.41"},   // 2.4127
		{"0.01", "EUR", "0"},       // 0.0023
		{"123.45", "EUR", "28.39"}, // 28.3935
	}
	for _, tc := range cases {
		got, err := c.ApplyCurrencyDisplay(d(tc.amount), tc.target)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(d(tc.want)) {
			t.Fatalf("%s PLN -> %s: expected %s got %s", tc.amount, tc.target, tc.want, got)
		}
	}
}

func TestCurrencyConverter_CrossAndUnsupported(t *testing.T) {
	c := newConverter()
	got, err := c.Convert(d("23"), "EUR", "PLN")
	if err != nil || !got.Equal(d("100")) {
		t.Fatalf("expected 100, got %s err=%v", got, err)
	}

	if _, err := c.ApplyCurrencyDisplay(d("1"), "GBP"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if _, err := c.Convert(d("1"), "GBP", "PLN"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if !c.Supports(" eur ") || c.Supports("GBP") || c.Base() != "PLN" {
		t.Fatalf("unexpected Supports/Base")
	}
}

func TestConvert_RoundsHalfAwayFromZero(t *testing.T) {
	c := NewCurrencyConverter("PLN", map[string]decimal.Decimal{"EUR": d("1")})
	cases := map[string]string{
		"2.345":  "2.35",
		"2.344":  "2.34",
		"-2.345": "-2.35",
		"-2.344": "-2.34",
		"0.005":  "0.01",
	}
	for in, want := range cases {
		got, err := c.Convert(d(in), "PLN", "EUR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(d(want)) {
			t.Fatalf("Convert(%s) expected %s got %s", in, want, got)
		}
	}
}
