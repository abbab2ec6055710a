// Package money holds the currency arithmetic shared by the invoice engine
// and the renderers. fxRate is always quoted as INR per one USD.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/noah-isme/shipledger/internal/common"
)

// Currency is an ISO 4217 code supported by the invoice engine.
type Currency string

const (
	USD Currency = "USD"
	INR Currency = "INR"
)

var (
	// ErrInvalidFxRate is returned when the INR-per-USD rate is not strictly positive.
	ErrInvalidFxRate = errors.New("fx rate must be greater than zero")
	// ErrUnsupportedCurrency is returned for currencies other than USD and INR.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

var hundred = decimal.NewFromInt(100)

// ParseCurrency normalises a currency code.
func ParseCurrency(code string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(code))) {
	case USD:
		return USD, nil
	case INR:
		return INR, nil
	default:
		return "", common.NewFieldError(ErrUnsupportedCurrency, "currency", code)
	}
}

// UnmarshalJSON accepts codes in any case. Unsupported codes are kept as
// sent so that line validation can report them with the offending value.
func (c *Currency) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	if parsed, err := ParseCurrency(raw); err == nil {
		*c = parsed
		return nil
	}
	*c = Currency(strings.TrimSpace(raw))
	return nil
}

// Valid reports whether c is USD or INR.
func (c Currency) Valid() bool {
	return c == USD || c == INR
}

// ValidateFxRate rejects zero and negative rates.
func ValidateFxRate(fxRate decimal.Decimal) error {
	if !fxRate.IsPositive() {
		return common.NewFieldError(ErrInvalidFxRate, "fxRate", fxRate.String())
	}
	return nil
}

// Convert moves amount from one currency to the other at fxRate.
func Convert(amount decimal.Decimal, from, to Currency, fxRate decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateFxRate(fxRate); err != nil {
		return decimal.Zero, err
	}
	if !from.Valid() {
		return decimal.Zero, common.NewFieldError(ErrUnsupportedCurrency, "currency", from)
	}
	if !to.Valid() {
		return decimal.Zero, common.NewFieldError(ErrUnsupportedCurrency, "currency", to)
	}
	if from == to {
		return amount, nil
	}
	if from == USD {
		return amount.Mul(fxRate), nil
	}
	return amount.Div(fxRate), nil
}

// Round2 rounds half away from zero to two decimal places.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Percent returns amount × pct / 100.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Symbol returns the display symbol for c.
func Symbol(c Currency) string {
	switch c {
	case INR:
		return "₹"
	case USD:
		return "$"
	default:
		return string(c) + " "
	}
}

// Format renders amount rounded to two places with the currency symbol and
// locale grouping: lakh/crore (12,34,567.89) for rupees, thousands for
// dollars. Digits come from the decimal itself, never via float64.
func Format(amount decimal.Decimal, c Currency) string {
	rounded := Round2(amount)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	return sign + Symbol(c) + groupDigits(whole, c) + "." + frac
}

// groupDigits inserts the locale's group separators into an unsigned
// integer string. Values beyond int64 are returned ungrouped.
func groupDigits(whole string, c Currency) string {
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return whole
	}
	return message.NewPrinter(locale(c)).Sprintf("%d", n)
}

// Fixed renders amount rounded to two places without grouping or symbol.
func Fixed(amount decimal.Decimal) string {
	return Round2(amount).StringFixed(2)
}

func locale(c Currency) language.Tag {
	if c == INR {
		return language.MustParse("en-IN")
	}
	return language.AmericanEnglish
}
