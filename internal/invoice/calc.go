package invoice

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/money"
)

// LineInput describes one billable line before computation.
type LineInput struct {
	Description string          `json:"description" validate:"required,max=200"`
	Unit        string          `json:"unit" validate:"max=20"`
	HSNSAC      string          `json:"hsn_sac" validate:"max=12"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Currency    money.Currency  `json:"currency" validate:"required"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
	FxRate      decimal.Decimal `json:"fx_rate"`
}

// LineAmounts holds the computed figures for a line. Values are unrounded.
type LineAmounts struct {
	NativeAmount decimal.Decimal `json:"native_amount"`
	TaxNative    decimal.Decimal `json:"tax_native"`
	TotalNative  decimal.Decimal `json:"total_native"`
	AmountUSD    decimal.Decimal `json:"amount_usd"`
	AmountINR    decimal.Decimal `json:"amount_inr"`
	TaxUSD       decimal.Decimal `json:"tax_usd"`
	TaxINR       decimal.Decimal `json:"tax_inr"`
}

// Line pairs an input with its computed amounts, in invoice order.
type Line struct {
	LineInput
	LineAmounts
}

// CalculateLine computes native, USD and INR amounts for a single line.
// The tax is converted on its own base rather than derived from the converted total.
func CalculateLine(in LineInput) (LineAmounts, error) {
	if err := money.ValidateFxRate(in.FxRate); err != nil {
		return LineAmounts{}, err
	}
	if !in.Currency.Valid() {
		return LineAmounts{}, common.NewFieldError(ErrInvalidLineItem, "currency", in.Currency)
	}
	if in.Quantity.IsNegative() {
		return LineAmounts{}, common.NewFieldError(ErrInvalidLineItem, "quantity", in.Quantity)
	}
	if in.Rate.IsNegative() {
		return LineAmounts{}, common.NewFieldError(ErrInvalidLineItem, "rate", in.Rate)
	}
	if in.TaxPercent.IsNegative() {
		return LineAmounts{}, common.NewFieldError(ErrInvalidLineItem, "taxPercent", in.TaxPercent)
	}

	native := in.Quantity.Mul(in.Rate)
	tax := money.Percent(native, in.TaxPercent)
	out := LineAmounts{
		NativeAmount: native,
		TaxNative:    tax,
		TotalNative:  native.Add(tax),
	}

	var err error
	if out.AmountUSD, err = money.Convert(native, in.Currency, money.USD, in.FxRate); err != nil {
		return LineAmounts{}, err
	}
	if out.AmountINR, err = money.Convert(native, in.Currency, money.INR, in.FxRate); err != nil {
		return LineAmounts{}, err
	}
	if out.TaxUSD, err = money.Convert(tax, in.Currency, money.USD, in.FxRate); err != nil {
		return LineAmounts{}, err
	}
	if out.TaxINR, err = money.Convert(tax, in.Currency, money.INR, in.FxRate); err != nil {
		return LineAmounts{}, err
	}
	return out, nil
}

// CalculateLines runs CalculateLine over inputs, preserving order. The first
// failing line is reported with its position.
func CalculateLines(inputs []LineInput) ([]Line, error) {
	if len(inputs) == 0 {
		return nil, common.NewFieldError(ErrInvalidLineItem, "items", "empty")
	}
	lines := make([]Line, 0, len(inputs))
	for i, in := range inputs {
		amounts, err := CalculateLine(in)
		if err != nil {
			return nil, &LineError{Index: i, Err: err}
		}
		lines = append(lines, Line{LineInput: in, LineAmounts: amounts})
	}
	return lines, nil
}

// LineError reports which line of an invoice failed.
type LineError struct {
	Index int
	Err   error
}

func (e *LineError) Error() string {
	return "item " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *LineError) Unwrap() error { return e.Err }
