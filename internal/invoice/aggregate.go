package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/money"
)

// DiscountKind selects how Discount.Value is interpreted.
type DiscountKind string

const (
	DiscountPercent  DiscountKind = "percent"
	DiscountAbsolute DiscountKind = "absolute"
)

// Discount is an invoice-level reduction applied in INR.
type Discount struct {
	Kind  DiscountKind    `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// Totals are the invoice-level figures derived from the lines.
type Totals struct {
	TaxableUSD    decimal.Decimal `json:"taxable_usd"`
	TaxableINR    decimal.Decimal `json:"taxable_inr"`
	TaxUSD        decimal.Decimal `json:"tax_usd"`
	TaxINR        decimal.Decimal `json:"tax_inr"`
	SubtotalUSD   decimal.Decimal `json:"subtotal_usd"`
	SubtotalINR   decimal.Decimal `json:"subtotal_inr"`
	DiscountINR   decimal.Decimal `json:"discount_inr"`
	AdjustmentINR decimal.Decimal `json:"adjustment_inr"`
	GrandTotalINR decimal.Decimal `json:"grand_total_inr"`
	GrandTotalUSD decimal.Decimal `json:"grand_total_usd"`
}

func (d Discount) kind() DiscountKind {
	if d.Kind == "" {
		return DiscountAbsolute
	}
	return d.Kind
}

// Amount resolves the discount against an INR subtotal.
func (d Discount) Amount(subtotalINR decimal.Decimal) (decimal.Decimal, error) {
	if d.Value.IsNegative() {
		return decimal.Zero, common.NewFieldError(ErrInvalidDiscount, "discount.value", d.Value)
	}
	switch d.kind() {
	case DiscountPercent:
		if d.Value.GreaterThan(decimal.NewFromInt(100)) {
			return decimal.Zero, common.NewFieldError(ErrInvalidDiscount, "discount.value", d.Value)
		}
		return money.Percent(subtotalINR, d.Value), nil
	case DiscountAbsolute:
		return d.Value, nil
	default:
		return decimal.Zero, common.NewFieldError(ErrInvalidDiscount, "discount.kind", d.Kind)
	}
}

// Aggregate folds lines, in order, into invoice totals. Subtotals include tax;
// discount and adjustment apply to the INR subtotal and the USD grand total is
// derived from the INR one at fxRate.
func Aggregate(lines []LineAmounts, fxRate decimal.Decimal, discount Discount, adjustment decimal.Decimal) (Totals, error) {
	if err := money.ValidateFxRate(fxRate); err != nil {
		return Totals{}, err
	}
	t := Totals{
		TaxableUSD:  decimal.Zero,
		TaxableINR:  decimal.Zero,
		TaxUSD:      decimal.Zero,
		TaxINR:      decimal.Zero,
		SubtotalUSD: decimal.Zero,
		SubtotalINR: decimal.Zero,
	}
	for _, l := range lines {
		t.TaxableUSD = t.TaxableUSD.Add(l.AmountUSD)
		t.TaxableINR = t.TaxableINR.Add(l.AmountINR)
		t.TaxUSD = t.TaxUSD.Add(l.TaxUSD)
		t.TaxINR = t.TaxINR.Add(l.TaxINR)
		t.SubtotalUSD = t.SubtotalUSD.Add(l.AmountUSD).Add(l.TaxUSD)
		t.SubtotalINR = t.SubtotalINR.Add(l.AmountINR).Add(l.TaxINR)
	}

	discountINR, err := discount.Amount(t.SubtotalINR)
	if err != nil {
		return Totals{}, err
	}
	t.DiscountINR = discountINR
	t.AdjustmentINR = adjustment
	t.GrandTotalINR = t.SubtotalINR.Sub(discountINR).Add(adjustment)
	if t.GrandTotalINR.IsNegative() {
		return Totals{}, common.NewFieldError(ErrNegativeTotal, "grandTotalINR", t.GrandTotalINR)
	}
	if t.GrandTotalUSD, err = money.Convert(t.GrandTotalINR, money.INR, money.USD, fxRate); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// AmountsOf projects the computed amounts of lines for Aggregate.
func AmountsOf(lines []Line) []LineAmounts {
	out := make([]LineAmounts, len(lines))
	for i, l := range lines {
		out[i] = l.LineAmounts
	}
	return out
}
