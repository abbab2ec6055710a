package invoice

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/shipledger/internal/money"
)

// Seller identifies the issuing company printed on every document.
type Seller struct {
	Name          string
	AddressLines  []string
	GSTIN         string
	PAN           string
	State         string
	StateCode     string
	Email         string
	Phone         string
	BankName      string
	AccountNumber string
	IFSC          string
}

type documentLine struct {
	Position    int
	Description string
	HSNSAC      string
	Unit        string
	Quantity    string
	Rate        string
	TaxPercent  string
	TaxableINR  string
	TaxINR      string
	TotalINR    string
}

type documentTotal struct {
	Label string
	INR   string
	USD   string
}

// document is the request-scoped view of one stored invoice.
type document struct {
	Seller      Seller
	Invoice     Invoice
	Title       string
	Lines       []documentLine
	Totals      []documentTotal
	GrandINR    string
	GrandUSD    string
	AmountWords string
}

func newDocument(seller Seller, inv Invoice) document {
	title := "Tax Invoice"
	if inv.Status == StatusDraft {
		title = "Draft Tax Invoice"
	}
	d := document{
		Seller:      seller,
		Invoice:     inv,
		Title:       title,
		GrandINR:    money.Format(inv.Totals.GrandTotalINR, money.INR),
		GrandUSD:    money.Format(inv.Totals.GrandTotalUSD, money.USD),
		AmountWords: money.InWords(inv.Totals.GrandTotalINR, money.INR),
	}
	for _, it := range inv.Items {
		d.Lines = append(d.Lines, documentLine{
			Position:    it.Position,
			Description: it.Description,
			HSNSAC:      it.HSNSAC,
			Unit:        it.Unit,
			Quantity:    it.Quantity.String(),
			Rate:        money.Format(it.Rate, it.Currency),
			TaxPercent:  it.TaxPercent.String() + "%",
			TaxableINR:  money.Format(it.TaxableINR, money.INR),
			TaxINR:      money.Format(it.TaxINR, money.INR),
			TotalINR:    money.Format(it.TaxableINR.Add(it.TaxINR), money.INR),
		})
	}
	t := inv.Totals
	d.Totals = []documentTotal{
		{Label: "Taxable value", INR: money.Format(t.TaxableINR, money.INR), USD: money.Format(t.TaxableUSD, money.USD)},
		{Label: "IGST", INR: money.Format(t.TaxINR, money.INR), USD: money.Format(t.TaxUSD, money.USD)},
		{Label: "Subtotal", INR: money.Format(t.SubtotalINR, money.INR), USD: money.Format(t.SubtotalUSD, money.USD)},
	}
	if !t.DiscountINR.IsZero() {
		d.Totals = append(d.Totals, documentTotal{Label: discountLabel(inv.Discount), INR: money.Format(t.DiscountINR.Neg(), money.INR)})
	}
	if !t.AdjustmentINR.IsZero() {
		d.Totals = append(d.Totals, documentTotal{Label: "Adjustment", INR: money.Format(t.AdjustmentINR, money.INR)})
	}
	return d
}

func discountLabel(d Discount) string {
	if d.Kind == DiscountPercent {
		return "Discount (" + d.Value.String() + "%)"
	}
	return "Discount"
}

// FileName is a filesystem-safe form of the invoice number.
func FileName(inv Invoice) string {
	name := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(inv.Number)
	if name == "" {
		return "invoice"
	}
	return name
}

func cellAmount(v decimal.Decimal) float64 {
	return money.Round2(v).InexactFloat64()
}
