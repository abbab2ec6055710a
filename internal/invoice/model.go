package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/shipledger/internal/common"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
	"github.com/noah-isme/shipledger/internal/money"
)

// Invoice is the stored invoice header as returned to callers.
type Invoice struct {
	ID            string          `json:"id"`
	Number        string          `json:"invoice_number"`
	ShipmentID    string          `json:"shipment_id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerGSTIN string          `json:"customer_gstin,omitempty"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date"`
	PlaceOfSupply string          `json:"place_of_supply"`
	State         string          `json:"state"`
	StateCode     string          `json:"state_code"`
	FxRate        decimal.Decimal `json:"fx_rate"`
	Discount      Discount        `json:"discount"`
	Totals        Totals          `json:"totals"`
	Status        Status          `json:"status"`
	Actions       []Trigger       `json:"actions"`
	FinalizedAt   *time.Time      `json:"finalized_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []Item          `json:"items,omitempty"`
}

// Item is a stored invoice line.
type Item struct {
	ID           string          `json:"id"`
	Position     int             `json:"position"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	HSNSAC       string          `json:"hsn_sac"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	Currency     money.Currency  `json:"currency"`
	FxRate       decimal.Decimal `json:"fx_rate"`
	TaxPercent   decimal.Decimal `json:"tax_percent"`
	NativeAmount decimal.Decimal `json:"native_amount"`
	AmountUSD    decimal.Decimal `json:"amount_usd"`
	AmountINR    decimal.Decimal `json:"amount_inr"`
	TaxableUSD   decimal.Decimal `json:"taxable_usd"`
	TaxableINR   decimal.Decimal `json:"taxable_inr"`
	TaxNative    decimal.Decimal `json:"tax_native"`
	TaxUSD       decimal.Decimal `json:"tax_usd"`
	TaxINR       decimal.Decimal `json:"tax_inr"`
	TotalNative  decimal.Decimal `json:"total_native"`
}

// Summary is the header reference embedded in shipment listings.
type Summary struct {
	ID     string `json:"id"`
	Number string `json:"invoice_number"`
	Status Status `json:"status"`
}

func fromRow(row dbgen.Invoice) Invoice {
	inv := Invoice{
		ID:            common.UUIDString(row.ID),
		Number:        row.InvoiceNumber,
		ShipmentID:    common.UUIDString(row.ShipmentID),
		CustomerID:    common.UUIDString(row.CustomerID),
		CustomerName:  row.CustomerName,
		CustomerGSTIN: common.TextValue(row.CustomerGstin),
		PlaceOfSupply: row.PlaceOfSupply,
		State:         row.State,
		StateCode:     row.StateCode,
		FxRate:        row.FxRate,
		Discount:      Discount{Kind: DiscountKind(row.DiscountKind), Value: row.DiscountValue},
		Totals: Totals{
			TaxableUSD:    row.TaxableUsd,
			TaxableINR:    row.TaxableInr,
			TaxUSD:        row.TaxUsd,
			TaxINR:        row.TaxInr,
			SubtotalUSD:   row.SubtotalUsd,
			SubtotalINR:   row.SubtotalInr,
			DiscountINR:   row.DiscountInr,
			AdjustmentINR: row.AdjustmentInr,
			GrandTotalINR: row.GrandTotalInr,
			GrandTotalUSD: row.GrandTotalUsd,
		},
		Status:    Status(row.Status),
		CreatedAt: common.TimeValue(row.CreatedAt),
	}
	if row.InvoiceDate.Valid {
		inv.InvoiceDate = row.InvoiceDate.Time.Format(time.DateOnly)
	}
	if row.DueDate.Valid {
		inv.DueDate = row.DueDate.Time.Format(time.DateOnly)
	}
	if row.FinalizedAt.Valid {
		at := row.FinalizedAt.Time
		inv.FinalizedAt = &at
	}
	inv.Actions = Actions(inv.Status)
	return inv
}

func itemFromRow(row dbgen.InvoiceItem) Item {
	return Item{
		ID:           common.UUIDString(row.ID),
		Position:     int(row.Position),
		Description:  row.Description,
		Unit:         row.Unit,
		HSNSAC:       row.HsnSac,
		Quantity:     row.Quantity,
		Rate:         row.Rate,
		Currency:     money.Currency(row.Currency),
		FxRate:       row.FxRate,
		TaxPercent:   row.TaxPercent,
		NativeAmount: row.AmountNative,
		AmountUSD:    row.AmountUsd,
		AmountINR:    row.AmountInr,
		TaxableUSD:   row.TaxableUsd,
		TaxableINR:   row.TaxableInr,
		TaxNative:    row.TaxNative,
		TaxUSD:       row.TaxUsd,
		TaxINR:       row.TaxInr,
		TotalNative:  row.TotalNative,
	}
}

func invoiceParams(number string, d Draft) dbgen.InsertInvoiceParams {
	return dbgen.InsertInvoiceParams{
		InvoiceNumber: number,
		ShipmentID:    d.ShipmentID,
		CustomerID:    d.Customer.ID,
		CustomerName:  d.Customer.Name,
		CustomerGstin: common.Text(d.Customer.GSTIN),
		InvoiceDate:   common.Date(d.InvoiceDate),
		DueDate:       common.Date(d.DueDate),
		PlaceOfSupply: d.PlaceOfSupply,
		State:         d.Customer.State,
		StateCode:     d.Customer.StateCode,
		FxRate:        d.FxRate,
		TaxableUsd:    d.Totals.TaxableUSD,
		TaxableInr:    d.Totals.TaxableINR,
		SubtotalUsd:   d.Totals.SubtotalUSD,
		SubtotalInr:   d.Totals.SubtotalINR,
		TaxUsd:        d.Totals.TaxUSD,
		TaxInr:        d.Totals.TaxINR,
		DiscountKind:  string(d.Discount.Kind),
		DiscountValue: d.Discount.Value,
		DiscountInr:   d.Totals.DiscountINR,
		AdjustmentInr: d.Totals.AdjustmentINR,
		GrandTotalInr: d.Totals.GrandTotalINR,
		GrandTotalUsd: d.Totals.GrandTotalUSD,
		CreatedBy:     d.CreatedBy,
	}
}

func itemParams(inv dbgen.Invoice, position int, l Line) dbgen.InsertInvoiceItemParams {
	return dbgen.InsertInvoiceItemParams{
		InvoiceID:    inv.ID,
		Position:     int32(position),
		Description:  l.Description,
		Unit:         l.Unit,
		Quantity:     l.Quantity,
		Rate:         l.Rate,
		Currency:     string(l.Currency),
		FxRate:       l.FxRate,
		AmountNative: l.NativeAmount,
		AmountUsd:    l.AmountUSD,
		AmountInr:    l.AmountINR,
		HsnSac:       l.HSNSAC,
		TaxPercent:   l.TaxPercent,
		TaxableUsd:   l.AmountUSD,
		TaxableInr:   l.AmountINR,
		TaxNative:    l.TaxNative,
		TaxUsd:       l.TaxUSD,
		TaxInr:       l.TaxINR,
		TotalNative:  l.TotalNative,
	}
}
