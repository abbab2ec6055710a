package shipment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/shipledger/internal/common"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
	"github.com/noah-isme/shipledger/internal/invoice"
)

// Shipment is a recorded consignment.
type Shipment struct {
	ID           string           `json:"id"`
	Type         Type             `json:"type"`
	Subtype      string           `json:"subtype"`
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name,omitempty"`
	CBM          decimal.Decimal  `json:"cbm"`
	ODC          bool             `json:"odc"`
	Length       *decimal.Decimal `json:"length,omitempty"`
	Breadth      *decimal.Decimal `json:"breadth,omitempty"`
	Height       *decimal.Decimal `json:"height,omitempty"`
	PackageCount int32            `json:"package_count,omitempty"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	Invoice      *invoice.Summary `json:"invoice,omitempty"`
}

// Detail is a shipment with its full invoice.
type Detail struct {
	Shipment Shipment         `json:"shipment"`
	Invoice  *invoice.Invoice `json:"invoice,omitempty"`
}

func fromRow(row dbgen.Shipment) Shipment {
	s := Shipment{
		ID:         common.UUIDString(row.ID),
		Type:       Type(row.ShipmentType),
		Subtype:    row.Subtype,
		CustomerID: common.UUIDString(row.CustomerID),
		CBM:        row.Cbm,
		ODC:        row.Odc,
		Length:     nullDecimal(row.Length),
		Breadth:    nullDecimal(row.Breadth),
		Height:     nullDecimal(row.Height),
		Status:     row.Status,
		CreatedAt:  common.TimeValue(row.CreatedAt),
	}
	if row.PackageCount.Valid {
		s.PackageCount = row.PackageCount.Int32
	}
	return s
}

func fromListRow(row dbgen.ListShipmentsRow) Shipment {
	s := Shipment{
		ID:           common.UUIDString(row.ID),
		Type:         Type(row.ShipmentType),
		Subtype:      row.Subtype,
		CustomerID:   common.UUIDString(row.CustomerID),
		CustomerName: row.CustomerName,
		CBM:          row.Cbm,
		ODC:          row.Odc,
		Status:       row.Status,
		CreatedAt:    common.TimeValue(row.CreatedAt),
	}
	if row.InvoiceID.Valid {
		s.Invoice = &invoice.Summary{
			ID:     common.UUIDString(row.InvoiceID),
			Number: common.TextValue(row.InvoiceNumber),
			Status: invoice.Status(row.InvoiceStatus.InvoiceStatus),
		}
	}
	return s
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
