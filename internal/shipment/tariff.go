package shipment

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/shipledger/internal/invoice"
	"github.com/noah-isme/shipledger/internal/money"
)

// Tariff prices the default invoice lines generated for a shipment when the
// request does not supply its own.
type Tariff struct {
	HandlingUSDPerCBM map[Type]decimal.Decimal
	TransportINR      decimal.Decimal
	ODCSurchargeINR   decimal.Decimal
	TaxPercent        decimal.Decimal
	HSNSAC            string
}

// DefaultLines returns the handling, transportation and, for ODC cargo,
// surcharge lines for s.
func (t Tariff) DefaultLines(s Shipment) []invoice.LineInput {
	lines := []invoice.LineInput{
		{
			Description: string(s.Type) + " Handling",
			Unit:        "CBM",
			HSNSAC:      t.HSNSAC,
			Quantity:    s.CBM,
			Rate:        t.HandlingUSDPerCBM[s.Type],
			Currency:    money.USD,
			TaxPercent:  t.TaxPercent,
		},
		{
			Description: "Transportation",
			Unit:        "Trip",
			HSNSAC:      t.HSNSAC,
			Quantity:    decimal.NewFromInt(1),
			Rate:        t.TransportINR,
			Currency:    money.INR,
			TaxPercent:  t.TaxPercent,
		},
	}
	if s.ODC && s.PackageCount > 0 && t.ODCSurchargeINR.IsPositive() {
		lines = append(lines, invoice.LineInput{
			Description: "Over Dimensional Cargo Surcharge",
			Unit:        "Pkg",
			HSNSAC:      t.HSNSAC,
			Quantity:    decimal.NewFromInt32(s.PackageCount),
			Rate:        t.ODCSurchargeINR,
			Currency:    money.INR,
			TaxPercent:  t.TaxPercent,
		})
	}
	return lines
}
