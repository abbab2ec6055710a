package shipment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipledger/internal/money"
)

func TestDefaultLinesWithoutODC(t *testing.T) {
	lines := testTariff().DefaultLines(Shipment{Type: Outbound, CBM: dec("4.5")})
	require.Len(t, lines, 2)

	require.Equal(t, "Outbound Handling", lines[0].Description)
	require.Equal(t, money.USD, lines[0].Currency)
	require.True(t, lines[0].Quantity.Equal(dec("4.5")))
	require.True(t, lines[0].Rate.Equal(dec("15")))

	require.Equal(t, "Transportation", lines[1].Description)
	require.Equal(t, money.INR, lines[1].Currency)
	require.True(t, lines[1].Quantity.Equal(dec("1")))
	require.True(t, lines[1].Rate.Equal(dec("4500")))
}

func TestDefaultLinesAddsODCSurcharge(t *testing.T) {
	lines := testTariff().DefaultLines(Shipment{Type: Inbound, CBM: dec("10"), ODC: true, PackageCount: 3})
	require.Len(t, lines, 3)
	require.Equal(t, "Over Dimensional Cargo Surcharge", lines[2].Description)
	require.True(t, lines[2].Quantity.Equal(dec("3")))
	require.True(t, lines[2].TaxPercent.Equal(dec("18")))
	require.Equal(t, "996719", lines[2].HSNSAC)
}
