package invoice

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipledger/internal/money"
)

func testBuilder(t *testing.T, now time.Time) *Builder {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return NewBuilder(BuilderConfig{Prefix: "LGS", PaymentTermsDays: 30, Location: loc}).
		WithClock(func() time.Time { return now })
}

func TestFinancialYear(t *testing.T) {
	cases := map[string]string{
		"2026-04-01": "2026-27",
		"2027-03-31": "2026-27",
		"2026-01-15": "2025-26",
		"2099-12-31": "2099-00",
	}
	for in, want := range cases {
		d, err := time.Parse(time.DateOnly, in)
		require.NoError(t, err)
		require.Equal(t, want, FinancialYear(d), in)
	}
}

func TestFormatNumber(t *testing.T) {
	d := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "LGS/2026-27/00042", FormatNumber("LGS", d, 42))
	require.Equal(t, "LGS/2026-27/123456", FormatNumber("LGS", d, 123456))
}

func TestBuildDraft(t *testing.T) {
	now := time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC) // already April 1st in IST
	b := testBuilder(t, now)
	draft, err := b.BuildDraft(DraftInput{
		Customer: Party{Name: "Acme Exports", GSTIN: "27AAACA1234A1Z5", State: "Maharashtra", StateCode: "27"},
		Lines:    []LineInput{{Description: "Outbound Handling", Quantity: dec("2"), Rate: dec("100"), Currency: money.USD, TaxPercent: dec("18")}},
		FxRate:   dec("83.5"),
		Discount: Discount{Kind: DiscountPercent, Value: dec("10")},
	})
	require.NoError(t, err)
	require.Equal(t, StatusDraft, draft.Status)
	require.Equal(t, "2026-04-01", draft.InvoiceDate.Format(time.DateOnly))
	require.Equal(t, "2026-05-01", draft.DueDate.Format(time.DateOnly))
	require.Equal(t, "Maharashtra (27)", draft.PlaceOfSupply)
	require.Equal(t, "LGS/2026-27/00007", b.Number(draft, 7))
	require.Len(t, draft.Lines, 1)
	requireDec(t, "83.5", draft.Lines[0].FxRate)
	requireDec(t, "17735.4", draft.Totals.GrandTotalINR)
}

func TestBuildDraftDefaultsDiscountKind(t *testing.T) {
	b := testBuilder(t, time.Now())
	draft, err := b.BuildDraft(DraftInput{
		Lines:  []LineInput{usdLine("1", "10", "0")},
		FxRate: dec("83.5"),
	})
	require.NoError(t, err)
	require.Equal(t, DiscountAbsolute, draft.Discount.Kind)
	require.True(t, draft.Totals.DiscountINR.IsZero())
}

func TestBuildDraftRejectsMixedRates(t *testing.T) {
	b := testBuilder(t, time.Now())
	line := usdLine("1", "10", "0")
	line.FxRate = dec("80")
	_, err := b.BuildDraft(DraftInput{Lines: []LineInput{line}, FxRate: dec("83.5")})
	require.ErrorIs(t, err, ErrInvalidLineItem)
	var le *LineError
	require.True(t, errors.As(err, &le))
}

func TestBuildDraftRejectsEmptyAndBadFx(t *testing.T) {
	b := testBuilder(t, time.Now())
	_, err := b.BuildDraft(DraftInput{FxRate: dec("83.5")})
	require.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = b.BuildDraft(DraftInput{Lines: []LineInput{usdLine("1", "1", "0")}, FxRate: decimal.Zero})
	require.ErrorIs(t, err, money.ErrInvalidFxRate)
}
