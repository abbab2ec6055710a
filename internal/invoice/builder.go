package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/money"
)

// BuilderConfig carries the invoice numbering and dating rules.
type BuilderConfig struct {
	Prefix           string
	PaymentTermsDays int
	Location         *time.Location
}

// Builder assembles draft invoices from line inputs. It never touches storage.
type Builder struct {
	cfg BuilderConfig
	now func() time.Time
}

// NewBuilder constructs a Builder using the wall clock.
func NewBuilder(cfg BuilderConfig) *Builder {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if strings.TrimSpace(cfg.Prefix) == "" {
		cfg.Prefix = "INV"
	}
	return &Builder{cfg: cfg, now: time.Now}
}

// WithClock overrides the clock, for tests and backdated quotes.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	cp := *b
	cp.now = now
	return &cp
}

// Party is the billed customer as denormalised onto the invoice.
type Party struct {
	ID        pgtype.UUID
	Name      string
	GSTIN     string
	State     string
	StateCode string
}

// DraftInput is everything needed to compute a draft invoice.
type DraftInput struct {
	ShipmentID pgtype.UUID
	Customer   Party
	Lines      []LineInput
	FxRate     decimal.Decimal
	Discount   Discount
	Adjustment decimal.Decimal
	CreatedBy  pgtype.UUID
}

// Draft is a computed, not yet numbered, invoice.
type Draft struct {
	ShipmentID    pgtype.UUID
	Customer      Party
	InvoiceDate   time.Time
	DueDate       time.Time
	PlaceOfSupply string
	FxRate        decimal.Decimal
	Discount      Discount
	Lines         []Line
	Totals        Totals
	Status        Status
	CreatedBy     pgtype.UUID
}

// BuildDraft runs the line calculator and aggregator and stamps dates. Every
// line is priced at the invoice fx rate.
func (b *Builder) BuildDraft(in DraftInput) (Draft, error) {
	if err := money.ValidateFxRate(in.FxRate); err != nil {
		return Draft{}, err
	}
	inputs := make([]LineInput, len(in.Lines))
	for i, l := range in.Lines {
		if !l.FxRate.IsZero() && !l.FxRate.Equal(in.FxRate) {
			return Draft{}, &LineError{Index: i, Err: common.NewFieldError(ErrInvalidLineItem, "fxRate", l.FxRate)}
		}
		l.FxRate = in.FxRate
		inputs[i] = l
	}
	lines, err := CalculateLines(inputs)
	if err != nil {
		return Draft{}, err
	}
	totals, err := Aggregate(AmountsOf(lines), in.FxRate, in.Discount, in.Adjustment)
	if err != nil {
		return Draft{}, err
	}

	issued := b.now().In(b.cfg.Location)
	discount := in.Discount
	if discount.Kind == "" {
		discount.Kind = DiscountAbsolute
	}
	return Draft{
		ShipmentID:    in.ShipmentID,
		Customer:      in.Customer,
		InvoiceDate:   issued,
		DueDate:       issued.AddDate(0, 0, b.cfg.PaymentTermsDays),
		PlaceOfSupply: placeOfSupply(in.Customer),
		FxRate:        in.FxRate,
		Discount:      discount,
		Lines:         lines,
		Totals:        totals,
		Status:        StatusDraft,
		CreatedBy:     in.CreatedBy,
	}, nil
}

// Number formats a sequence value as PREFIX/FY/00042 using the financial year of d.InvoiceDate.
func (b *Builder) Number(d Draft, seq int64) string {
	return FormatNumber(b.cfg.Prefix, d.InvoiceDate, seq)
}

// FormatNumber renders an invoice number for the given issue date.
func FormatNumber(prefix string, issued time.Time, seq int64) string {
	return fmt.Sprintf("%s/%s/%05d", prefix, FinancialYear(issued), seq)
}

// FinancialYear returns the April to March year containing t, e.g. "2026-27".
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

func placeOfSupply(p Party) string {
	state := strings.TrimSpace(p.State)
	code := strings.TrimSpace(p.StateCode)
	switch {
	case state != "" && code != "":
		return fmt.Sprintf("%s (%s)", state, code)
	case state != "":
		return state
	default:
		return code
	}
}
