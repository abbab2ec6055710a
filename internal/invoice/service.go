package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/shipledger/internal/common"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
	"github.com/noah-isme/shipledger/internal/obs"
)

var nopLogger = zerolog.Nop()

// Writer is the transaction-scoped subset of queries used to persist a draft.
type Writer interface {
	NextInvoiceSeq(ctx context.Context) (int64, error)
	InsertInvoice(ctx context.Context, arg dbgen.InsertInvoiceParams) (dbgen.Invoice, error)
	InsertInvoiceItem(ctx context.Context, arg dbgen.InsertInvoiceItemParams) (dbgen.InvoiceItem, error)
}

type queryProvider interface {
	FinalizeInvoice(ctx context.Context, id pgtype.UUID) (dbgen.Invoice, error)
	GetInvoice(ctx context.Context, id pgtype.UUID) (dbgen.Invoice, error)
	GetInvoiceByShipment(ctx context.Context, shipmentID pgtype.UUID) (dbgen.Invoice, error)
	ListInvoiceItems(ctx context.Context, invoiceID pgtype.UUID) ([]dbgen.InvoiceItem, error)
	ListInvoices(ctx context.Context, arg dbgen.ListInvoicesParams) ([]dbgen.Invoice, error)
	CountInvoices(ctx context.Context, status dbgen.NullInvoiceStatus) (int64, error)
}

// Service creates, finalizes and reads invoices. Stored totals are returned
// as persisted and never recomputed.
type Service struct {
	Q       queryProvider
	Builder *Builder
	Logger  *zerolog.Logger
}

// ListFilter narrows List results.
type ListFilter struct {
	Status  Status
	Page    int
	PerPage int
}

// Quote computes a draft without persisting or numbering it.
func (s *Service) Quote(in DraftInput) (Draft, error) {
	if s.Builder == nil {
		return Draft{}, errors.New("invoice builder not configured")
	}
	return s.Builder.BuildDraft(in)
}

// CreateDraft computes the invoice for in and writes it with its items through
// w, which is expected to be bound to the caller's transaction.
func (s *Service) CreateDraft(ctx context.Context, w Writer, in DraftInput) (Invoice, error) {
	if s.Builder == nil || w == nil {
		return Invoice{}, errors.New("invoice service not configured")
	}
	ctx, span := obs.StartSpan(ctx, "invoice", "invoice.create_draft",
		attribute.Int("invoice.items", len(in.Lines)))
	inv, err := s.createDraft(ctx, w, in)
	obs.EndSpan(span, err)
	return inv, err
}

func (s *Service) createDraft(ctx context.Context, w Writer, in DraftInput) (Invoice, error) {
	draft, err := s.Builder.BuildDraft(in)
	if err != nil {
		return Invoice{}, err
	}
	seq, err := w.NextInvoiceSeq(ctx)
	if err != nil {
		return Invoice{}, storeErr("next invoice number", err)
	}
	row, err := w.InsertInvoice(ctx, invoiceParams(s.Builder.Number(draft, seq), draft))
	if err != nil {
		return Invoice{}, storeErr("insert invoice", err)
	}
	inv := fromRow(row)
	inv.Items = make([]Item, 0, len(draft.Lines))
	for i, line := range draft.Lines {
		itemRow, err := w.InsertInvoiceItem(ctx, itemParams(row, i+1, line))
		if err != nil {
			return Invoice{}, storeErr(fmt.Sprintf("insert invoice item %d", i+1), err)
		}
		inv.Items = append(inv.Items, itemFromRow(itemRow))
	}
	return inv, nil
}

// Finalize moves a draft invoice to finalized with a conditional update, so
// concurrent callers see exactly one success.
func (s *Service) Finalize(ctx context.Context, id string) (Invoice, error) {
	if s.Q == nil {
		return Invoice{}, errors.New("invoice queries not configured")
	}
	invoiceID, err := common.ToUUID(id)
	if err != nil {
		return Invoice{}, ErrNotFound
	}
	ctx, span := obs.StartSpan(ctx, "invoice", "invoice.finalize", attribute.String("invoice.id", id))
	inv, err := s.finalize(ctx, invoiceID)
	obs.EndSpan(span, err)
	recordFinalize(err)
	if err == nil {
		s.logger(ctx).Info().
			Str("invoice_id", inv.ID).
			Str("invoice_number", inv.Number).
			Str("grand_total_inr", inv.Totals.GrandTotalINR.String()).
			Msg("invoice_finalized")
	}
	return inv, err
}

func (s *Service) finalize(ctx context.Context, id pgtype.UUID) (Invoice, error) {
	row, err := s.Q.FinalizeInvoice(ctx, id)
	if err == nil {
		return s.withItems(ctx, row)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, storeErr("finalize invoice", err)
	}

	current, err := s.Q.GetInvoice(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrNotFound
	}
	if err != nil {
		return Invoice{}, storeErr("get invoice", err)
	}
	if _, err := NewLifecycle(Status(current.Status)).Finalize(ctx); err != nil {
		return Invoice{}, err
	}
	return Invoice{}, storeErr("finalize invoice", errors.New("draft invoice was not updated"))
}

// Get returns the stored invoice with its items in position order.
func (s *Service) Get(ctx context.Context, id string) (Invoice, error) {
	if s.Q == nil {
		return Invoice{}, errors.New("invoice queries not configured")
	}
	invoiceID, err := common.ToUUID(id)
	if err != nil {
		return Invoice{}, ErrNotFound
	}
	row, err := s.Q.GetInvoice(ctx, invoiceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrNotFound
	}
	if err != nil {
		return Invoice{}, storeErr("get invoice", err)
	}
	return s.withItems(ctx, row)
}

// GetByShipment returns the invoice generated for a shipment.
func (s *Service) GetByShipment(ctx context.Context, shipmentID pgtype.UUID) (Invoice, error) {
	if s.Q == nil {
		return Invoice{}, errors.New("invoice queries not configured")
	}
	row, err := s.Q.GetInvoiceByShipment(ctx, shipmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrNotFound
	}
	if err != nil {
		return Invoice{}, storeErr("get invoice by shipment", err)
	}
	return s.withItems(ctx, row)
}

// List pages invoice headers, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Invoice, common.Pagination, error) {
	if s.Q == nil {
		return nil, common.Pagination{}, errors.New("invoice queries not configured")
	}
	if f.PerPage <= 0 {
		f.PerPage = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	status := dbgen.NullInvoiceStatus{}
	switch f.Status {
	case "":
	case StatusDraft, StatusFinalized:
		status = dbgen.NullInvoiceStatus{InvoiceStatus: dbgen.InvoiceStatus(f.Status), Valid: true}
	default:
		return nil, common.Pagination{}, common.NewFieldError(ErrInvalidStatus, "status", f.Status)
	}
	rows, err := s.Q.ListInvoices(ctx, dbgen.ListInvoicesParams{
		Status: status,
		Limit:  int32(f.PerPage),
		Offset: common.Offset(f.Page, f.PerPage),
	})
	if err != nil {
		return nil, common.Pagination{}, storeErr("list invoices", err)
	}
	total, err := s.Q.CountInvoices(ctx, status)
	if err != nil {
		return nil, common.Pagination{}, storeErr("count invoices", err)
	}
	out := make([]Invoice, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, common.NewPagination(f.Page, f.PerPage, total), nil
}

func (s *Service) withItems(ctx context.Context, row dbgen.Invoice) (Invoice, error) {
	inv := fromRow(row)
	items, err := s.Q.ListInvoiceItems(ctx, row.ID)
	if err != nil {
		return Invoice{}, storeErr("list invoice items", err)
	}
	inv.Items = make([]Item, 0, len(items))
	for _, it := range items {
		inv.Items = append(inv.Items, itemFromRow(it))
	}
	return inv, nil
}

func (s *Service) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	if s.Logger == nil {
		return &nopLogger
	}
	return s.Logger
}

// LogCreated records a committed draft. Callers invoke it after their transaction commits.
func (s *Service) LogCreated(ctx context.Context, inv Invoice) {
	if obs.InvoicesCreatedTotal != nil {
		obs.InvoicesCreatedTotal.Inc()
	}
	if obs.InvoiceGrandTotalINR != nil {
		obs.InvoiceGrandTotalINR.Observe(inv.Totals.GrandTotalINR.InexactFloat64())
	}
	s.logger(ctx).Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.Number).
		Str("shipment_id", inv.ShipmentID).
		Int("items", len(inv.Items)).
		Str("grand_total_inr", inv.Totals.GrandTotalINR.String()).
		Msg("invoice_created")
}

func recordFinalize(err error) {
	if obs.InvoicesFinalizedTotal == nil {
		return
	}
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyFinalized):
		result = "already_finalized"
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	obs.InvoicesFinalizedTotal.WithLabelValues(result).Inc()
}
