package shipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/shipledger/internal/common"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
	"github.com/noah-isme/shipledger/internal/invoice"
	"github.com/noah-isme/shipledger/internal/obs"
)

var nopLogger = zerolog.Nop()

// TxBeginner starts the submission transaction. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxStore is the query surface used inside the submission transaction.
type TxStore interface {
	invoice.Writer
	GetCustomer(ctx context.Context, id pgtype.UUID) (dbgen.Customer, error)
	InsertShipment(ctx context.Context, arg dbgen.InsertShipmentParams) (dbgen.Shipment, error)
}

type queryProvider interface {
	GetShipment(ctx context.Context, id pgtype.UUID) (dbgen.Shipment, error)
	ListShipments(ctx context.Context, arg dbgen.ListShipmentsParams) ([]dbgen.ListShipmentsRow, error)
	CountShipments(ctx context.Context) (int64, error)
}

// Service records shipments and generates their draft invoices atomically.
type Service struct {
	Pool          TxBeginner
	Q             queryProvider
	WithTx        func(pgx.Tx) TxStore
	Invoices      *invoice.Service
	Tariff        Tariff
	DefaultFxRate decimal.Decimal
	Logger        *zerolog.Logger
}

// SubmitInput is the shipment form plus optional invoice overrides.
type SubmitInput struct {
	Type         string              `json:"type" validate:"required"`
	Subtype      string              `json:"subtype" validate:"required"`
	CustomerID   string              `json:"customer_id" validate:"required,uuid"`
	CBM          decimal.Decimal     `json:"cbm"`
	ODC          bool                `json:"odc"`
	Length       *decimal.Decimal    `json:"length,omitempty"`
	Breadth      *decimal.Decimal    `json:"breadth,omitempty"`
	Height       *decimal.Decimal    `json:"height,omitempty"`
	PackageCount *int32              `json:"package_count,omitempty" validate:"omitempty,gt=0"`
	FxRate       *decimal.Decimal    `json:"fx_rate,omitempty"`
	Items        []invoice.LineInput `json:"items,omitempty" validate:"omitempty,dive"`
	Discount     *invoice.Discount   `json:"discount,omitempty"`
	Adjustment   decimal.Decimal     `json:"adjustment"`
}

// Result is what a successful submission created.
type Result struct {
	Shipment Shipment        `json:"shipment"`
	Invoice  invoice.Invoice `json:"invoice"`
}

// Submit validates in, then writes the shipment, its invoice and the invoice
// items in one transaction. Any failure rolls back all of them.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Result, error) {
	if s.Pool == nil || s.WithTx == nil || s.Invoices == nil {
		return Result{}, errors.New("shipment service not configured")
	}
	shipType, err := ParseType(in.Type)
	if err != nil {
		s.recordSubmit(in.Type, err)
		return Result{}, err
	}
	ctx, span := obs.StartSpan(ctx, "shipment", "shipment.submit",
		attribute.String("shipment.type", string(shipType)),
		attribute.String("shipment.subtype", in.Subtype))
	res, err := s.submit(ctx, userID, shipType, in)
	obs.EndSpan(span, err)
	s.recordSubmit(string(shipType), err)
	if err != nil {
		return Result{}, err
	}
	s.Invoices.LogCreated(ctx, res.Invoice)
	s.logger(ctx).Info().
		Str("shipment_id", res.Shipment.ID).
		Str("type", string(res.Shipment.Type)).
		Str("subtype", res.Shipment.Subtype).
		Str("invoice_number", res.Invoice.Number).
		Msg("shipment_created")
	return res, nil
}

func (s *Service) submit(ctx context.Context, userID string, shipType Type, in SubmitInput) (Result, error) {
	if err := ValidateSubtype(shipType, in.Subtype); err != nil {
		return Result{}, err
	}
	if err := validateDimensions(in); err != nil {
		return Result{}, err
	}
	customerID, err := common.ToUUID(in.CustomerID)
	if err != nil {
		return Result{}, common.NewFieldError(ErrCustomerNotFound, "customer_id", in.CustomerID)
	}
	var createdBy pgtype.UUID
	if userID != "" {
		if createdBy, err = common.ToUUID(userID); err != nil {
			return Result{}, fmt.Errorf("invalid user id: %w", err)
		}
	}
	fx := s.DefaultFxRate
	if in.FxRate != nil {
		fx = *in.FxRate
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Result{}, &invoice.StoreError{Op: "begin transaction", Err: err}
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.WithTx(tx)

	customer, err := qtx.GetCustomer(ctx, customerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Result{}, common.NewFieldError(ErrCustomerNotFound, "customer_id", in.CustomerID)
	}
	if err != nil {
		return Result{}, &invoice.StoreError{Op: "get customer", Err: err}
	}

	params := dbgen.InsertShipmentParams{
		ShipmentType: string(shipType),
		Subtype:      in.Subtype,
		CustomerID:   customerID,
		Cbm:          in.CBM,
		Odc:          in.ODC,
		Length:       toNullDecimal(in.Length),
		Breadth:      toNullDecimal(in.Breadth),
		Height:       toNullDecimal(in.Height),
		CreatedBy:    createdBy,
	}
	if in.PackageCount != nil {
		params.PackageCount = pgtype.Int4{Int32: *in.PackageCount, Valid: true}
	}
	row, err := qtx.InsertShipment(ctx, params)
	if err != nil {
		return Result{}, &invoice.StoreError{Op: "insert shipment", Err: err}
	}
	shipment := fromRow(row)
	shipment.CustomerName = customer.CompanyName

	lines := in.Items
	if len(lines) == 0 {
		lines = s.Tariff.DefaultLines(shipment)
	}
	draft := invoice.DraftInput{
		ShipmentID: row.ID,
		Customer: invoice.Party{
			ID:        customer.ID,
			Name:      customer.CompanyName,
			GSTIN:     common.TextValue(customer.Gstin),
			State:     common.TextValue(customer.State),
			StateCode: common.TextValue(customer.StateCode),
		},
		Lines:      lines,
		FxRate:     fx,
		Adjustment: in.Adjustment,
		CreatedBy:  createdBy,
	}
	if in.Discount != nil {
		draft.Discount = *in.Discount
	}
	inv, err := s.Invoices.CreateDraft(ctx, qtx, draft)
	if err != nil {
		return Result{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Result{}, &invoice.StoreError{Op: "commit", Err: err}
	}
	shipment.Invoice = &invoice.Summary{ID: inv.ID, Number: inv.Number, Status: inv.Status}
	return Result{Shipment: shipment, Invoice: inv}, nil
}

// Get returns a shipment with its invoice.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	if s.Q == nil {
		return Detail{}, errors.New("shipment queries not configured")
	}
	shipmentID, err := common.ToUUID(id)
	if err != nil {
		return Detail{}, ErrNotFound
	}
	row, err := s.Q.GetShipment(ctx, shipmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, ErrNotFound
	}
	if err != nil {
		return Detail{}, &invoice.StoreError{Op: "get shipment", Err: err}
	}
	detail := Detail{Shipment: fromRow(row)}
	if s.Invoices != nil {
		inv, err := s.Invoices.GetByShipment(ctx, row.ID)
		switch {
		case err == nil:
			detail.Invoice = &inv
			detail.Shipment.Invoice = &invoice.Summary{ID: inv.ID, Number: inv.Number, Status: inv.Status}
			detail.Shipment.CustomerName = inv.CustomerName
		case !errors.Is(err, invoice.ErrNotFound):
			return Detail{}, err
		}
	}
	return detail, nil
}

// List pages shipments, newest first, with their invoice references.
func (s *Service) List(ctx context.Context, page, perPage int) ([]Shipment, common.Pagination, error) {
	if s.Q == nil {
		return nil, common.Pagination{}, errors.New("shipment queries not configured")
	}
	rows, err := s.Q.ListShipments(ctx, dbgen.ListShipmentsParams{
		Limit:  int32(perPage),
		Offset: common.Offset(page, perPage),
	})
	if err != nil {
		return nil, common.Pagination{}, &invoice.StoreError{Op: "list shipments", Err: err}
	}
	total, err := s.Q.CountShipments(ctx)
	if err != nil {
		return nil, common.Pagination{}, &invoice.StoreError{Op: "count shipments", Err: err}
	}
	out := make([]Shipment, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromListRow(row))
	}
	return out, common.NewPagination(page, perPage, total), nil
}

func validateDimensions(in SubmitInput) error {
	if in.CBM.IsNegative() {
		return common.NewFieldError(ErrInvalidDimensions, "cbm", in.CBM)
	}
	if !in.ODC {
		return nil
	}
	for _, dim := range []struct {
		name string
		v    *decimal.Decimal
	}{{"length", in.Length}, {"breadth", in.Breadth}, {"height", in.Height}} {
		if dim.v == nil || !dim.v.IsPositive() {
			return common.NewFieldError(ErrInvalidDimensions, dim.name, dim.v)
		}
	}
	if in.PackageCount == nil {
		return common.NewFieldError(ErrInvalidDimensions, "package_count", "missing")
	}
	if *in.PackageCount <= 0 {
		return common.NewFieldError(ErrInvalidDimensions, "package_count", *in.PackageCount)
	}
	return nil
}

func (s *Service) recordSubmit(shipType string, err error) {
	if obs.ShipmentsCreatedTotal == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "rejected"
		var se *invoice.StoreError
		if errors.As(err, &se) {
			result = "error"
		}
	}
	if _, perr := ParseType(shipType); perr != nil {
		shipType = "unknown"
	}
	obs.ShipmentsCreatedTotal.WithLabelValues(shipType, result).Inc()
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
