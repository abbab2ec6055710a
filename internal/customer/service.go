package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/shipledger/internal/common"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
	"github.com/noah-isme/shipledger/internal/invoice"
)

var (
	// ErrNotFound is returned when the customer id is unknown.
	ErrNotFound = errors.New("customer not found")
	// ErrDuplicateGSTIN is returned when another customer already holds the GSTIN.
	ErrDuplicateGSTIN = errors.New("gstin already registered")
)

var nopLogger = zerolog.Nop()

// Customer is the billing party of a shipment.
type Customer struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"company_name"`
	GSTIN        string    `json:"gstin,omitempty"`
	BOERef       string    `json:"boe_ref,omitempty"`
	SecondaryRef string    `json:"secondary_ref,omitempty"`
	AddressLine1 string    `json:"address_line1,omitempty"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	StateCode    string    `json:"state_code,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Input is the create payload.
type Input struct {
	CompanyName  string `json:"company_name" validate:"required,max=200"`
	GSTIN        string `json:"gstin" validate:"omitempty,len=15,alphanum"`
	BOERef       string `json:"boe_ref" validate:"omitempty,max=64"`
	SecondaryRef string `json:"secondary_ref" validate:"omitempty,max=64"`
	AddressLine1 string `json:"address_line1" validate:"omitempty,max=200"`
	AddressLine2 string `json:"address_line2" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"omitempty,max=100"`
	State        string `json:"state" validate:"omitempty,max=100"`
	StateCode    string `json:"state_code" validate:"omitempty,numeric,len=2"`
	ContactName  string `json:"contact_name" validate:"omitempty,max=120"`
	Phone        string `json:"phone" validate:"omitempty,max=32"`
	Email        string `json:"email" validate:"omitempty,email"`
}

type queryProvider interface {
	InsertCustomer(ctx context.Context, arg dbgen.InsertCustomerParams) (dbgen.Customer, error)
	GetCustomer(ctx context.Context, id pgtype.UUID) (dbgen.Customer, error)
	ListCustomers(ctx context.Context, arg dbgen.ListCustomersParams) ([]dbgen.Customer, error)
	CountCustomers(ctx context.Context) (int64, error)
}

// Service manages the customer directory.
type Service struct {
	Q      queryProvider
	Logger *zerolog.Logger
}

// Create stores a new customer. GSTINs are upper-cased before storage.
func (s *Service) Create(ctx context.Context, in Input) (Customer, error) {
	if s.Q == nil {
		return Customer{}, errors.New("customer queries not configured")
	}
	gstin := strings.ToUpper(strings.TrimSpace(in.GSTIN))
	row, err := s.Q.InsertCustomer(ctx, dbgen.InsertCustomerParams{
		CompanyName:  strings.TrimSpace(in.CompanyName),
		Gstin:        common.Text(gstin),
		BoeRef:       common.Text(in.BOERef),
		SecondaryRef: common.Text(in.SecondaryRef),
		AddressLine1: common.Text(in.AddressLine1),
		AddressLine2: common.Text(in.AddressLine2),
		City:         common.Text(in.City),
		State:        common.Text(in.State),
		StateCode:    common.Text(in.StateCode),
		ContactName:  common.Text(in.ContactName),
		Phone:        common.Text(in.Phone),
		Email:        common.Text(strings.ToLower(strings.TrimSpace(in.Email))),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Customer{}, common.NewFieldError(ErrDuplicateGSTIN, "gstin", gstin)
		}
		return Customer{}, &invoice.StoreError{Op: "insert customer", Err: err}
	}
	c := fromRow(row)
	s.logger(ctx).Info().Str("customer_id", c.ID).Msg("customer_created")
	return c, nil
}

// Get returns one customer.
func (s *Service) Get(ctx context.Context, id string) (Customer, error) {
	if s.Q == nil {
		return Customer{}, errors.New("customer queries not configured")
	}
	uid, err := common.ToUUID(id)
	if err != nil {
		return Customer{}, ErrNotFound
	}
	row, err := s.Q.GetCustomer(ctx, uid)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	if err != nil {
		return Customer{}, &invoice.StoreError{Op: "get customer", Err: err}
	}
	return fromRow(row), nil
}

// List pages customers by company name.
func (s *Service) List(ctx context.Context, page, perPage int) ([]Customer, common.Pagination, error) {
	if s.Q == nil {
		return nil, common.Pagination{}, errors.New("customer queries not configured")
	}
	rows, err := s.Q.ListCustomers(ctx, dbgen.ListCustomersParams{
		Limit:  int32(perPage),
		Offset: common.Offset(page, perPage),
	})
	if err != nil {
		return nil, common.Pagination{}, &invoice.StoreError{Op: "list customers", Err: err}
	}
	total, err := s.Q.CountCustomers(ctx)
	if err != nil {
		return nil, common.Pagination{}, &invoice.StoreError{Op: "count customers", Err: err}
	}
	out := make([]Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, common.NewPagination(page, perPage, total), nil
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

func fromRow(row dbgen.Customer) Customer {
	return Customer{
		ID:           common.UUIDString(row.ID),
		CompanyName:  row.CompanyName,
		GSTIN:        common.TextValue(row.Gstin),
		BOERef:       common.TextValue(row.BoeRef),
		SecondaryRef: common.TextValue(row.SecondaryRef),
		AddressLine1: common.TextValue(row.AddressLine1),
		AddressLine2: common.TextValue(row.AddressLine2),
		City:         common.TextValue(row.City),
		State:        common.TextValue(row.State),
		StateCode:    common.TextValue(row.StateCode),
		ContactName:  common.TextValue(row.ContactName),
		Phone:        common.TextValue(row.Phone),
		Email:        common.TextValue(row.Email),
		CreatedAt:    common.TimeValue(row.CreatedAt),
	}
}
