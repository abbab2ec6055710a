package app

import (
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/shipledger/internal/audit"
	"github.com/noah-isme/shipledger/internal/auth"
	"github.com/noah-isme/shipledger/internal/config"
	"github.com/noah-isme/shipledger/internal/customer"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
	"github.com/noah-isme/shipledger/internal/invoice"
	"github.com/noah-isme/shipledger/internal/shipment"
)

// Services groups the domain services built from configuration.
type Services struct {
	Audit     *audit.Service
	Auth      *auth.Service
	Customers *customer.Service
	Invoices  *invoice.Service
	Shipments *shipment.Service
}

// NewBuilder returns the invoice builder for cfg.
func NewBuilder(cfg *config.Config) *invoice.Builder {
	return invoice.NewBuilder(invoice.BuilderConfig{
		Prefix:           cfg.Invoice.Prefix,
		PaymentTermsDays: cfg.Invoice.PaymentTermsDays,
		Location:         cfg.Location,
	})
}

// NewTariff maps the configured tariff onto shipment types.
func NewTariff(t config.Tariff) shipment.Tariff {
	return shipment.Tariff{
		HandlingUSDPerCBM: map[shipment.Type]decimal.Decimal{
			shipment.Inbound:  t.InboundHandlingUSD,
			shipment.Outbound: t.OutboundHandlingUSD,
		},
		TransportINR:    t.TransportINR,
		ODCSurchargeINR: t.ODCSurchargeINR,
		TaxPercent:      t.TaxPercent,
		HSNSAC:          t.HSNSAC,
	}
}

// NewSeller converts the configured issuer into the invoice header.
func NewSeller(s config.Seller) invoice.Seller {
	return invoice.Seller{
		Name:          s.Name,
		AddressLines:  s.AddressLines,
		GSTIN:         s.GSTIN,
		PAN:           s.PAN,
		State:         s.State,
		StateCode:     s.StateCode,
		Email:         s.Email,
		Phone:         s.Phone,
		BankName:      s.BankName,
		AccountNumber: s.AccountNumber,
		IFSC:          s.IFSC,
	}
}

// NewServices wires the domain services onto d.
func NewServices(d *Dependencies) (*Services, error) {
	cfg := d.Config
	logger := d.Logger

	authService, err := auth.NewService(auth.Config{
		Queries:        d.Queries,
		Secret:         cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
		Issuer:         cfg.JWTIssuer,
		Audience:       cfg.JWTAudience,
	})
	if err != nil {
		return nil, err
	}
	invoices := &invoice.Service{Q: d.Queries, Builder: NewBuilder(cfg), Logger: &logger}
	return &Services{
		Audit: &audit.Service{
			Store:        d.Queries,
			Enabled:      cfg.Audit.Enabled,
			SamplingRate: cfg.Audit.SamplingRate,
		},
		Auth:      authService,
		Customers: &customer.Service{Q: d.Queries, Logger: &logger},
		Invoices:  invoices,
		Shipments: &shipment.Service{
			Pool:          d.DB,
			Q:             d.Queries,
			WithTx:        func(tx pgx.Tx) shipment.TxStore { return d.Queries.WithTx(tx) },
			Invoices:      invoices,
			Tariff:        NewTariff(cfg.Tariff),
			DefaultFxRate: cfg.Invoice.DefaultFxRate,
			Logger:        &logger,
		},
	}, nil
}

var _ shipment.TxStore = (*dbgen.Queries)(nil)
