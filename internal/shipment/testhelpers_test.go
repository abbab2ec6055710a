package shipment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
	"github.com/noah-isme/shipledger/internal/invoice"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUUID() pgtype.UUID { return pgtype.UUID{Bytes: uuid.New(), Valid: true} }

// fakeDB keeps committed rows; each transaction stages its writes and only
// publishes them on Commit.
type fakeDB struct {
	mu        sync.Mutex
	seq       int64
	customers map[[16]byte]dbgen.Customer
	shipments []dbgen.Shipment
	invoices  []dbgen.Invoice
	items     []dbgen.InvoiceItem

	failItemAt int
	lastTx     *fakeTx
}

func newFakeDB() *fakeDB {
	return &fakeDB{customers: make(map[[16]byte]dbgen.Customer)}
}

func (db *fakeDB) addCustomer(name string) dbgen.Customer {
	db.mu.Lock()
	defer db.mu.Unlock()
	c := dbgen.Customer{
		ID:          newUUID(),
		CompanyName: name,
		Gstin:       pgtype.Text{String: "27AAACA1234A1Z5", Valid: true},
		State:       pgtype.Text{String: "Maharashtra", Valid: true},
		StateCode:   pgtype.Text{String: "27", Valid: true},
	}
	db.customers[c.ID.Bytes] = c
	return c
}

func (db *fakeDB) BeginTx(ctx context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	tx := &fakeTx{db: db}
	db.lastTx = tx
	return tx, nil
}

type fakeTx struct {
	pgx.Tx
	db         *fakeDB
	committed  bool
	rolledBack bool

	shipments []dbgen.Shipment
	invoices  []dbgen.Invoice
	items     []dbgen.InvoiceItem
	itemCalls int
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	if tx.rolledBack {
		return pgx.ErrTxClosed
	}
	tx.committed = true
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	tx.db.shipments = append(tx.db.shipments, tx.shipments...)
	tx.db.invoices = append(tx.db.invoices, tx.invoices...)
	tx.db.items = append(tx.db.items, tx.items...)
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	tx.shipments, tx.invoices, tx.items = nil, nil, nil
	return nil
}

func (tx *fakeTx) GetCustomer(ctx context.Context, id pgtype.UUID) (dbgen.Customer, error) {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	c, ok := tx.db.customers[id.Bytes]
	if !ok {
		return dbgen.Customer{}, pgx.ErrNoRows
	}
	return c, nil
}

func (tx *fakeTx) InsertShipment(ctx context.Context, arg dbgen.InsertShipmentParams) (dbgen.Shipment, error) {
	row := dbgen.Shipment{
		ID:           newUUID(),
		ShipmentType: arg.ShipmentType,
		Subtype:      arg.Subtype,
		CustomerID:   arg.CustomerID,
		Cbm:          arg.Cbm,
		Odc:          arg.Odc,
		Length:       arg.Length,
		Breadth:      arg.Breadth,
		Height:       arg.Height,
		PackageCount: arg.PackageCount,
		Status:       "created",
		CreatedBy:    arg.CreatedBy,
		CreatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	tx.shipments = append(tx.shipments, row)
	return row, nil
}

func (tx *fakeTx) NextInvoiceSeq(ctx context.Context) (int64, error) {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	tx.db.seq++
	return tx.db.seq, nil
}

func (tx *fakeTx) InsertInvoice(ctx context.Context, arg dbgen.InsertInvoiceParams) (dbgen.Invoice, error) {
	row := dbgen.Invoice{
		ID:            newUUID(),
		InvoiceNumber: arg.InvoiceNumber,
		ShipmentID:    arg.ShipmentID,
		CustomerID:    arg.CustomerID,
		CustomerName:  arg.CustomerName,
		CustomerGstin: arg.CustomerGstin,
		InvoiceDate:   arg.InvoiceDate,
		DueDate:       arg.DueDate,
		PlaceOfSupply: arg.PlaceOfSupply,
		State:         arg.State,
		StateCode:     arg.StateCode,
		FxRate:        arg.FxRate,
		TaxableUsd:    arg.TaxableUsd,
		TaxableInr:    arg.TaxableInr,
		SubtotalUsd:   arg.SubtotalUsd,
		SubtotalInr:   arg.SubtotalInr,
		TaxUsd:        arg.TaxUsd,
		TaxInr:        arg.TaxInr,
		DiscountKind:  arg.DiscountKind,
		DiscountValue: arg.DiscountValue,
		DiscountInr:   arg.DiscountInr,
		AdjustmentInr: arg.AdjustmentInr,
		GrandTotalInr: arg.GrandTotalInr,
		GrandTotalUsd: arg.GrandTotalUsd,
		Status:        dbgen.InvoiceStatusDraft,
		CreatedBy:     arg.CreatedBy,
	}
	tx.invoices = append(tx.invoices, row)
	return row, nil
}

func (tx *fakeTx) InsertInvoiceItem(ctx context.Context, arg dbgen.InsertInvoiceItemParams) (dbgen.InvoiceItem, error) {
	tx.itemCalls++
	if tx.db.failItemAt > 0 && tx.itemCalls == tx.db.failItemAt {
		return dbgen.InvoiceItem{}, errors.New("check constraint violation")
	}
	row := dbgen.InvoiceItem{
		ID:           newUUID(),
		InvoiceID:    arg.InvoiceID,
		Position:     arg.Position,
		Description:  arg.Description,
		Unit:         arg.Unit,
		Quantity:     arg.Quantity,
		Rate:         arg.Rate,
		Currency:     arg.Currency,
		FxRate:       arg.FxRate,
		AmountNative: arg.AmountNative,
		AmountUsd:    arg.AmountUsd,
		AmountInr:    arg.AmountInr,
		HsnSac:       arg.HsnSac,
		TaxPercent:   arg.TaxPercent,
		TaxableUsd:   arg.TaxableUsd,
		TaxableInr:   arg.TaxableInr,
		TaxNative:    arg.TaxNative,
		TaxUsd:       arg.TaxUsd,
		TaxInr:       arg.TaxInr,
		TotalNative:  arg.TotalNative,
	}
	tx.items = append(tx.items, row)
	return row, nil
}

// read side over committed rows

func (db *fakeDB) GetShipment(ctx context.Context, id pgtype.UUID) (dbgen.Shipment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, s := range db.shipments {
		if s.ID.Bytes == id.Bytes {
			return s, nil
		}
	}
	return dbgen.Shipment{}, pgx.ErrNoRows
}

func (db *fakeDB) ListShipments(ctx context.Context, arg dbgen.ListShipmentsParams) ([]dbgen.ListShipmentsRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := []dbgen.ListShipmentsRow{}
	for i := len(db.shipments) - 1; i >= 0; i-- {
		s := db.shipments[i]
		row := dbgen.ListShipmentsRow{
			ID:           s.ID,
			ShipmentType: s.ShipmentType,
			Subtype:      s.Subtype,
			CustomerID:   s.CustomerID,
			Cbm:          s.Cbm,
			Odc:          s.Odc,
			Status:       s.Status,
			CreatedAt:    s.CreatedAt,
			CustomerName: db.customers[s.CustomerID.Bytes].CompanyName,
		}
		for _, inv := range db.invoices {
			if inv.ShipmentID.Bytes == s.ID.Bytes {
				row.InvoiceID = inv.ID
				row.InvoiceNumber = pgtype.Text{String: inv.InvoiceNumber, Valid: true}
				row.InvoiceStatus = dbgen.NullInvoiceStatus{InvoiceStatus: inv.Status, Valid: true}
			}
		}
		out = append(out, row)
	}
	start := min(int(arg.Offset), len(out))
	end := min(start+int(arg.Limit), len(out))
	return out[start:end], nil
}

func (db *fakeDB) CountShipments(ctx context.Context) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return int64(len(db.shipments)), nil
}

func (db *fakeDB) FinalizeInvoice(ctx context.Context, id pgtype.UUID) (dbgen.Invoice, error) {
	return dbgen.Invoice{}, errors.New("not used")
}

func (db *fakeDB) GetInvoice(ctx context.Context, id pgtype.UUID) (dbgen.Invoice, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, inv := range db.invoices {
		if inv.ID.Bytes == id.Bytes {
			return inv, nil
		}
	}
	return dbgen.Invoice{}, pgx.ErrNoRows
}

func (db *fakeDB) GetInvoiceByShipment(ctx context.Context, shipmentID pgtype.UUID) (dbgen.Invoice, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, inv := range db.invoices {
		if inv.ShipmentID.Bytes == shipmentID.Bytes {
			return inv, nil
		}
	}
	return dbgen.Invoice{}, pgx.ErrNoRows
}

func (db *fakeDB) ListInvoiceItems(ctx context.Context, invoiceID pgtype.UUID) ([]dbgen.InvoiceItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := []dbgen.InvoiceItem{}
	for _, it := range db.items {
		if it.InvoiceID.Bytes == invoiceID.Bytes {
			out = append(out, it)
		}
	}
	return out, nil
}

func (db *fakeDB) ListInvoices(ctx context.Context, arg dbgen.ListInvoicesParams) ([]dbgen.Invoice, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]dbgen.Invoice(nil), db.invoices...), nil
}

func (db *fakeDB) CountInvoices(ctx context.Context, status dbgen.NullInvoiceStatus) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return int64(len(db.invoices)), nil
}

func testTariff() Tariff {
	return Tariff{
		HandlingUSDPerCBM: map[Type]decimal.Decimal{Inbound: dec("12"), Outbound: dec("15")},
		TransportINR:      dec("4500"),
		ODCSurchargeINR:   dec("1500"),
		TaxPercent:        dec("18"),
		HSNSAC:            "996719",
	}
}

func newTestService(db *fakeDB) *Service {
	b := invoice.NewBuilder(invoice.BuilderConfig{Prefix: "LGS", PaymentTermsDays: 30}).
		WithClock(func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) })
	return &Service{
		Pool:          db,
		Q:             db,
		WithTx:        func(tx pgx.Tx) TxStore { return tx.(*fakeTx) },
		Invoices:      &invoice.Service{Q: db, Builder: b},
		Tariff:        testTariff(),
		DefaultFxRate: dec("83.5"),
	}
}
