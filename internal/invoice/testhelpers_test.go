package invoice

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
)

type memStore struct {
	mu       sync.Mutex
	seq      int64
	invoices map[[16]byte]dbgen.Invoice
	items    map[[16]byte][]dbgen.InvoiceItem
	order    [][16]byte

	failItemAt int
	itemCalls  int
}

func newMemStore() *memStore {
	return &memStore{
		invoices: make(map[[16]byte]dbgen.Invoice),
		items:    make(map[[16]byte][]dbgen.InvoiceItem),
	}
}

func newUUID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func (m *memStore) NextInvoiceSeq(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, nil
}

func (m *memStore) InsertInvoice(ctx context.Context, arg dbgen.InsertInvoiceParams) (dbgen.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
		CreatedAt:     pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	m.invoices[row.ID.Bytes] = row
	m.order = append(m.order, row.ID.Bytes)
	return row, nil
}

func (m *memStore) InsertInvoiceItem(ctx context.Context, arg dbgen.InsertInvoiceItemParams) (dbgen.InvoiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.itemCalls++
	if m.failItemAt > 0 && m.itemCalls == m.failItemAt {
		return dbgen.InvoiceItem{}, errors.New("insert failed")
	}
	if _, ok := m.invoices[arg.InvoiceID.Bytes]; !ok {
		return dbgen.InvoiceItem{}, errors.New("foreign key violation")
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
	m.items[arg.InvoiceID.Bytes] = append(m.items[arg.InvoiceID.Bytes], row)
	return row, nil
}

func (m *memStore) FinalizeInvoice(ctx context.Context, id pgtype.UUID) (dbgen.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.invoices[id.Bytes]
	if !ok || row.Status != dbgen.InvoiceStatusDraft {
		return dbgen.Invoice{}, pgx.ErrNoRows
	}
	row.Status = dbgen.InvoiceStatusFinalized
	row.FinalizedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	m.invoices[id.Bytes] = row
	return row, nil
}

func (m *memStore) GetInvoice(ctx context.Context, id pgtype.UUID) (dbgen.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.invoices[id.Bytes]
	if !ok {
		return dbgen.Invoice{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *memStore) GetInvoiceByShipment(ctx context.Context, shipmentID pgtype.UUID) (dbgen.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.invoices {
		if row.ShipmentID.Bytes == shipmentID.Bytes {
			return row, nil
		}
	}
	return dbgen.Invoice{}, pgx.ErrNoRows
}

func (m *memStore) ListInvoiceItems(ctx context.Context, invoiceID pgtype.UUID) ([]dbgen.InvoiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := append([]dbgen.InvoiceItem(nil), m.items[invoiceID.Bytes]...)
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (m *memStore) filtered(status dbgen.NullInvoiceStatus) []dbgen.Invoice {
	out := []dbgen.Invoice{}
	for i := len(m.order) - 1; i >= 0; i-- {
		row := m.invoices[m.order[i]]
		if status.Valid && row.Status != status.InvoiceStatus {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (m *memStore) ListInvoices(ctx context.Context, arg dbgen.ListInvoicesParams) ([]dbgen.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.filtered(arg.Status)
	start := int(arg.Offset)
	if start > len(rows) {
		start = len(rows)
	}
	end := start + int(arg.Limit)
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], nil
}

func (m *memStore) CountInvoices(ctx context.Context, status dbgen.NullInvoiceStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.filtered(status))), nil
}
