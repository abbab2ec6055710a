package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipledger/internal/app"
	"github.com/noah-isme/shipledger/internal/auth"
	"github.com/noah-isme/shipledger/internal/customer"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
)

type memStore struct {
	mu        sync.Mutex
	users     map[string]dbgen.User
	customers map[string]dbgen.Customer
}

func (m *memStore) CreateUser(_ context.Context, arg dbgen.CreateUserParams) (dbgen.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(arg.Email)
	if _, ok := m.users[key]; ok {
		return dbgen.User{}, &pgconn.PgError{Code: "23505"}
	}
	u := dbgen.User{ID: pgtype.UUID{Bytes: uuid.New(), Valid: true}, Name: arg.Name, Email: arg.Email, PasswordHash: arg.PasswordHash, Roles: arg.Roles}
	m.users[key] = u
	return u, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (dbgen.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return dbgen.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memStore) GetUserByID(context.Context, pgtype.UUID) (dbgen.GetUserByIDRow, error) {
	return dbgen.GetUserByIDRow{}, pgx.ErrNoRows
}

func (m *memStore) InsertCustomer(_ context.Context, arg dbgen.InsertCustomerParams) (dbgen.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[arg.Gstin.String]; ok && arg.Gstin.Valid {
		return dbgen.Customer{}, &pgconn.PgError{Code: "23505"}
	}
	c := dbgen.Customer{ID: pgtype.UUID{Bytes: uuid.New(), Valid: true}, CompanyName: arg.CompanyName, Gstin: arg.Gstin}
	m.customers[arg.Gstin.String] = c
	return c, nil
}

func (m *memStore) GetCustomer(context.Context, pgtype.UUID) (dbgen.Customer, error) {
	return dbgen.Customer{}, pgx.ErrNoRows
}

func (m *memStore) ListCustomers(context.Context, dbgen.ListCustomersParams) ([]dbgen.Customer, error) {
	return nil, nil
}

func (m *memStore) CountCustomers(context.Context) (int64, error) {
	return int64(len(m.customers)), nil
}

func TestSeedIsRepeatable(t *testing.T) {
	store := &memStore{users: map[string]dbgen.User{}, customers: map[string]dbgen.Customer{}}
	authService, err := auth.NewService(auth.Config{Queries: store, Secret: "seed-test"})
	require.NoError(t, err)
	svc := &app.Services{Auth: authService, Customers: &customer.Service{Q: store}}
	opts := seedOptions{adminName: "Ops", adminEmail: "ops@example.com", adminPassword: "s3cret-pass", withCustomers: true}

	var out bytes.Buffer
	require.NoError(t, seed(context.Background(), &out, svc, zerolog.Nop(), opts))
	require.Len(t, store.users, 1)
	require.Equal(t, []string{auth.RoleAdmin}, store.users["ops@example.com"].Roles)
	require.Len(t, store.customers, len(demoCustomers))
	require.Equal(t, len(demoCustomers), strings.Count(out.String(), "\n"))

	out.Reset()
	require.NoError(t, seed(context.Background(), &out, svc, zerolog.Nop(), opts))
	require.Len(t, store.users, 1)
	require.Len(t, store.customers, len(demoCustomers))
	require.Empty(t, out.String())
}

func TestSeedRequiresPassword(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"seed"})
	cmd.SetOut(&bytes.Buffer{})
	require.ErrorContains(t, cmd.Execute(), "--admin-password")
}
