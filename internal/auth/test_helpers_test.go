package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
)

type fakeQueries struct {
	mu           sync.Mutex
	usersByEmail map[string]dbgen.User
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{usersByEmail: make(map[string]dbgen.User)}
}

func (f *fakeQueries) CreateUser(_ context.Context, arg dbgen.CreateUserParams) (dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(arg.Email)
	if _, exists := f.usersByEmail[key]; exists {
		return dbgen.User{}, &pgconn.PgError{Code: "23505"}
	}
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	user := dbgen.User{
		ID:           pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Roles:        arg.Roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.usersByEmail[key] = user
	return user, nil
}

func (f *fakeQueries) GetUserByEmail(_ context.Context, email string) (dbgen.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.usersByEmail[strings.ToLower(email)]
	if !ok {
		return dbgen.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeQueries) GetUserByID(_ context.Context, id pgtype.UUID) (dbgen.GetUserByIDRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.usersByEmail {
		if u.ID.Bytes == id.Bytes {
			return dbgen.GetUserByIDRow{ID: u.ID, Name: u.Name, Email: u.Email, Roles: u.Roles, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}, nil
		}
	}
	return dbgen.GetUserByIDRow{}, pgx.ErrNoRows
}

func newTestService(t *testing.T) (*Service, *fakeQueries) {
	t.Helper()
	queries := newFakeQueries()
	svc, err := NewService(Config{
		Queries:        queries,
		Secret:         "super-secret-key",
		AccessTokenTTL: time.Hour,
		Issuer:         "shipledger",
		Audience:       "shipledger-console",
	})
	require.NoError(t, err)
	return svc, queries
}

func seedUser(t *testing.T, svc *Service, email string, roles ...string) User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), "Staff", email, "correct-horse", roles)
	require.NoError(t, err)
	return user
}
