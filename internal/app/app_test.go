package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/config"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
)

func TestMigrateDSN(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/ship?sslmode=disable": "pgx5://u:p@localhost:5432/ship?sslmode=disable",
		"postgresql://u:p@db/ship":                           "pgx5://u:p@db/ship",
		"pgx5://u:p@db/ship":                                 "pgx5://u:p@db/ship",
		"  postgres://u@db/ship?search_path=public  ":        "pgx5://u@db/ship?search_path=public",
	}
	for in, want := range cases {
		got, err := migrateDSN(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	_, err := migrateDSN("mysql://u@db/ship")
	require.Error(t, err)
}

func testDependencies(t *testing.T) *Dependencies {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg, err := config.LoadForTests(map[string]string{
		"DATABASE_URL": "postgres://localhost/ship",
		"REDIS_URL":    "redis://" + mr.Addr(),
		"JWT_SECRET":   "router-test-secret",
	})
	require.NoError(t, err)

	return &Dependencies{
		Config:    cfg,
		Logger:    zerolog.Nop(),
		Queries:   dbgen.New(nil),
		Redis:     rdb,
		Validator: common.NewValidator(),
	}
}

func TestNewServicesMapsTariff(t *testing.T) {
	d := testDependencies(t)
	svc, err := NewServices(d)
	require.NoError(t, err)
	require.NotNil(t, svc.Auth)
	require.Same(t, svc.Invoices, svc.Shipments.Invoices)
	require.True(t, svc.Shipments.DefaultFxRate.Equal(d.Config.Invoice.DefaultFxRate))
	require.Len(t, svc.Shipments.Tariff.HandlingUSDPerCBM, 2)
}

func TestRouterPublicAndProtectedRoutes(t *testing.T) {
	d := testDependencies(t)
	svc, err := NewServices(d)
	require.NoError(t, err)
	h := NewRouter(d, svc, RouterOptions{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shipment-types", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Inbound")

	for _, path := range []string{"/api/v1/customers", "/api/v1/shipments", "/api/v1/invoices", "/api/v1/auth/me", "/api/v1/audit-logs"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPILimiterRejectsOverRate(t *testing.T) {
	d := testDependencies(t)
	mw, err := NewAPILimiter(d.Redis, "2-M")
	require.NoError(t, err)

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shipment-types", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestAPILimiterRejectsBadRate(t *testing.T) {
	d := testDependencies(t)
	_, err := NewAPILimiter(d.Redis, "lots")
	require.Error(t, err)
}

func TestChainAndWritesOnly(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	final := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	chain(tag("outer"), tag("inner"))(final).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)

	order = nil
	h := writesOnly(tag("audit"))(final)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Empty(t, order)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, []string{"audit"}, order)
}
