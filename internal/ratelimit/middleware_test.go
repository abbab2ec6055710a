package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipledger/internal/common"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGuardEnforcesLimitPerUser(t *testing.T) {
	limiter := Limiter{Client: newTestClient(t), Prefix: "ratelimit:"}
	limited := limiter.Guard(Rule{Key: ByUser("export:"), Window: time.Minute, Max: 1}, nil)(okHandler())

	asUser := func(id string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/invoices/x/export.xlsx", nil)
		return req.WithContext(common.WithUserID(req.Context(), id))
	}

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, asUser("u1"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, asUser("u1"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "RATE_LIMITED")
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, asUser("u2"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	var reported error
	guard := Limiter{Client: client}.Guard(Rule{Key: ByUser(""), Window: time.Second, Max: 1}, func(err error) { reported = err })
	rec := httptest.NewRecorder()
	guard(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Error(t, reported)
}

func TestByUserFallsBackToClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	require.Equal(t, "p:ip:203.0.113.9", ByUser("p:")(req))
}

func TestGuardWithoutKeyIsPassthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	Limiter{}.Guard(Rule{}, nil)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
