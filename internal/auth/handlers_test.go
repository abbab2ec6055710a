package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipledger/internal/common"
)

type countingLimiter struct {
	keys map[string]int
}

func (c *countingLimiter) Allow(_ context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error) {
	if c.keys == nil {
		c.keys = make(map[string]int)
	}
	c.keys[key]++
	return c.keys[key] <= max, max - c.keys[key], time.Now().Add(window), nil
}

func newAuthRouter(t *testing.T, limiter AttemptLimiter) (http.Handler, *Service) {
	t.Helper()
	svc, _ := newTestService(t)
	h := &Handler{Service: svc, Validator: common.NewValidator(), Attempts: limiter, MaxAttempts: 2, Window: time.Minute}
	mw := Middleware{Service: svc}

	r := chi.NewRouter()
	r.Post("/auth/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.Get("/auth/me", h.Me)
		r.With(mw.RequireRole(RoleBilling, RoleAdmin)).Post("/finalize", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r, svc
}

func login(router http.Handler, email, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.RemoteAddr = "198.51.100.7:5000"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func tokenFrom(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Data LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)
	return body.Data.AccessToken
}

func TestLoginHandlerAndProtectedRoutes(t *testing.T) {
	router, svc := newAuthRouter(t, nil)
	seedUser(t, svc, "ops@shipledger.example", RoleOperator)
	seedUser(t, svc, "billing@shipledger.example", RoleBilling)

	rec := login(router, "ops@shipledger.example", "correct-horse")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	opsToken := tokenFrom(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+opsToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/finalize", nil)
	req.Header.Set("Authorization", "Bearer "+opsToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	billingToken := tokenFrom(t, login(router, "billing@shipledger.example", "correct-horse"))
	req = httptest.NewRequest(http.MethodPost, "/finalize", nil)
	req.Header.Set("Authorization", "bearer "+billingToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	router, _ := newAuthRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandlerLimitsAttempts(t *testing.T) {
	limiter := &countingLimiter{}
	router, svc := newAuthRouter(t, limiter)
	seedUser(t, svc, "ops@shipledger.example")

	require.Equal(t, http.StatusUnauthorized, login(router, "ops@shipledger.example", "nope").Code)
	require.Equal(t, http.StatusUnauthorized, login(router, "OPS@shipledger.example", "nope").Code)

	rec := login(router, "ops@shipledger.example", "correct-horse")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, 3, limiter.keys["login:198.51.100.7:ops@shipledger.example"])

	require.Equal(t, http.StatusUnauthorized, login(router, "other@shipledger.example", "nope").Code)
}

func TestLoginHandlerValidation(t *testing.T) {
	router, _ := newAuthRouter(t, nil)
	rec := login(router, "not-an-email", "x")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
