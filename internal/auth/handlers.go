package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/shipledger/internal/common"
)

// AttemptLimiter counts login attempts in a sliding window.
// ratelimit.Limiter satisfies it.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error)
}

// Handler exposes HTTP handlers for authentication endpoints.
type Handler struct {
	Service     *Service
	Validator   *validator.Validate
	Attempts    AttemptLimiter
	MaxAttempts int
	Window      time.Duration
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "auth service not configured", nil)
		return
	}
	var req loginRequest
	if !common.Bind(w, r, h.Validator, &req) {
		return
	}
	if !h.allowAttempt(w, r, req.Email) {
		return
	}
	result, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, result)
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "auth service not configured", nil)
		return
	}
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
		return
	}
	user, err := h.Service.Me(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, user)
}

// allowAttempt applies the per client IP and email login limit. Limiter
// failures let the attempt through.
func (h *Handler) allowAttempt(w http.ResponseWriter, r *http.Request, email string) bool {
	if h.Attempts == nil || h.MaxAttempts <= 0 {
		return true
	}
	key := "login:" + common.ClientIP(r) + ":" + strings.ToLower(strings.TrimSpace(email))
	allowed, _, resetAt, err := h.Attempts.Allow(r.Context(), key, h.Window, h.MaxAttempts)
	if err != nil || allowed {
		return true
	}
	retryAfter := max(int(time.Until(resetAt).Seconds()), 0)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	common.JSONError(w, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "too many login attempts", nil)
	return false
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		common.JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
