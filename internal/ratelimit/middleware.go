package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/noah-isme/shipledger/internal/common"
)

// Rule limits requests that share a key to Max per Window.
type Rule struct {
	Key    func(*http.Request) string
	Window time.Duration
	Max    int
}

// ByUser keys on the authenticated user, or the client IP for anonymous
// callers.
func ByUser(prefix string) func(*http.Request) string {
	return func(r *http.Request) string {
		if id, ok := common.UserID(r.Context()); ok && id != "" {
			return prefix + "user:" + id
		}
		return prefix + "ip:" + common.ClientIP(r)
	}
}

// Guard enforces rule in front of a handler. When Redis fails the request is
// let through and the error goes to onError, if set.
func (l Limiter) Guard(rule Rule, onError func(error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rule.Key == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, reset, err := l.Allow(r.Context(), rule.Key(r), rule.Window, rule.Max)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				next.ServeHTTP(w, r)
				return
			}
			writeLimitHeaders(w.Header(), rule.Max, remaining, reset)
			if !allowed {
				wait := time.Until(reset).Round(time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(max(int(wait.Seconds()), 1)))
				common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeLimitHeaders(h http.Header, limit, remaining int, reset time.Time) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(max(limit, 0)))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
}
