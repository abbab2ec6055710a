package security

import (
	"fmt"
	"net/http"
	"strings"
)

// Every response gets these. The CSP admits the inline stylesheet of the
// rendered invoice document and nothing else; JSON responses need none.
var baseHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "no-referrer",
	"Content-Security-Policy": "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'",
	"Cache-Control":           "no-store",
}

const defaultHSTSMaxAge = 365 * 24 * 60 * 60

// Headers sets the response security headers.
type Headers struct {
	EnableHSTS            bool
	HSTSMaxAge            int // seconds; one year when zero
	HSTSIncludeSubdomains bool
}

func (h Headers) hsts() string {
	if !h.EnableHSTS {
		return ""
	}
	age := h.HSTSMaxAge
	if age <= 0 {
		age = defaultHSTSMaxAge
	}
	v := fmt.Sprintf("max-age=%d", age)
	if h.HSTSIncludeSubdomains {
		v += "; includeSubDomains"
	}
	return v
}

// Middleware writes the headers before calling next. Strict-Transport-Security
// is only sent on HTTPS requests, either direct TLS or via a proxy that sets
// X-Forwarded-Proto.
func (h Headers) Middleware(next http.Handler) http.Handler {
	hsts := h.hsts()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dst := w.Header()
		for k, v := range baseHeaders {
			dst.Set(k, v)
		}
		if hsts != "" && isHTTPS(r) {
			dst.Set("Strict-Transport-Security", hsts)
		}
		next.ServeHTTP(w, r)
	})
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
