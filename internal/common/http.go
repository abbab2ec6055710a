package common

import (
	"net"
	"net/http"
	"net/netip"
)

// ClientIP returns the caller address without its port. Proxy headers are
// not consulted here: chi's RealIP middleware, mounted first in the router,
// has already folded X-Forwarded-For and X-Real-IP into RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil || r.RemoteAddr == "" {
		return ""
	}
	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return ap.Addr().Unmap().String()
	}
	if addr, err := netip.ParseAddr(r.RemoteAddr); err == nil {
		return addr.Unmap().String()
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
