package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	cases := map[string]string{
		"203.0.113.9:1234":       "203.0.113.9",
		"[2001:db8::1]:443":      "2001:db8::1",
		"[::ffff:10.0.0.2]:8080": "10.0.0.2",
		"198.51.100.4":           "198.51.100.4",
		"":                       "",
	}
	for remote, want := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = remote
		require.Equal(t, want, ClientIP(req), "remote %q", remote)
	}
	require.Empty(t, ClientIP(nil))
}
