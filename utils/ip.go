package utils

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP resolves the address rate limiting and access logs key on.
// Behind the ingress proxy the first X-Forwarded-For hop is the caller;
// X-Real-IP covers the nginx sidecar used in staging.
func RealClientIP(r *http.Request) string {
	if xfwd := r.Header.Get("X-Forwarded-For"); xfwd != "" {
		if idx := strings.IndexByte(xfwd, ','); idx > 0 {
			return strings.TrimSpace(xfwd[:idx])
		}
		return strings.TrimSpace(xfwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
