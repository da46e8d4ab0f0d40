package endpoints

import (
	"net/http"
	"strings"
)

// ExtractTokenFromHeaders returns the bearer token, or "" when the header is
// absent or not in Bearer form.
func ExtractTokenFromHeaders(r *http.Request) string {
	header := r.Header.Get("Authorization")

	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(header[len("Bearer "):])
}
