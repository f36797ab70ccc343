package security

import (
	"net/http"
	"strings"
)

// UnknownIP is the fallback when no client address can be derived.
const UnknownIP = "unknown"

// ClientIP derives the client address from proxy headers: the first hop of
// X-Forwarded-For, then X-Real-IP, then "unknown". A nil request maps to
// "unknown" as well, so callers outside an HTTP context can pass nothing.
func ClientIP(r *http.Request) string {
	if r == nil {
		return UnknownIP
	}

	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
		return UnknownIP
	}

	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}

	return UnknownIP
}
