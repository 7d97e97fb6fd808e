package metadata

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"panguard/pkg/requestcontext"
)

// ClientMetadata extracts the client IP address, User-Agent, and a coarse
// device summary from the request and adds them to the context for handlers,
// rate limiting, and audit events.
// This middleware should be applied early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		ua := r.Header.Get("User-Agent")

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, ua, DeviceSummary(ua))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientIP retrieves the client IP address from the context.
func GetClientIP(ctx context.Context) string {
	return requestcontext.ClientIP(ctx)
}

// GetUserAgent retrieves the User-Agent from the context.
func GetUserAgent(ctx context.Context) string {
	return requestcontext.UserAgent(ctx)
}

// GetDevice retrieves the coarse device summary from the context.
func GetDevice(ctx context.Context) string {
	return requestcontext.Device(ctx)
}

// DeviceSummary condenses a User-Agent header into a short description for
// audit records, e.g. "Chrome on Windows 10" or "bot". The full header is
// kept separately; this exists so audit consumers do not need a parser.
func DeviceSummary(uaHeader string) string {
	if uaHeader == "" {
		return ""
	}

	ua := useragent.New(uaHeader)
	if ua.Bot() {
		return "bot"
	}

	name, _ := ua.Browser()
	os := ua.OS()
	switch {
	case name == "" && os == "":
		return "unknown"
	case name == "":
		return os
	case os == "":
		return name
	}
	if ua.Mobile() {
		return name + " on " + os + " (mobile)"
	}
	return name + " on " + os
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// Check X-Forwarded-For header first (standard for proxied requests)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...)
		// Take the first IP which is the original client
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// Check X-Real-IP header (used by nginx and other proxies)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr (direct connection)
	// RemoteAddr is in format "ip:port", so we need to strip the port
	if addr := r.RemoteAddr; addr != "" {
		// For IPv6, format is [::1]:port
		// For IPv4, format is 127.0.0.1:port
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
