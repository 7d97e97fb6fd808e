package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"panguard/internal/audit"
	"panguard/pkg/platform/privacy"
	"panguard/pkg/requestcontext"
)

// Principal identifies an authenticated API client.
type Principal struct {
	ClientID string
	// Method records which credential proved the identity: "jwt" or "api_key".
	Method string
}

// Authenticator verifies request credentials and resolves the principal.
type Authenticator interface {
	Authenticate(r *http.Request) (Principal, error)
}

// GetClientID retrieves the authenticated client ID from the context.
func GetClientID(ctx context.Context) string {
	return requestcontext.ClientID(ctx)
}

// AuthOption configures RequireAuth.
type AuthOption func(*authOptions)

type authOptions struct {
	audit *audit.Publisher
}

// WithAuthAudit records a security event for every rejected credential.
func WithAuthAudit(publisher *audit.Publisher) AuthOption {
	return func(o *authOptions) {
		o.audit = publisher
	}
}

// RequireAuth rejects requests that carry no valid credential. The resolved
// client ID is stored in the context for handlers, logging, and rate limits.
func RequireAuth(auth Authenticator, logger *slog.Logger, opts ...AuthOption) func(http.Handler) http.Handler {
	options := authOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := auth.Authenticate(r)
			if err != nil {
				ctx := r.Context()
				requestID := GetRequestID(ctx)
				logger.WarnContext(ctx, "unauthorized request",
					"error", err,
					"request_id", requestID,
				)

				if options.audit != nil {
					event := audit.Event{
						Action:  audit.EventAuthFailed,
						Outcome: "denied",
						Reason:  "invalid_credentials",
					}
					if ip := requestcontext.ClientIP(ctx); ip != "" {
						event.ClientIP = privacy.AnonymizeIP(ip)
					}
					options.audit.Emit(ctx, event)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, err = w.Write([]byte(`{"error":"unauthorized","error_description":"Missing or invalid credentials"}`))
				if err != nil {
					logger.ErrorContext(ctx, "failed to write unauthorized response",
						"error", err,
						"request_id", requestID,
					)
				}
				return
			}

			ctx := requestcontext.WithClientID(r.Context(), principal.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
