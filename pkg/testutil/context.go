package testutil

import (
	"net/http"

	"panguard/pkg/requestcontext"
)

// WithClientMetadata returns the request with network metadata on its context,
// matching what the metadata middleware extracts for real traffic.
func WithClientMetadata(req *http.Request, ip, userAgent, device string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, userAgent, device)
	return req.WithContext(ctx)
}
