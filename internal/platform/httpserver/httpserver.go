package httpserver

import (
	"net/http"
	"time"

	"panguard/internal/platform/config"
)

// New builds an HTTP server with sane defaults for this project. Per-request
// deadlines are enforced by the timeout middleware, so only the header read
// is bounded here.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
