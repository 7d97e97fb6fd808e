// Package httptransport assembles the HTTP API: the middleware chain, the
// versioned endpoint mounts, and the health and metrics surfaces.
package httptransport

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"panguard/internal/audit"
	"panguard/internal/platform/config"
	"panguard/internal/platform/metrics"
	"panguard/internal/platform/middleware"
	platformredis "panguard/internal/platform/redis"
	"panguard/internal/ratelimit"
	validationhandler "panguard/internal/validation/handler"
	"panguard/pkg/platform/httputil"
	metadata "panguard/pkg/platform/middleware/metadata"
	"panguard/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router mounts. Optional backends may be nil;
// the health endpoint only reports on the ones that are configured.
type Deps struct {
	Config     *config.Config
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Validation *validationhandler.Handler
	RateLimit  *ratelimit.Middleware
	Auth       middleware.Authenticator
	Audit      *audit.Publisher
	Redis      *platformredis.Client
	DB         *sql.DB
}

// New assembles the middleware chain and mounts every endpoint. Order
// matters: recovery wraps everything, request metadata must exist before
// logging and rate limiting read it, and auth runs last so rejected
// requests still count against their source address.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(deps.Config.Server.RequestTimeout))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.LatencyMiddleware(deps.Metrics))

	r.Get("/healthz", healthHandler(deps))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}
		if !deps.Config.Auth.Disabled {
			r.Use(middleware.RequireAuth(deps.Auth, deps.Logger,
				middleware.WithAuthAudit(deps.Audit)))
		}
		deps.Validation.Register(r)
	})

	return r
}

// healthHandler reports liveness plus the state of each configured backend.
func healthHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := map[string]string{"status": "ok"}
		healthy := true

		if deps.Redis != nil {
			if err := deps.Redis.Health(ctx); err != nil {
				status["redis"] = "unavailable"
				healthy = false
			} else {
				status["redis"] = "ok"
			}
		}
		if deps.DB != nil {
			if err := deps.DB.PingContext(ctx); err != nil {
				status["postgres"] = "unavailable"
				healthy = false
			} else {
				status["postgres"] = "ok"
			}
		}

		if !healthy {
			status["status"] = "degraded"
			httputil.WriteJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
