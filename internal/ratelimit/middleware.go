package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"panguard/internal/audit"
	"panguard/internal/platform/config"
	"panguard/pkg/platform/httputil"
	metadata "panguard/pkg/platform/middleware/metadata"
	"panguard/pkg/platform/privacy"
)

// Middleware enforces a per-IP request limit in front of the API.
type Middleware struct {
	limiter  Limiter
	logger   *slog.Logger
	metrics  *Metrics
	audit    *audit.Publisher
	limit    int
	window   time.Duration
	disabled bool
}

// Option configures a Middleware.
type Option func(*Middleware)

// WithMetrics records check outcomes and store latency.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Middleware) {
		m.metrics = metrics
	}
}

// WithAudit emits an audit event for every denied request.
func WithAudit(publisher *audit.Publisher) Option {
	return func(m *Middleware) {
		m.audit = publisher
	}
}

// New creates the middleware with the limit and window from cfg.
func New(limiter Limiter, cfg config.RateLimit, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter:  limiter,
		logger:   logger,
		limit:    cfg.Requests,
		window:   cfg.Window,
		disabled: cfg.Disabled,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// Limit wraps next with the per-IP rate limit check. Limiter errors fail
// open so a broken store degrades throttling, not validation.
func (m *Middleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := metadata.GetClientIP(ctx)

		start := time.Now()
		result, err := m.limiter.Allow(ctx, "ip:"+ip, m.limit, m.window)
		if err != nil {
			m.metrics.ObserveCheck("error", time.Since(start))
			m.logger.ErrorContext(ctx, "rate limit check failed", "error", err, "ip_prefix", privacy.AnonymizeIP(ip))
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)

		if !result.Allowed {
			m.metrics.ObserveCheck("denied", time.Since(start))
			m.writeLimitExceeded(w, r, result, ip)
			return
		}

		m.metrics.ObserveCheck("allowed", time.Since(start))
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) writeLimitExceeded(w http.ResponseWriter, r *http.Request, result *Result, ip string) {
	ctx := r.Context()
	m.logger.WarnContext(ctx, "rate limit exceeded",
		"ip_prefix", privacy.AnonymizeIP(ip),
		"retry_after", result.RetryAfter,
	)

	if m.audit != nil {
		m.audit.Emit(ctx, audit.Event{
			Action:   audit.EventRateLimitExceeded,
			Outcome:  "denied",
			ClientIP: privacy.AnonymizeIP(ip),
		})
	}

	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &limitExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests from this IP address. Please try again later.",
		RetryAfter: result.RetryAfter,
	})
}

type limitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

func addRateLimitHeaders(w http.ResponseWriter, result *Result) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if result.Degraded {
		w.Header().Set("X-RateLimit-Status", "degraded")
	}
}
