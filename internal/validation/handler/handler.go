package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"panguard/internal/validation"
	"panguard/internal/validation/metrics"
	"panguard/pkg/card"
	dErrors "panguard/pkg/domain-errors"
	"panguard/pkg/platform/httputil"
	"panguard/pkg/requestcontext"
)

// Service defines the interface for validation operations.
type Service interface {
	ValidateCard(ctx context.Context, schemeCode, number string) (*validation.CardResult, error)
	ValidateBatch(ctx context.Context, items []validation.BatchItem) (*validation.BatchResult, error)
}

// Handler wires validation endpoints to the validation service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a validation handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts validation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/cards/validate", h.HandleValidateCard)
	r.Post("/cards/validate/batch", h.HandleValidateBatch)
	r.Get("/schemes", h.HandleListSchemes)
	r.Get("/schemes/{code}", h.HandleGetScheme)
}

// HandleValidateCard handles POST /cards/validate requests.
func (h *Handler) HandleValidateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ValidateCardRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ValidateCard(ctx, req.Scheme, req.Number)
	if err != nil {
		h.logger.ErrorContext(ctx, "card validation failed",
			"request_id", requestID,
			"scheme", req.Scheme,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "card validated",
		"request_id", requestID,
		"scheme", result.Scheme,
		"valid", result.Valid,
		"reason", result.Reason,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromCardResult(result))
}

// HandleValidateBatch handles POST /cards/validate/batch requests.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ValidateBatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ValidateBatch(ctx, req.Items())
	if err != nil {
		h.logger.ErrorContext(ctx, "batch validation failed",
			"request_id", requestID,
			"batch_size", len(req.Cards),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch validated",
		"request_id", requestID,
		"batch_size", len(req.Cards),
		"valid_count", result.ValidCount,
		"invalid_count", result.InvalidCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromBatchResult(result))
}

// HandleListSchemes handles GET /schemes requests.
func (h *Handler) HandleListSchemes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromDefinitions(card.Definitions()))
}

// HandleGetScheme handles GET /schemes/{code} requests.
func (h *Handler) HandleGetScheme(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	def, ok := card.LookupCode(code)
	if !ok {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "unknown scheme code: %q", code))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDefinition(def))
}
