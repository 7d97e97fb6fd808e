// Package validation runs card number checks for the HTTP API: it wraps the
// pure engine in pkg/card with metrics, tracing, and audit emission, and
// fans batches out across workers.
package validation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"panguard/internal/audit"
	"panguard/internal/validation/metrics"
	"panguard/pkg/card"
	dErrors "panguard/pkg/domain-errors"
	"panguard/pkg/platform/privacy"
	"panguard/pkg/requestcontext"
)

const (
	// MaxBatchSize bounds one batch request. Larger submissions are
	// rejected before any card is evaluated.
	MaxBatchSize = 200

	// batchConcurrency bounds the workers evaluating one batch.
	batchConcurrency = 8
)

var tracer = otel.Tracer("panguard/internal/validation")

// CardResult is one evaluated card. MaskedNumber and NumberHash are only
// set once the input is known to be a digit string; they are the ONLY forms
// of the number that may leave this package.
type CardResult struct {
	Scheme       card.Scheme
	Valid        bool
	Reason       card.Reason
	Length       int
	MaskedNumber string
	NumberHash   string
}

// BatchItem is one card within a batch submission.
type BatchItem struct {
	Scheme string
	Number string
}

// BatchResult carries per-card results in submission order plus the counts.
type BatchResult struct {
	Results      []CardResult
	ValidCount   int
	InvalidCount int
}

// Service evaluates card numbers and records the outcome. The engine itself
// is pure; everything stateful (metrics, audit, tracing) lives here.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
}

// NewService constructs a validation service with its dependencies.
// Metrics and audit may be nil; both degrade to no-ops.
func NewService(logger *slog.Logger, m *metrics.Metrics, publisher *audit.Publisher) *Service {
	return &Service{
		logger:  logger,
		metrics: m,
		audit:   publisher,
	}
}

// ValidateCard evaluates one number against one claimed scheme code.
// Unknown codes produce an unknown_scheme result, not an error.
func (s *Service) ValidateCard(ctx context.Context, schemeCode, number string) (*CardResult, error) {
	ctx, span := tracer.Start(ctx, "validation.card")
	defer span.End()
	start := time.Now()

	result := s.evaluate(schemeCode, number)
	s.metrics.ObserveLatency("card", time.Since(start))

	span.SetAttributes(
		attribute.String("card.scheme", schemeLabel(result.Scheme)),
		attribute.Bool("card.valid", result.Valid),
		attribute.String("card.reason", string(result.Reason)),
	)

	s.audit.Emit(ctx, audit.Event{
		Action:       audit.EventCardValidated,
		Scheme:       string(result.Scheme),
		Outcome:      outcomeOf(result.Valid),
		Reason:       string(result.Reason),
		MaskedNumber: result.MaskedNumber,
		NumberHash:   result.NumberHash,
		ClientIP:     clientNetwork(ctx),
		Device:       requestcontext.Device(ctx),
	})

	return &result, nil
}

// ValidateBatch evaluates up to MaxBatchSize cards concurrently, preserving
// submission order in the results.
func (s *Service) ValidateBatch(ctx context.Context, items []BatchItem) (*BatchResult, error) {
	ctx, span := tracer.Start(ctx, "validation.batch",
		trace.WithAttributes(attribute.Int("batch.size", len(items))))
	defer span.End()
	start := time.Now()

	if len(items) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "batch must contain at least one card")
	}
	if len(items) > MaxBatchSize {
		s.logger.WarnContext(ctx, "batch validation rejected",
			"batch_size", len(items),
			"max_batch_size", MaxBatchSize,
		)
		s.audit.Emit(ctx, audit.Event{
			Action:    audit.EventValidationRejected,
			Outcome:   "rejected",
			Reason:    "batch_too_large",
			BatchSize: len(items),
			ClientIP:  clientNetwork(ctx),
		})
		return nil, dErrors.Newf(dErrors.CodeValidation, "batch size %d exceeds the maximum of %d", len(items), MaxBatchSize)
	}

	results := make([]CardResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.evaluate(item.Scheme, item.Number)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "batch validation interrupted")
	}

	validCount := 0
	for _, r := range results {
		if r.Valid {
			validCount++
		}
	}

	s.metrics.ObserveBatchSize(len(items))
	s.metrics.ObserveLatency("batch", time.Since(start))
	span.SetAttributes(attribute.Int("batch.valid_count", validCount))

	s.audit.Emit(ctx, audit.Event{
		Action:    audit.EventBatchValidated,
		Outcome:   "completed",
		BatchSize: len(items),
		ClientIP:  clientNetwork(ctx),
		Device:    requestcontext.Device(ctx),
	})

	return &BatchResult{
		Results:      results,
		ValidCount:   validCount,
		InvalidCount: len(results) - validCount,
	}, nil
}

// evaluate runs the engine for one card and derives the safe-to-store forms
// of the number. Length > 0 means normalization produced a digit string, so
// masking cannot leak non-digit input.
func (s *Service) evaluate(schemeCode, number string) CardResult {
	result := card.ValidateCode(number, schemeCode)

	out := CardResult{
		Scheme: result.Scheme,
		Valid:  result.Valid,
		Reason: result.Reason,
		Length: result.Length,
	}
	if result.Length > 0 {
		normalized := card.Normalize(number)
		out.MaskedNumber = card.MaskNumber(normalized)
		out.NumberHash = card.Fingerprint(normalized)
	}

	s.metrics.ObserveOutcome(schemeLabel(result.Scheme), string(result.Reason))
	return out
}

func outcomeOf(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// schemeLabel keeps metric and span labels non-empty for unknown codes.
func schemeLabel(scheme card.Scheme) string {
	if scheme == "" {
		return "unknown"
	}
	return string(scheme)
}

// clientNetwork returns the anonymized client network prefix, or empty when
// the request carried no client address.
func clientNetwork(ctx context.Context) string {
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		return privacy.AnonymizeIP(ip)
	}
	return ""
}
