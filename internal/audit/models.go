package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance for a
	// service that handles card data. These require long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring:
	// auth failures, rate limit trips, credential misuse.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging and
	// volume analysis. These can be sampled or aggregated.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
//
// Events never carry a full card number. The service records the masked form
// plus a SHA-256 fingerprint, which is enough to correlate repeat
// submissions without retaining card data.
type Event struct {
	ID           uuid.UUID     `json:"id"`
	Category     EventCategory `json:"category"`
	Timestamp    time.Time     `json:"timestamp"`
	ClientID     string        `json:"client_id,omitempty"`
	Action       AuditEvent    `json:"action"`
	Scheme       string        `json:"scheme,omitempty"`
	Outcome      string        `json:"outcome,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	MaskedNumber string        `json:"masked_number,omitempty"`
	NumberHash   string        `json:"number_hash,omitempty"`
	RequestID    string        `json:"request_id,omitempty"`
	// ClientIP holds the anonymized network prefix, never the full address.
	ClientIP  string `json:"client_ip,omitempty"`
	Device    string `json:"device,omitempty"`
	BatchSize int    `json:"batch_size,omitempty"`
}

type AuditEvent string

const (
	// Validation events
	EventCardValidated  AuditEvent = "card_validated"
	EventBatchValidated AuditEvent = "batch_validated"

	// EventValidationRejected records requests the service refused to
	// evaluate, such as oversized batches.
	EventValidationRejected AuditEvent = "validation_rejected"

	// Security events
	EventAuthFailed        AuditEvent = "auth_failed"
	EventRateLimitExceeded AuditEvent = "rate_limit_exceeded"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventCardValidated:      CategoryOperations,
	EventBatchValidated:     CategoryOperations,
	EventValidationRejected: CategoryCompliance,
	EventAuthFailed:         CategorySecurity,
	EventRateLimitExceeded:  CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
