package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"panguard/pkg/requestcontext"
)

// Publisher hands events to the background worker without blocking request
// handling. When the buffer is full the event is dropped and counted;
// validation traffic never stalls on the audit path.
type Publisher struct {
	inbox   chan<- Event
	logger  *slog.Logger
	metrics *Metrics
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger, metrics *Metrics) *Publisher {
	return &Publisher{inbox: inbox, logger: logger, metrics: metrics}
}

// Emit queues one event. Missing identity, time, and correlation fields are
// filled from the request context; the category is always derived from the
// action so emitters cannot misfile an event.
//
// A nil Publisher is valid and drops everything.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientID == "" {
		event.ClientID = requestcontext.ClientID(ctx)
	}
	event.Category = event.Action.Category()

	select {
	case p.inbox <- event:
		p.metrics.IncrementEmitted(string(event.Action))
	default:
		p.metrics.IncrementDropped("buffer_full", 1)
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"request_id", event.RequestID,
		)
	}
}
