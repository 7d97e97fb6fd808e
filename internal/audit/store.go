package audit

import "context"

// Store persists audit events. Implementations must tolerate duplicate
// deliveries of the same event ID; the Kafka producer retries internally
// and can hand a broker the same record twice.
type Store interface {
	Append(ctx context.Context, events ...Event) error
}
