package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"panguard/pkg/platform/sentinel"
)

// PostgresStore persists audit events to the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL audit store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts a batch of audit events.
// Uses batch INSERT with unnest for O(1) round trips instead of O(n).
// Duplicate event IDs are skipped, per the Store contract.
func (s *PostgresStore) Append(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	var (
		ids           = make([]string, 0, len(events))
		categories    = make([]string, 0, len(events))
		timestamps    = make([]string, 0, len(events))
		clientIDs     = make([]string, 0, len(events))
		actions       = make([]string, 0, len(events))
		schemes       = make([]string, 0, len(events))
		outcomes      = make([]string, 0, len(events))
		reasons       = make([]string, 0, len(events))
		maskedNumbers = make([]string, 0, len(events))
		numberHashes  = make([]string, 0, len(events))
		requestIDs    = make([]string, 0, len(events))
		clientIPs     = make([]string, 0, len(events))
		devices       = make([]string, 0, len(events))
		batchSizes    = make([]int64, 0, len(events))
	)
	for _, event := range events {
		ids = append(ids, event.ID.String())
		categories = append(categories, string(event.Category))
		// Sent as text and cast in SQL; pq.Array only encodes scalar slices.
		timestamps = append(timestamps, event.Timestamp.UTC().Format(time.RFC3339Nano))
		clientIDs = append(clientIDs, event.ClientID)
		actions = append(actions, string(event.Action))
		schemes = append(schemes, event.Scheme)
		outcomes = append(outcomes, event.Outcome)
		reasons = append(reasons, event.Reason)
		maskedNumbers = append(maskedNumbers, event.MaskedNumber)
		numberHashes = append(numberHashes, event.NumberHash)
		requestIDs = append(requestIDs, event.RequestID)
		clientIPs = append(clientIPs, event.ClientIP)
		devices = append(devices, event.Device)
		batchSizes = append(batchSizes, int64(event.BatchSize))
	}

	query := `
		INSERT INTO audit_events (
			id, category, timestamp, client_id, action, scheme,
			outcome, reason, masked_number, number_hash,
			request_id, client_ip, device, batch_size
		)
		SELECT * FROM unnest(
			$1::uuid[], $2::text[], $3::timestamptz[], $4::text[], $5::text[], $6::text[],
			$7::text[], $8::text[], $9::text[], $10::text[],
			$11::text[], $12::text[], $13::text[], $14::int[]
		)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		pq.Array(ids),
		pq.Array(categories),
		pq.Array(timestamps),
		pq.Array(clientIDs),
		pq.Array(actions),
		pq.Array(schemes),
		pq.Array(outcomes),
		pq.Array(reasons),
		pq.Array(maskedNumbers),
		pq.Array(numberHashes),
		pq.Array(requestIDs),
		pq.Array(clientIPs),
		pq.Array(devices),
		pq.Array(batchSizes),
	)
	if err != nil {
		return fmt.Errorf("insert audit events batch: %w", err)
	}
	return nil
}

// ListByClient returns events for a specific client, newest first.
func (s *PostgresStore) ListByClient(ctx context.Context, clientID string) ([]Event, error) {
	query := `
		SELECT id, category, timestamp, client_id, action, scheme,
			   outcome, reason, masked_number, number_hash,
			   request_id, client_ip, device, batch_size
		FROM audit_events
		WHERE client_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := s.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByRequestID returns every event recorded under one request ID, oldest
// first, so a reviewer can reconstruct a single submission end to end.
// Returns sentinel.ErrNotFound when no events carry the request ID.
func (s *PostgresStore) ListByRequestID(ctx context.Context, requestID string) ([]Event, error) {
	query := `
		SELECT id, category, timestamp, client_id, action, scheme,
			   outcome, reason, masked_number, number_hash,
			   request_id, client_ip, device, batch_size
		FROM audit_events
		WHERE request_id = $1
		ORDER BY timestamp ASC
	`

	rows, err := s.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("audit trail for request %s: %w", requestID, sentinel.ErrNotFound)
	}
	return events, nil
}

// ListRecent returns the N most recent events.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT id, category, timestamp, client_id, action, scheme,
			   outcome, reason, masked_number, number_hash,
			   request_id, client_ip, device, batch_size
		FROM audit_events
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event

	for rows.Next() {
		var (
			event    Event
			rawID    string
			category string
		)
		err := rows.Scan(
			&rawID,
			&category,
			&event.Timestamp,
			&event.ClientID,
			&event.Action,
			&event.Scheme,
			&event.Outcome,
			&event.Reason,
			&event.MaskedNumber,
			&event.NumberHash,
			&event.RequestID,
			&event.ClientIP,
			&event.Device,
			&event.BatchSize,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}

		event.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse audit event id: %w", err)
		}
		event.Category = EventCategory(category)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}
