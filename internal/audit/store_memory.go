package audit

import (
	"context"
	"fmt"
	"sync"

	"panguard/pkg/platform/sentinel"
)

// MemoryStore keeps audit events in process memory. It is the default sink
// for local development and the assertion target in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, events ...Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

// ListByClient returns events recorded for one client, oldest first.
func (s *MemoryStore) ListByClient(_ context.Context, clientID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, event := range s.events {
		if event.ClientID == clientID {
			out = append(out, event)
		}
	}
	return out, nil
}

// ListByRequestID returns every event recorded under one request ID in
// insertion order. Returns sentinel.ErrNotFound when no events carry the
// request ID.
func (s *MemoryStore) ListByRequestID(_ context.Context, requestID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, event := range s.events {
		if event.RequestID == requestID {
			out = append(out, event)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("audit trail for request %s: %w", requestID, sentinel.ErrNotFound)
	}
	return out, nil
}

// ListRecent returns the most recent N events in insertion order.
func (s *MemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.events) - limit
	if start < 0 {
		start = 0
	}
	return append([]Event{}, s.events[start:]...), nil
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
