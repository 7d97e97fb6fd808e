package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaStore publishes audit events to a Kafka topic. The event ID is the
// record key, so downstream consumers can partition and deduplicate by it.
type KafkaStore struct {
	client *kgo.Client
	topic  string
}

// NewKafkaStore creates a Kafka-backed audit sink.
func NewKafkaStore(client *kgo.Client, topic string) *KafkaStore {
	return &KafkaStore{client: client, topic: topic}
}

// Append produces the batch synchronously so broker failures surface to the
// worker as flush errors instead of vanishing in an async callback.
func (s *KafkaStore) Append(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	records := make([]*kgo.Record, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal audit event %s: %w", event.ID, err)
		}
		records = append(records, &kgo.Record{
			Topic: s.topic,
			Key:   []byte(event.ID.String()),
			Value: payload,
		})
	}

	if err := s.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce audit events: %w", err)
	}
	return nil
}
