//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcredpanda "github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kgo"
)

// RedpandaContainer wraps a testcontainers Redpanda instance. Redpanda speaks
// the Kafka protocol, so franz-go clients work against it unchanged.
type RedpandaContainer struct {
	Container testcontainers.Container
	Broker    string
}

// NewRedpandaContainer starts a Redpanda container. The container is
// terminated when the test finishes.
func NewRedpandaContainer(t *testing.T) *RedpandaContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcredpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v24.1.7")
	if err != nil {
		t.Fatalf("failed to start redpanda container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	broker, err := container.KafkaSeedBroker(ctx)
	if err != nil {
		t.Fatalf("failed to get redpanda seed broker: %v", err)
	}

	return &RedpandaContainer{
		Container: container,
		Broker:    broker,
	}
}

// NewClient connects a franz-go client to the container, closed when the
// test finishes.
func (r *RedpandaContainer) NewClient(t *testing.T, opts ...kgo.Opt) *kgo.Client {
	t.Helper()

	ctx := context.Background()

	client, err := kgo.NewClient(append([]kgo.Opt{kgo.SeedBrokers(r.Broker)}, opts...)...)
	if err != nil {
		t.Fatalf("failed to connect kafka client: %v", err)
	}
	t.Cleanup(client.Close)

	if err := client.Ping(ctx); err != nil {
		t.Fatalf("failed to ping redpanda: %v", err)
	}

	return client
}
