// Package broker defines the interface for message brokers and provides implementations.
package broker

import "context"

// Broker carries build-watcher events to the collector. The in-memory
// implementation serves single-process deployments; the Redpanda one serves
// deployments where the watcher runs next to the build and the MCP server
// runs next to the LLM client.
type Broker interface {
	// Publish sends one event to a topic. The key is the build session id;
	// Kafka-backed implementations use it for partition assignment so a
	// session's events stay ordered, the in-memory broker ignores it.
	Publish(ctx context.Context, topic string, key string, value []byte) error

	// Subscribe returns a channel of events on a topic. groupID names the
	// consumer group for Kafka-backed implementations; the in-memory broker
	// ignores it and fans out to every subscriber.
	Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error)

	// Close shuts down the broker connection gracefully.
	Close() error
}

// Message is one consumed event.
type Message struct {
	Topic     string
	Key       string
	Value     []byte
	Offset    int64
	Partition int32
	Timestamp int64
}
