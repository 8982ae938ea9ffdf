// Package broker provides Redpanda/Kafka broker implementation.
package broker

import (
	"context"
	"fmt"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"
)

// RedpandaBroker carries build-watcher events over a Kafka-compatible
// cluster, for deployments where the watcher and the MCP server are separate
// processes. One shared producer client; one consumer client per
// topic/group subscription so each subscription polls independently.
type RedpandaBroker struct {
	seeds    []string
	producer *kgo.Client

	mu        sync.Mutex
	consumers map[string]*kgo.Client
	closed    bool
}

// NewRedpandaBroker connects a producer to the given seed brokers
// (e.g. ["localhost:19092"]). Topics are auto-created on first publish so
// the watcher can start before any operator provisioning.
func NewRedpandaBroker(seeds []string) (*RedpandaBroker, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("at least one broker address is required")
	}

	producer, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.ClientID("dunemcp"),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka client: %w", err)
	}

	return &RedpandaBroker{
		seeds:     seeds,
		producer:  producer,
		consumers: make(map[string]*kgo.Client),
	}, nil
}

// Publish produces one record synchronously. The key is the session id, so
// all events of a build session land on one partition and replay in order.
func (b *RedpandaBroker) Publish(ctx context.Context, topic string, key string, value []byte) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("broker is closed")
	}
	b.mu.Unlock()

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	if err := b.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce to %s: %w", topic, err)
	}
	return nil
}

// Subscribe starts a consumer-group member on the topic, reading from the
// earliest offset so a restarted collector rebuilds its sessions from
// history. A second subscription for the same topic and group is an error.
func (b *RedpandaBroker) Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("broker is closed")
	}

	key := topic + ":" + groupID
	if _, exists := b.consumers[key]; exists {
		return nil, fmt.Errorf("already subscribed to %s in group %s", topic, groupID)
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(b.seeds...),
		kgo.ClientID("dunemcp"),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer for %s: %w", topic, err)
	}
	b.consumers[key] = consumer

	out := make(chan Message, subscriberBuffer)
	go pollLoop(ctx, consumer, out)

	return out, nil
}

// pollLoop drains fetches into the subscriber channel until the context is
// cancelled or the consumer client is closed.
func pollLoop(ctx context.Context, consumer *kgo.Client, out chan<- Message) {
	defer close(out)

	for ctx.Err() == nil {
		fetches := consumer.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return
		}
		if len(fetches.Errors()) > 0 {
			// Fetch errors are transient; the next poll retries.
			continue
		}

		fetches.EachRecord(func(record *kgo.Record) {
			msg := Message{
				Topic:     record.Topic,
				Key:       string(record.Key),
				Value:     record.Value,
				Offset:    record.Offset,
				Partition: record.Partition,
				Timestamp: record.Timestamp.UnixMilli(),
			}
			select {
			case out <- msg:
			case <-ctx.Done():
			}
		})
	}
}

// Close shuts down the producer and every consumer. Subscriber channels
// close once their poll loops observe the closed clients.
func (b *RedpandaBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, consumer := range b.consumers {
		consumer.Close()
	}
	b.consumers = make(map[string]*kgo.Client)
	b.producer.Close()

	return nil
}
