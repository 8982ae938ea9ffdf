package broker

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryBrokerPublishSubscribe(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryBroker()
	defer b.Close()

	ch, err := b.Subscribe(ctx, "topic-a", "group-1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := b.Publish(ctx, "topic-a", "key-1", []byte("hello")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-ch:
		if msg.Topic != "topic-a" {
			t.Errorf("Topic = %s, want topic-a", msg.Topic)
		}
		if msg.Key != "key-1" {
			t.Errorf("Key = %s, want key-1", msg.Key)
		}
		if string(msg.Value) != "hello" {
			t.Errorf("Value = %s, want hello", msg.Value)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestInMemoryBrokerTopicIsolation(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryBroker()
	defer b.Close()

	chA, _ := b.Subscribe(ctx, "topic-a", "")
	chB, _ := b.Subscribe(ctx, "topic-b", "")

	b.Publish(ctx, "topic-a", "", []byte("for-a"))

	select {
	case msg := <-chA:
		if string(msg.Value) != "for-a" {
			t.Errorf("Value = %s, want for-a", msg.Value)
		}
	case <-time.After(time.Second):
		t.Fatal("topic-a subscriber did not receive message")
	}

	select {
	case msg := <-chB:
		t.Errorf("topic-b subscriber received unexpected message: %+v", msg)
	default:
	}
}

func TestInMemoryBrokerOffsetsIncrement(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryBroker()
	defer b.Close()

	ch, _ := b.Subscribe(ctx, "topic-a", "")

	for i := 0; i < 3; i++ {
		b.Publish(ctx, "topic-a", "", []byte("msg"))
	}

	for want := int64(0); want < 3; want++ {
		select {
		case msg := <-ch:
			if msg.Offset != want {
				t.Errorf("Offset = %d, want %d", msg.Offset, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for message")
		}
	}
}

func TestInMemoryBrokerFanOut(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryBroker()
	defer b.Close()

	ch1, _ := b.Subscribe(ctx, "topic-a", "group-1")
	ch2, _ := b.Subscribe(ctx, "topic-a", "group-2")

	b.Publish(ctx, "topic-a", "", []byte("broadcast"))

	for _, ch := range []<-chan Message{ch1, ch2} {
		select {
		case msg := <-ch:
			if string(msg.Value) != "broadcast" {
				t.Errorf("Value = %s, want broadcast", msg.Value)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive broadcast")
		}
	}
}

func TestInMemoryBrokerClose(t *testing.T) {
	ctx := context.Background()
	b := NewInMemoryBroker()

	ch, _ := b.Subscribe(ctx, "topic-a", "")

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, ok := <-ch; ok {
		t.Error("subscriber channel not closed")
	}

	if err := b.Publish(ctx, "topic-a", "", []byte("late")); err == nil {
		t.Error("Publish after Close should fail")
	}
	if _, err := b.Subscribe(ctx, "topic-a", ""); err == nil {
		t.Error("Subscribe after Close should fail")
	}

	// Repeat close is a no-op.
	if err := b.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
