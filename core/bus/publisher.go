package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher sends delta events to downstream subscribers. Delivery is
// best-effort: storage stays authoritative and callers swallow publish
// failures after logging them.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// MessageWriter is the subset of kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes JSON-encoded events to a Kafka topic.
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher over a new kafka.Writer.
func NewKafkaPublisher(cfg Config) *KafkaPublisher {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer, timeout: time.Duration(timeout) * time.Second}
}

// NewKafkaPublisherWithWriter creates a publisher over an existing writer.
func NewKafkaPublisherWithWriter(writer MessageWriter, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, timeout: timeout}
}

// Publish serializes and sends a single event. Messages are keyed by
// (world, item) so deltas for one market board key stay ordered within a
// partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serialize event failed: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	key := strconv.Itoa(event.WorldID) + "/" + strconv.Itoa(event.ItemID)
	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("bus write failed: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
