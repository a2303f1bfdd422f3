// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"groundhandling/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// OrderEventPublisher writes every event as a JSON message keyed by order ID,
// so the events of one order stay in one partition and keep their order.
type OrderEventPublisher struct {
	writer messageWriter
	topic  string
}

// NewOrderEventPublisher creates a publisher writing to topic on the given
// comma separated brokers.
func NewOrderEventPublisher(brokers, topic string) *OrderEventPublisher {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}

	return newOrderEventPublisher(&kafkago.Writer{
		Addr:                   kafkago.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}, topic)
}

func newOrderEventPublisher(writer messageWriter, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer, topic: topic}
}

// Publish encodes event and writes it synchronously.
func (p *OrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka marshal: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
