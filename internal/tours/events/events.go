// Package events publishes booking intents to Kafka so the sales team can
// follow up on WhatsApp conversations that never turned into a message.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives booking intents when no topic is configured.
const DefaultTopic = "balitours.booking-intents"

// MessageWriter is the subset of *kafka.Writer used for publishing.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageReader is the subset of *kafka.Reader used for tailing.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Publisher sends booking intents to a Kafka topic. It satisfies
// contact.Sink.
type Publisher struct {
	writer MessageWriter
}

// NewPublisher wraps an existing writer.
func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Dial builds a publisher for brokers, a comma-separated host list.
func Dial(brokers, topic string) (*Publisher, error) {
	addrs := SplitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return NewPublisher(writer), nil
}

// Record encodes intent as JSON keyed by subject and writes it.
func (p *Publisher) Record(ctx context.Context, intent contact.Intent) error {
	if p == nil || p.writer == nil {
		return errors.New("kafka publisher is not configured")
	}
	payload, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encode booking intent: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(intent.Subject),
		Value: payload,
		Time:  intent.OccurredAt,
		Headers: []kafka.Header{
			{Key: "source", Value: []byte(intent.Source)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish booking intent: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NewReader returns a reader that starts at the newest intent of topic.
func NewReader(brokers, topic, groupID string) (*kafka.Reader, error) {
	addrs := SplitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     addrs,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	}), nil
}

// Tail decodes intents from reader and hands them to fn until ctx ends, the
// reader is exhausted, or fn returns an error. Undecodable messages are
// skipped.
func Tail(ctx context.Context, reader MessageReader, fn func(contact.Intent) error) error {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read booking intent: %w", err)
		}
		var intent contact.Intent
		if err := json.Unmarshal(msg.Value, &intent); err != nil {
			continue
		}
		if err := fn(intent); err != nil {
			return err
		}
	}
}

// SplitBrokers parses a comma-separated broker list.
func SplitBrokers(brokers string) []string {
	var out []string
	for _, part := range strings.Split(brokers, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
