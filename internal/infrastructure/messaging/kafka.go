package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/gestionstock/product-api/internal/core/domain"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns a writer that balances across partitions by load and
// creates the topic on first use.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// KafkaPublisher writes product change events as JSON messages keyed by
// product id, so every change to one product lands on the same partition.
type KafkaPublisher struct {
	w   messageWriter
	log zerolog.Logger
}

func NewKafkaPublisher(w messageWriter, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{w: w, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev domain.ProductEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(MessageKey(ev.ProductID)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s for product %d: %w", ev.Type, ev.ProductID, err)
	}

	p.log.Debug().Str("type", string(ev.Type)).Int("product_id", ev.ProductID).Msg("product event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// MessageKey is the partition key for events about product id.
func MessageKey(id int) string {
	return "product-" + strconv.Itoa(id)
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.ProductEvent) error { return nil }
