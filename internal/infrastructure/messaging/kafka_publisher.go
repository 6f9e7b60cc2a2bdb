package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

// KafkaOrderEventPublisher writes order events as JSON, keyed by order id so
// the events of one order stay on one partition.
type KafkaOrderEventPublisher struct {
	writer *kafka.Writer
}

var _ interfaces.IOrderEventPublisher = (*KafkaOrderEventPublisher)(nil)

func NewKafkaOrderEventPublisher(brokers []string, topic string) *KafkaOrderEventPublisher {
	return &KafkaOrderEventPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           5 * time.Second,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaOrderEventPublisher) PublishOrderEvent(ctx context.Context, e entities.OrderEvent) error {
	msg, err := encodeOrderEvent(e)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s order_id=%s: %w", e.Type, e.OrderID, err)
	}
	return nil
}

func (p *KafkaOrderEventPublisher) Close() error {
	return p.writer.Close()
}

func encodeOrderEvent(e entities.OrderEvent) (kafka.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal order event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
		Time: e.OccurredAt,
	}, nil
}

// NoopOrderEventPublisher is used when no brokers are configured.
type NoopOrderEventPublisher struct{}

var _ interfaces.IOrderEventPublisher = NoopOrderEventPublisher{}

func (NoopOrderEventPublisher) PublishOrderEvent(_ context.Context, e entities.OrderEvent) error {
	log.Printf("[order][events] publishing disabled type=%s order_id=%s", e.Type, e.OrderID)
	return nil
}
