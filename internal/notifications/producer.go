package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"casaroja/pkg/logger"
)

// Domain event types published to the events topic. Consumers fan these
// out to email, push and reporting pipelines.
const (
	EventTicketConfirmed   = "ticket.confirmed"
	EventTicketCancelled   = "ticket.cancelled"
	EventPaymentCompleted  = "payment.completed"
	EventPaymentFailed     = "payment.failed"
	EventTransportReserved = "transport.reserved"
)

// Envelope wraps every published payload with its type and timestamp
type Envelope struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type Publisher interface {
	// Publish sends one domain event. Key determines partition affinity;
	// pass the entity ID so events for one entity stay ordered.
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
	Close() error
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaPublisher(brokers []string, topic string) (Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaPublisher{producer: producer, topic: topic}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	envelope := Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}

	logger.GetDefault().Debug("domain event published",
		"type", eventType,
		"key", key,
		"partition", partition,
		"offset", offset,
	)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event. Used when Kafka is disabled so the
// services never have to nil-check their publisher.
type NoopPublisher struct{}

func NewNoopPublisher() Publisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
