package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"casaroja/pkg/logger"
)

// Consumer reads domain events from the events topic and hands them to
// the delivery handler. The default handler only logs; real channels
// (email, push) plug in behind the same interface.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler EnvelopeHandler
}

type EnvelopeHandler func(ctx context.Context, envelope Envelope) error

func NewConsumer(brokers []string, groupID, topic string, handler EnvelopeHandler) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	if handler == nil {
		handler = LogDeliveryHandler
	}

	return &Consumer{group: group, topic: topic, handler: handler}, nil
}

// Start blocks consuming until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, &groupHandler{handler: c.handler}); err != nil {
			return fmt.Errorf("consumer group error: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

// LogDeliveryHandler is the default delivery: structured log per event
func LogDeliveryHandler(ctx context.Context, envelope Envelope) error {
	logger.GetDefault().Info("domain event received",
		"type", envelope.Type,
		"occurred_at", envelope.OccurredAt,
	)
	return nil
}

type groupHandler struct {
	handler EnvelopeHandler
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var envelope Envelope
		if err := json.Unmarshal(message.Value, &envelope); err != nil {
			logger.GetDefault().Warn("dropping malformed event",
				"topic", message.Topic,
				"offset", message.Offset,
				"error", err,
			)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.handler(session.Context(), envelope); err != nil {
			logger.GetDefault().Error("event delivery failed",
				"type", envelope.Type,
				"offset", message.Offset,
				"error", err,
			)
		}

		session.MarkMessage(message, "")
	}
	return nil
}
