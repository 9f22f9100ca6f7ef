// Package messaging publishes domain events produced by the session
// aggregate.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vittamlabs/origination/pkg/events"
	"github.com/vittamlabs/origination/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing events to a
// Kafka topic. Messages are keyed by aggregate ID so all events of one
// session land on the same partition in order.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given topic.
func NewKafkaEventPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish serialises and sends domain events.
func (p *KafkaEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
			},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish %d events: %w", len(messages), err)
	}

	p.logger.Debug("domain events published", "topic", p.topic, "count", len(messages))
	return nil
}

// LogEventPublisher implements port.EventPublisher by logging events, used
// when no broker is configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	for _, evt := range evts {
		p.logger.Info("domain event",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
		)
	}
	return nil
}
