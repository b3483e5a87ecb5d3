package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const orderEventsTopic = "order-events"

// Producer publishes order lifecycle events to Kafka. Delivery is
// eventually consistent with the order store; publish failures are
// reported to the caller but never roll back a saved order.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewProducer(brokers string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    orderEventsTopic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

func (p *Producer) PublishOrderPlaced(event OrderPlacedEvent) error {
	return p.publish("order.placed", event.EventID, event)
}

func (p *Producer) PublishOrderCancelled(event OrderCancelledEvent) error {
	return p.publish("order.cancelled", event.EventID, event)
}

func (p *Producer) publish(eventType, eventID string, event any) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event",
			zap.String("event_type", eventType),
			zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(eventID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_type", eventType),
			zap.String("event_id", eventID),
			zap.Error(err))
		return err
	}

	p.logger.Info("Event published",
		zap.String("event_type", eventType),
		zap.String("event_id", eventID))

	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
