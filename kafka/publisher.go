package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tavernhq/backoffice/pkg/logger"
)

// Publisher wraps a Kafka sync producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishOrderPlaced publishes an order placed event
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	event.EventID = uuid.New().String()
	event.EventType = EventTypeOrderPlaced
	event.Timestamp = time.Now()

	return p.publish(ctx, TopicOrderPlaced, fmt.Sprintf("%d", event.OrderID), event)
}

// PublishOrderRefunded publishes an order refunded event
func (p *Publisher) PublishOrderRefunded(ctx context.Context, event OrderRefundedEvent) error {
	event.EventID = uuid.New().String()
	event.EventType = EventTypeOrderRefunded
	event.Timestamp = time.Now()

	return p.publish(ctx, TopicOrderRefunded, fmt.Sprintf("%d", event.OrderID), event)
}

// PublishStockLow publishes a low stock event
func (p *Publisher) PublishStockLow(ctx context.Context, event StockLowEvent) error {
	event.EventID = uuid.New().String()
	event.EventType = EventTypeStockLow
	event.Timestamp = time.Now()

	return p.publish(ctx, TopicStockLow, fmt.Sprintf("%d", event.IngredientID), event)
}

func (p *Publisher) publish(ctx context.Context, topic, key string, event interface{}) error {
	// A nil publisher drops events; deployments without Kafka still work
	if p == nil || p.producer == nil {
		return nil
	}

	tracer := otel.Tracer("kafka-publisher")
	_, span := tracer.Start(ctx, "kafka.publish."+topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
		),
	)
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx).Err(err).Str("topic", topic).Msg("Failed to publish event")
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	span.SetAttributes(
		attribute.Int64("messaging.kafka.partition", int64(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Debug(ctx).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close shuts down the producer
func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
