package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mohabnada13/nory/config"
	"github.com/mohabnada13/nory/middleware"
	"github.com/mohabnada13/nory/models"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

func InitConsumer(cfg config.KafkaConfig, logger *zap.Logger) (sarama.Consumer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer([]string{cfg.Broker}, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Info("Kafka consumer initialized")
	return consumer, nil
}

// StartConsumer delivers push notifications for order events published by the
// HTTP handlers. A notification failure is logged and never propagated back
// to the request that produced the event.
func StartConsumer(consumer sarama.Consumer, topic string, logger *zap.Logger) error {
	partitionConsumer, err := consumer.ConsumePartition(topic, 0, sarama.OffsetNewest)
	if err != nil {
		return fmt.Errorf("failed to consume partition: %w", err)
	}
	defer partitionConsumer.Close()

	logger.Info("Kafka consumer started", zap.String("topic", topic))

	for {
		select {
		case message := <-partitionConsumer.Messages():
			if err := handleMessage(message, logger); err != nil {
				logger.Error("Failed to handle message", zap.Error(err))
			}
		case err := <-partitionConsumer.Errors():
			logger.Error("Kafka consumer error", zap.Error(err))
		}
	}
}

func handleMessage(message *sarama.ConsumerMessage, logger *zap.Logger) error {
	// Extract trace context from Kafka message headers
	propagator := otel.GetTextMapPropagator()
	carrier := saramaHeaderCarrierConsumer(message.Headers)
	ctx := propagator.Extract(context.Background(), carrier)

	tracer := otel.Tracer("nory")
	ctx, span := tracer.Start(ctx, "ProcessNotification")
	defer span.End()

	var event models.OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	span.SetAttributes(
		attribute.String("event.type", event.EventType),
		attribute.Int("order.id", event.OrderID),
		attribute.Int("user.id", event.UserID),
	)

	switch event.EventType {
	case "order_created":
		handleOrderCreated(ctx, event, logger)
	case "order_status_changed":
		handleStatusChanged(ctx, event, logger)
	default:
		logger.Debug("Unknown event type", zap.String("event_type", event.EventType))
	}

	return nil
}

func handleOrderCreated(ctx context.Context, event models.OrderEvent, logger *zap.Logger) {
	middleware.RecordNotificationSent("order_created")
	traceID := middleware.GetTraceID(ctx)

	// Admin topic first, then the customer's device if one is registered.
	body := fmt.Sprintf("Order #%d has been placed.", event.OrderID)
	fmt.Printf("[PUSH] Topic: orders\n")
	fmt.Printf("[PUSH] Title: New Order\n")
	fmt.Printf("[PUSH] Body: %s\n\n", body)

	if event.FCMToken != "" {
		userBody := fmt.Sprintf("Your order #%d has been received and is being processed.", event.OrderID)
		fmt.Printf("[PUSH] To: %s\n", event.FCMToken)
		fmt.Printf("[PUSH] Title: New Order Received\n")
		fmt.Printf("[PUSH] Body: %s\n\n", userBody)
	}

	logger.Info("Order notification sent",
		zap.String("trace_id", traceID),
		zap.Int("order_id", event.OrderID),
		zap.Int("user_id", event.UserID),
		zap.Bool("user_notified", event.FCMToken != ""),
	)
}

func handleStatusChanged(ctx context.Context, event models.OrderEvent, logger *zap.Logger) {
	middleware.RecordNotificationSent("order_status_changed")
	traceID := middleware.GetTraceID(ctx)

	if event.FCMToken == "" {
		logger.Info("No device registered for order owner, skipping push",
			zap.String("trace_id", traceID),
			zap.Int("order_id", event.OrderID),
		)
		return
	}

	fmt.Printf("[PUSH] To: %s\n", event.FCMToken)
	fmt.Printf("[PUSH] Title: Order Status Updated\n")
	fmt.Printf("[PUSH] Body: %s\n\n", event.Message)

	logger.Info("Status notification sent",
		zap.String("trace_id", traceID),
		zap.Int("order_id", event.OrderID),
		zap.String("status", string(event.Status)),
		zap.String("message", event.Message),
	)
}

// saramaHeaderCarrierConsumer implements the TextMapCarrier interface for Kafka headers (for consumer)
type saramaHeaderCarrierConsumer []*sarama.RecordHeader

func (c saramaHeaderCarrierConsumer) Get(key string) string {
	for _, h := range c {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c saramaHeaderCarrierConsumer) Set(key, value string) {
	// Not needed for extraction
}

func (c saramaHeaderCarrierConsumer) Keys() []string {
	keys := make([]string, len(c))
	for i, h := range c {
		keys[i] = string(h.Key)
	}
	return keys
}
