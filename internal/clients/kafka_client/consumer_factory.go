package kafka_client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type ConsumerFunc func(context.Context, *kafka.Consumer)

var (
	registryMu       sync.RWMutex
	consumerRegistry = make(map[string]ConsumerFunc)
)

func RegisterConsumer(topic string, consumerFunc ConsumerFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	consumerRegistry[topic] = consumerFunc
}

func lookupConsumer(topic string) (ConsumerFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := consumerRegistry[topic]
	return fn, ok
}

// StartConsumer runs the consumer registered for cfg.Topic until ctx is done.
func StartConsumer(ctx context.Context, cfg KafkaConfig) error {
	consumerFunc, exists := lookupConsumer(cfg.Topic)
	if !exists {
		return fmt.Errorf("[ConsumerFactory] No consumer found for topic: %s", cfg.Topic)
	}

	consumer, err := NewConsumer(cfg)
	if err != nil {
		return fmt.Errorf("[ConsumerFactory] Failed to initialize Kafka consumer: %w", err)
	}
	defer consumer.Close()

	slog.Info("[ConsumerFactory] Starting consumer for topic...", slog.String("topic", cfg.Topic))
	consumerFunc(ctx, consumer)

	return nil
}
