package consumers

import (
	"context"
	"sync/atomic"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/reviewsense/internal/clients/kafka_client"
)

type HealthAwareFunc func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool)

// ConsumerWrapper binds health flags to a consumer so it fits the registry.
type ConsumerWrapper struct {
	fn     HealthAwareFunc
	health []*atomic.Bool
}

func WrapConsumer(fn HealthAwareFunc, health ...*atomic.Bool) ConsumerWrapper {
	return ConsumerWrapper{fn: fn, health: health}
}

func (cw ConsumerWrapper) WithHealthCheck(health *atomic.Bool) ConsumerWrapper {
	cw.health = append(append([]*atomic.Bool(nil), cw.health...), health)
	return cw
}

func (cw ConsumerWrapper) Handler() kafka_client.ConsumerFunc {
	return func(ctx context.Context, consumer *kafka.Consumer) {
		cw.fn(ctx, consumer, cw.health...)
	}
}
