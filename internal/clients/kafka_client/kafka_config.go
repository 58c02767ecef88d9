package kafka_client

import "github.com/spacesedan/reviewsense/config"

type KafkaConfig struct {
	Broker  string
	GroupID string
	Topic   string
}

// GetKafkaConfig returns the broker settings for a consumer of topic.
func GetKafkaConfig(cfg config.KafkaConfig, topic string) KafkaConfig {
	if topic == "" {
		topic = KAFKA_TOPIC_REVIEW_REQUEST
	}
	return KafkaConfig{
		Broker:  cfg.Broker,
		GroupID: cfg.GroupID,
		Topic:   topic,
	}
}
