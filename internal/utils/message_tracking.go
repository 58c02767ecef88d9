package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// MessageTracker remembers which Kafka message carried each review so its
// offset can be committed once the result is flushed.
type MessageTracker struct {
	messages sync.Map
}

func NewMessageTracker() *MessageTracker {
	return &MessageTracker{}
}

func (t *MessageTracker) Track(reviewID string, msg *kafka.Message) {
	t.messages.Store(reviewID, msg)
}

// Take returns and forgets the message tracked for reviewID.
func (t *MessageTracker) Take(reviewID string) (*kafka.Message, bool) {
	msg, ok := t.messages.LoadAndDelete(reviewID)
	if !ok {
		return nil, false
	}
	return msg.(*kafka.Message), true
}
