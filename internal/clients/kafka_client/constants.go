package kafka_client

import "time"

const (
	KAFKA_TOPIC_REVIEW_REQUEST = "review-analysis-request" // reviews waiting for sentiment and key points
	KAFKA_TOPIC_REVIEW_RESULT  = "review-analysis-result"  // analyzed reviews
)

const (
	MAX_RETRIES  = 5
	RETRY_DELAY  = 2 * time.Second
	POLL_TIMEOUT = time.Second
)
