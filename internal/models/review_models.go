package models

import (
	"time"

	"github.com/google/uuid"
)

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

func (l SentimentLabel) String() string { return string(l) }

// AnalysisRequest is the message consumed from the review-analysis-request topic.
type AnalysisRequest struct {
	ReviewID    string    `json:"review_id"`
	ReviewText  string    `json:"review_text"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewAnalysisRequest stamps a fresh review id on the text.
func NewAnalysisRequest(text string) AnalysisRequest {
	return AnalysisRequest{
		ReviewID:    uuid.NewString(),
		ReviewText:  text,
		SubmittedAt: time.Now().UTC(),
	}
}

// AnalysisResult is published to the review-analysis-result topic and stored in DynamoDB.
type AnalysisResult struct {
	ReviewID   string         `json:"review_id" dynamodbav:"review_id"`
	ReviewText string         `json:"review_text" dynamodbav:"review_text"`
	Sentiment  SentimentLabel `json:"sentiment" dynamodbav:"sentiment"`
	KeyPoints  string         `json:"key_points" dynamodbav:"key_points"`
	Language   string         `json:"language" dynamodbav:"language"`
	AnalyzedAt time.Time      `json:"analyzed_at" dynamodbav:"analyzed_at"`
}
