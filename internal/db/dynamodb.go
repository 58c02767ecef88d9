package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/reviewsense/internal/models"
)

const (
	maxBatchSize      = 25
	maxUnprocessed    = 3
	initialRetryDelay = 500 * time.Millisecond
	resultTTL         = 30 * 24 * time.Hour
)

var ErrNotFound = errors.New("db: review not found")

// DynamoAPI is the subset of the DynamoDB client the store uses.
type DynamoAPI interface {
	BatchWriteItem(ctx context.Context, in *dynamodb.BatchWriteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// ReviewStore persists analysis results keyed by review_id.
type ReviewStore struct {
	client DynamoAPI
	table  string

	// retryDelay is the first backoff for unprocessed items.
	retryDelay time.Duration
}

func NewReviewStore(client DynamoAPI, table string) *ReviewStore {
	return &ReviewStore{client: client, table: table, retryDelay: initialRetryDelay}
}

type resultItem struct {
	models.AnalysisResult
	ExpiresAt int64 `dynamodbav:"expires_at"`
}

// SaveResults writes results in chunks of 25, retrying unprocessed items with
// exponential backoff.
func (s *ReviewStore) SaveResults(ctx context.Context, results []models.AnalysisResult) error {
	expiresAt := time.Now().Add(resultTTL).Unix()

	for i := 0; i < len(results); i += maxBatchSize {
		if err := ctx.Err(); err != nil {
			slog.Warn("[DynamoDB] context canceled")
			return err
		}

		end := min(i+maxBatchSize, len(results))
		writeRequests := make([]types.WriteRequest, 0, end-i)
		for _, result := range results[i:end] {
			item, err := attributevalue.MarshalMap(resultItem{AnalysisResult: result, ExpiresAt: expiresAt})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to marshal result %s: %w", result.ReviewID, err)
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := s.writeBatch(ctx, writeRequests); err != nil {
			return err
		}
	}

	slog.Info("[DynamoDB] Stored analysis results", slog.Int("count", len(results)))
	return nil
}

func (s *ReviewStore) writeBatch(ctx context.Context, requests []types.WriteRequest) error {
	out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{s.table: requests},
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to batch write results: %w", err)
	}

	backoff := s.retryDelay
	for retry := 0; len(out.UnprocessedItems) > 0 && retry < maxUnprocessed; retry++ {
		slog.Warn("[DynamoDB] Retrying unprocessed items...",
			slog.Int("retry_attempt", retry+1),
			slog.Int("remaining_items", len(out.UnprocessedItems[s.table])))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2

		out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: out.UnprocessedItems,
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
		}
	}

	if remaining := len(out.UnprocessedItems[s.table]); remaining > 0 {
		return fmt.Errorf("[DynamoDB] %d items were not written after %d retries", remaining, maxUnprocessed)
	}
	return nil
}

// GetResult loads the stored result for reviewID.
func (s *ReviewStore) GetResult(ctx context.Context, reviewID string) (models.AnalysisResult, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"review_id": &types.AttributeValueMemberS{Value: reviewID},
		},
	})
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("[DynamoDB] Failed to get review %s: %w", reviewID, err)
	}
	if len(out.Item) == 0 {
		return models.AnalysisResult{}, ErrNotFound
	}

	var result models.AnalysisResult
	if err := attributevalue.UnmarshalMap(out.Item, &result); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("[DynamoDB] Failed to unmarshal review %s: %w", reviewID, err)
	}
	return result, nil
}
