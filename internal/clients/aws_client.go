package clients

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/spacesedan/reviewsense/config"
)

var (
	awsCfg  aws.Config
	awsErr  error
	awsOnce sync.Once
)

// GetAWSConfig loads the shared AWS config for the configured region once.
func GetAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	awsOnce.Do(func() {
		slog.Info("[AWSClient] Initializing AWS Config...", slog.String("region", cfg.Region))
		loaded, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			awsErr = fmt.Errorf("[AWSClient] failed to load AWS config: %w", err)
			return
		}
		awsCfg = loaded
		slog.Info("[AWSClient] AWS Config Initialized")
	})
	return awsCfg, awsErr
}

// GetDynamoDBClient builds a DynamoDB client. A non-empty endpoint points it at
// a local DynamoDB.
func GetDynamoDBClient(ctx context.Context, cfg config.AWSConfig) (*dynamodb.Client, error) {
	base, err := GetAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(base, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
