// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGroqBaseURL     = "https://api.groq.com/openai/v1/"
	DefaultProviderTimeout = 30 * time.Second
	DefaultModelDir        = "./models"
	DefaultModelName       = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	DefaultKafkaBroker     = "localhost:29092"
	DefaultConsumerGroup   = "reviewsense-analyzer"
	DefaultAWSRegion       = "us-west-2"
	DefaultReviewTable     = "AnalyzedReviews"

	BackendHugot = "hugot"
	BackendVader = "vader"
)

type Config struct {
	Env        string
	LogLevel   string
	Providers  ProvidersConfig
	Classifier ClassifierConfig
	Valkey     ValkeyConfig
	Kafka      KafkaConfig
	AWS        AWSConfig
}

type ProvidersConfig struct {
	GeminiAPIKey    string
	GroqAPIKey      string
	GroqBaseURL     string
	AnthropicAPIKey string
	Timeout         time.Duration
	ModelsFile      string
	Models          ProviderModels
}

type ClassifierConfig struct {
	Backend   string
	ModelDir  string
	ModelName string
}

type ValkeyConfig struct {
	InitAddress []string
	Password    string
	TLS         bool
}

// Enabled reports whether a Valkey address is configured.
func (v ValkeyConfig) Enabled() bool { return len(v.InitAddress) > 0 }

type KafkaConfig struct {
	Broker  string
	GroupID string
}

type AWSConfig struct {
	Endpoint string
	Region   string
	Table    string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// Load builds a Config from the environment. Call LoadEnv first to pull in an
// env file.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", DefaultProviderTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
	}

	useTLS, err := strconv.ParseBool(getEnv("VALKEY_TLS", "false"))
	if err != nil {
		return nil, fmt.Errorf("parse VALKEY_TLS: %w", err)
	}

	cfg := &Config{
		Env:      AppEnv(),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Providers: ProvidersConfig{
			GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
			GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
			GroqBaseURL:     getEnv("GROQ_BASE_URL", DefaultGroqBaseURL),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Timeout:         timeout,
			ModelsFile:      os.Getenv("PROVIDER_MODELS_FILE"),
		},
		Classifier: ClassifierConfig{
			Backend:   strings.ToLower(getEnv("CLASSIFIER_BACKEND", BackendHugot)),
			ModelDir:  getEnv("CLASSIFIER_MODEL_DIR", DefaultModelDir),
			ModelName: getEnv("CLASSIFIER_MODEL_NAME", DefaultModelName),
		},
		Valkey: ValkeyConfig{
			InitAddress: splitList(os.Getenv("VALKEY_INIT_ADDRESS")),
			Password:    os.Getenv("VALKEY_PASSWORD"),
			TLS:         useTLS,
		},
		Kafka: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", DefaultKafkaBroker),
			GroupID: getEnv("KAFKA_CONSUMER_GROUP_ID", DefaultConsumerGroup),
		},
		AWS: AWSConfig{
			Endpoint: os.Getenv("AWS_ENDPOINT"),
			Region:   getEnv("AWS_REGION", DefaultAWSRegion),
			Table:    getEnv("DYNAMODB_TABLE", DefaultReviewTable),
		},
	}

	switch cfg.Classifier.Backend {
	case BackendHugot, BackendVader:
	default:
		return nil, fmt.Errorf("unknown CLASSIFIER_BACKEND %q", cfg.Classifier.Backend)
	}

	models, err := LoadProviderModels(cfg.Providers.ModelsFile, DefaultProviderModels())
	if err != nil {
		return nil, err
	}
	cfg.Providers.Models = models

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
