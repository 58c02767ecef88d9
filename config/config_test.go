package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "GEMINI_API_KEY", "GROQ_API_KEY", "GROQ_BASE_URL", "ANTHROPIC_API_KEY",
		"PROVIDER_TIMEOUT", "PROVIDER_MODELS_FILE", "CLASSIFIER_BACKEND", "CLASSIFIER_MODEL_DIR",
		"CLASSIFIER_MODEL_NAME", "VALKEY_INIT_ADDRESS", "VALKEY_TLS", "KAFKA_BROKER",
		"KAFKA_CONSUMER_GROUP_ID", "AWS_ENDPOINT", "AWS_REGION", "DYNAMODB_TABLE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" || cfg.LogLevel != "info" {
		t.Fatalf("env/log level = %q/%q", cfg.Env, cfg.LogLevel)
	}
	if cfg.Providers.Timeout != DefaultProviderTimeout || cfg.Providers.GroqBaseURL != DefaultGroqBaseURL {
		t.Fatalf("providers = %+v", cfg.Providers)
	}
	if cfg.Classifier.Backend != BackendHugot || cfg.Classifier.ModelName != DefaultModelName {
		t.Fatalf("classifier = %+v", cfg.Classifier)
	}
	if cfg.Valkey.Enabled() {
		t.Fatal("valkey should be disabled without an address")
	}
	if cfg.Kafka.GroupID != DefaultConsumerGroup || cfg.AWS.Table != DefaultReviewTable {
		t.Fatalf("kafka/aws = %+v %+v", cfg.Kafka, cfg.AWS)
	}
	if got := cfg.Providers.Models.Gemini[0]; got != "gemini-2.5-flash" {
		t.Fatalf("first gemini model = %q", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("CLASSIFIER_BACKEND", "VADER")
	t.Setenv("VALKEY_INIT_ADDRESS", "localhost:6379, localhost:6380")
	t.Setenv("VALKEY_TLS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Providers.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.Providers.Timeout)
	}
	if cfg.Classifier.Backend != BackendVader {
		t.Fatalf("backend = %q", cfg.Classifier.Backend)
	}
	if len(cfg.Valkey.InitAddress) != 2 || cfg.Valkey.InitAddress[1] != "localhost:6380" || !cfg.Valkey.TLS {
		t.Fatalf("valkey = %+v", cfg.Valkey)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad timeout")
	}

	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("CLASSIFIER_BACKEND", "bert")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadProviderModelsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	data := []byte("groq:\n  - llama-3.3-70b-versatile\n  - llama-3.1-8b-instant\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	base := DefaultProviderModels()
	got, err := LoadProviderModels(path, base)
	if err != nil {
		t.Fatalf("LoadProviderModels: %v", err)
	}
	if len(got.Groq) != 2 || got.Groq[0] != "llama-3.3-70b-versatile" {
		t.Fatalf("groq = %v", got.Groq)
	}
	if len(got.Gemini) != len(base.Gemini) {
		t.Fatalf("gemini list should be untouched, got %v", got.Gemini)
	}

	if _, err := LoadProviderModels(filepath.Join(t.TempDir(), "missing.yaml"), base); err == nil {
		t.Fatal("expected error for missing file")
	}
}
