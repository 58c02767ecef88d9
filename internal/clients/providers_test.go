package clients

import (
	"context"
	"testing"
	"time"

	"github.com/spacesedan/reviewsense/config"
	"github.com/spacesedan/reviewsense/internal/models"
)

func TestBuildStagesSkipsMissingKeys(t *testing.T) {
	stages := BuildStages(context.Background(), config.ProvidersConfig{
		Models: config.DefaultProviderModels(),
	})
	if len(stages) != 0 {
		t.Fatalf("stages = %d, want 0", len(stages))
	}
}

func TestBuildStagesOrder(t *testing.T) {
	stages := BuildStages(context.Background(), config.ProvidersConfig{
		GroqAPIKey:      "groq-key",
		AnthropicAPIKey: "anthropic-key",
		GroqBaseURL:     config.DefaultGroqBaseURL,
		Timeout:         5 * time.Second,
		Models:          config.DefaultProviderModels(),
	})
	if len(stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(stages))
	}
	if stages[0].Name() != "groq" || stages[1].Name() != "anthropic" {
		t.Fatalf("order = %s, %s", stages[0].Name(), stages[1].Name())
	}
	if !stages[0].SystemPrompt || stages[0].Timeout != 5*time.Second || stages[0].MaxTokens != 200 {
		t.Fatalf("groq stage = %+v", stages[0])
	}
	if stages[0].Models[0] != "llama-3.1-8b-instant" {
		t.Fatalf("groq models = %v", stages[0].Models)
	}
}

func TestBuildClassifierVader(t *testing.T) {
	c := BuildClassifier(config.ClassifierConfig{Backend: config.BackendVader})
	defer c.Close()

	label, _, err := c.Classify(context.Background(), "This is great, I love it!")
	if err != nil || label != models.SentimentPositive {
		t.Fatalf("Classify = %s, %v", label, err)
	}
}

func TestIsConnectionError(t *testing.T) {
	if isConnectionError(nil) {
		t.Fatal("nil is not a connection error")
	}
	for _, msg := range []string{"dial tcp: connection refused", "unexpected EOF", "read: i/o timeout"} {
		if !isConnectionError(errString(msg)) {
			t.Errorf("%q should be a connection error", msg)
		}
	}
	if isConnectionError(errString("WRONGTYPE")) {
		t.Error("WRONGTYPE is not a connection error")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
