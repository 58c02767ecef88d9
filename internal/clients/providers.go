package clients

import (
	"context"
	"log/slog"

	"github.com/spacesedan/reviewsense/config"
	"github.com/spacesedan/reviewsense/internal/classifier"
	"github.com/spacesedan/reviewsense/internal/keypoints"
	"github.com/spacesedan/reviewsense/internal/llm"
	"github.com/spacesedan/reviewsense/internal/review"
	"github.com/spacesedan/reviewsense/internal/sentiment"
)

// BuildStages returns the key-point cascade in priority order: Gemini, Groq,
// then Anthropic. A provider without an API key is left out.
func BuildStages(ctx context.Context, cfg config.ProvidersConfig) []keypoints.Stage {
	stage := func(client llm.Client, models []string, system bool) keypoints.Stage {
		return keypoints.Stage{
			Client:       client,
			Models:       models,
			SystemPrompt: system,
			Temperature:  keypoints.DefaultTemperature,
			MaxTokens:    keypoints.DefaultMaxTokens,
			Timeout:      cfg.Timeout,
		}
	}

	var stages []keypoints.Stage

	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, llm.GeminiConfig{
			APIKey:    cfg.GeminiAPIKey,
			Timeout:   cfg.Timeout,
			UserAgent: USER_AGENT,
		})
		if err != nil {
			slog.Warn("[Providers] Gemini disabled", slog.String("error", err.Error()))
		} else {
			stages = append(stages, stage(gemini, cfg.Models.Gemini, false))
		}
	}

	if cfg.GroqAPIKey != "" {
		groq, err := llm.NewOpenAICompatible(llm.OpenAIConfig{
			Provider:  "groq",
			APIKey:    cfg.GroqAPIKey,
			BaseURL:   cfg.GroqBaseURL,
			Timeout:   cfg.Timeout,
			UserAgent: USER_AGENT,
		})
		if err != nil {
			slog.Warn("[Providers] Groq disabled", slog.String("error", err.Error()))
		} else {
			stages = append(stages, stage(groq, cfg.Models.Groq, true))
		}
	}

	if cfg.AnthropicAPIKey != "" {
		claude, err := llm.NewAnthropic(llm.AnthropicConfig{
			APIKey:    cfg.AnthropicAPIKey,
			Timeout:   cfg.Timeout,
			UserAgent: USER_AGENT,
		})
		if err != nil {
			slog.Warn("[Providers] Anthropic disabled", slog.String("error", err.Error()))
		} else {
			stages = append(stages, stage(claude, cfg.Models.Anthropic, true))
		}
	}

	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name())
	}
	slog.Info("[Providers] Key-point cascade configured", slog.Any("providers", names))
	return stages
}

// BuildClassifier returns the configured sentiment classifier. The hugot
// backend downloads and loads its model on first use.
func BuildClassifier(cfg config.ClassifierConfig) *classifier.Lazy {
	if cfg.Backend == config.BackendVader {
		return classifier.NewLazy(func(context.Context) (classifier.Classifier, error) {
			return classifier.NewVader(), nil
		})
	}

	return classifier.NewLazy(func(context.Context) (classifier.Classifier, error) {
		path, err := classifier.EnsureModel(cfg.ModelDir, cfg.ModelName)
		if err != nil {
			return nil, err
		}
		return classifier.NewHugot(path)
	})
}

// BuildAnalyzer wires the arbiter and the extractor from cfg. cache may be nil.
// The returned classifier must be closed by the caller.
func BuildAnalyzer(ctx context.Context, cfg *config.Config, cache review.Cache) (*review.Analyzer, *classifier.Lazy) {
	lazy := BuildClassifier(cfg.Classifier)
	extractor := keypoints.NewExtractor(BuildStages(ctx, cfg.Providers)...)
	return review.NewAnalyzer(sentiment.NewArbiter(lazy), extractor, cache), lazy
}
