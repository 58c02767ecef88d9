// Package keypoints extracts bullet-point key points from a review. It walks a
// cascade of generation providers and falls back to a deterministic local
// extractor, so Extract always returns text.
package keypoints

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/reviewsense/internal/language"
	"github.com/spacesedan/reviewsense/internal/llm"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 200
)

// Stage is one provider in the cascade with the models to try, in order.
type Stage struct {
	Client llm.Client
	Models []string

	// SystemPrompt sends the system instruction alongside the user prompt.
	SystemPrompt bool
	Temperature  float64
	MaxTokens    int

	// Timeout bounds each model attempt. Zero means no extra deadline.
	Timeout time.Duration
}

// Name is the provider name, or "unconfigured" for a stage without a client.
func (s Stage) Name() string {
	if s.Client == nil {
		return "unconfigured"
	}
	return s.Client.Name()
}

type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeModelUnavailable Outcome = "model_unavailable"
	OutcomeQuotaExceeded    Outcome = "quota_exceeded"
	OutcomeError            Outcome = "error"
	OutcomeEmptyAfterClean  Outcome = "empty_after_normalize"
)

// Attempt records one model call made while walking the cascade.
type Attempt struct {
	Provider string
	Model    string
	Outcome  Outcome
	Err      error
}

// Extractor runs the stages in order and falls back to Local.
type Extractor struct {
	Stages []Stage
}

func NewExtractor(stages ...Stage) *Extractor {
	return &Extractor{Stages: stages}
}

// Extract returns newline-joined bullet lines for text. It never returns an
// empty string.
func (e *Extractor) Extract(ctx context.Context, text string) string {
	out, _ := e.ExtractWithTrace(ctx, text)
	return out
}

// ExtractWithTrace is Extract that also reports every provider attempt.
func (e *Extractor) ExtractWithTrace(ctx context.Context, text string) (string, []Attempt) {
	if strings.TrimSpace(text) == "" {
		return Local(text), nil
	}

	lang := language.Detect(text)
	prompt := BuildPrompt(lang, text)

	var attempts []Attempt
	for _, stage := range e.Stages {
		if stage.Client == nil || len(stage.Models) == 0 {
			continue
		}

		raw, tried := e.runStage(ctx, stage, prompt)
		attempts = append(attempts, tried...)
		if raw == "" {
			continue
		}

		normalized := normalize(lang, raw)
		if normalized != "" {
			return normalized, attempts
		}

		last := &attempts[len(attempts)-1]
		last.Outcome = OutcomeEmptyAfterClean
		slog.Warn("[KeyPoints] Provider output normalized to nothing, using local extractor",
			slog.String("provider", last.Provider),
			slog.String("model", last.Model))
		break
	}

	return Local(text), attempts
}

// runStage tries each model until one answers. A quota error ends the stage.
func (e *Extractor) runStage(ctx context.Context, stage Stage, prompt Prompt) (string, []Attempt) {
	var attempts []Attempt

	for _, model := range stage.Models {
		req := llm.Request{
			Model:       model,
			User:        prompt.User,
			Temperature: stage.Temperature,
			MaxTokens:   stage.MaxTokens,
		}
		if stage.SystemPrompt {
			req.System = prompt.System
		}

		text, err := generate(ctx, stage, req)
		attempt := Attempt{Provider: stage.Name(), Model: model, Err: err}

		if err == nil && strings.TrimSpace(text) != "" {
			attempt.Outcome = OutcomeSuccess
			attempts = append(attempts, attempt)
			slog.Info("[KeyPoints] Extracted key points",
				slog.String("provider", attempt.Provider),
				slog.String("model", model))
			return text, attempts
		}
		if err == nil {
			err = llm.ErrEmptyResponse
			attempt.Err = err
		}

		switch llm.KindOf(err) {
		case llm.KindQuotaExceeded:
			attempt.Outcome = OutcomeQuotaExceeded
			attempts = append(attempts, attempt)
			slog.Warn("[KeyPoints] Provider quota exceeded, skipping remaining models",
				slog.String("provider", attempt.Provider),
				slog.String("model", model))
			return "", attempts
		case llm.KindModelUnavailable:
			attempt.Outcome = OutcomeModelUnavailable
			slog.Debug("[KeyPoints] Model unavailable, trying next",
				slog.String("provider", attempt.Provider),
				slog.String("model", model))
		default:
			attempt.Outcome = OutcomeError
			slog.Warn("[KeyPoints] Provider call failed, trying next model",
				slog.String("provider", attempt.Provider),
				slog.String("model", model),
				slog.String("error", err.Error()))
		}
		attempts = append(attempts, attempt)

		if errors.Is(ctx.Err(), context.Canceled) {
			return "", attempts
		}
	}
	return "", attempts
}

func generate(ctx context.Context, stage Stage, req llm.Request) (string, error) {
	if stage.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, stage.Timeout)
		defer cancel()
	}
	return stage.Client.Generate(ctx, req)
}

func normalize(lang language.Language, text string) string {
	if lang == language.Indonesian {
		return NormalizeIndonesian(text)
	}
	return NormalizeEnglish(text)
}
