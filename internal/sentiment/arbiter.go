package sentiment

import (
	"context"
	"log/slog"

	"github.com/spacesedan/reviewsense/internal/classifier"
	"github.com/spacesedan/reviewsense/internal/language"
	"github.com/spacesedan/reviewsense/internal/models"
)

// ConfidenceThreshold is the classifier probability above which it may
// corroborate the rule label for Indonesian text.
const ConfidenceThreshold = 0.7

// Arbiter picks a label per language. English text goes to the classifier;
// Indonesian text trusts the rules and only lets a confident classifier agree.
type Arbiter struct {
	Classifier classifier.Classifier
}

func NewArbiter(c classifier.Classifier) *Arbiter {
	return &Arbiter{Classifier: c}
}

// Analyze never fails. Classifier errors fall back to the rule scorer.
func (a *Arbiter) Analyze(ctx context.Context, text string) models.SentimentLabel {
	label, _ := a.AnalyzeWithLanguage(ctx, text)
	return label
}

// AnalyzeWithLanguage is Analyze that also returns the detected language.
func (a *Arbiter) AnalyzeWithLanguage(ctx context.Context, text string) (models.SentimentLabel, language.Language) {
	lang := language.Detect(text)
	if lang == language.English {
		return a.english(ctx, text), lang
	}
	return a.indonesian(ctx, text), lang
}

func (a *Arbiter) english(ctx context.Context, text string) models.SentimentLabel {
	label, _, err := a.classify(ctx, text)
	if err != nil {
		slog.Warn("[Arbiter] Classifier failed, using rule scorer for English text",
			slog.String("error", err.Error()))
		return ScoreIndonesian(text)
	}
	return label
}

func (a *Arbiter) indonesian(ctx context.Context, text string) models.SentimentLabel {
	ruleLabel, rule := Decide(Tally(text))

	modelLabel, confidence, err := a.classify(ctx, text)
	if err != nil {
		slog.Warn("[Arbiter] Classifier failed, using rule label",
			slog.String("rule", rule),
			slog.String("error", err.Error()))
		return ruleLabel
	}

	if confidence > ConfidenceThreshold && modelLabel == ruleLabel {
		return modelLabel
	}
	if confidence > ConfidenceThreshold {
		slog.Debug("[Arbiter] Confident classifier disagrees with rules, keeping rule label",
			slog.String("rule_label", ruleLabel.String()),
			slog.String("rule", rule),
			slog.String("model_label", modelLabel.String()),
			slog.Float64("confidence", confidence))
	}
	return ruleLabel
}

func (a *Arbiter) classify(ctx context.Context, text string) (models.SentimentLabel, float64, error) {
	if a.Classifier == nil {
		return "", 0, classifier.ErrNoClassifier
	}
	return a.Classifier.Classify(ctx, text)
}
