package classifier

import (
	"context"
	"math"

	"github.com/jonreiter/govader"

	"github.com/spacesedan/reviewsense/internal/models"
)

const vaderThreshold = 0.20

// Vader scores text with the VADER lexicon. It loads instantly and needs no
// model files, so it also serves as the offline backend.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the raw VADER compound score in [-1, 1].
func (v *Vader) Compound(text string) float64 {
	return v.analyzer.PolarityScores(PlainText(text)).Compound
}

func (v *Vader) Classify(ctx context.Context, text string) (models.SentimentLabel, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	score := v.Compound(text)
	switch {
	case score >= vaderThreshold:
		return models.SentimentPositive, clamp01(math.Abs(score)), nil
	case score <= -vaderThreshold:
		return models.SentimentNegative, clamp01(math.Abs(score)), nil
	default:
		return models.SentimentNeutral, clamp01(1 - math.Abs(score)), nil
	}
}
