// Package classifier adapts pre-trained sentiment models to the three
// canonical labels.
package classifier

import (
	"context"
	"errors"

	"github.com/spacesedan/reviewsense/internal/models"
)

// ErrNoClassifier is returned when no backend is configured.
var ErrNoClassifier = errors.New("classifier: no backend configured")

// Classifier labels text and reports its probability for the chosen label.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.SentimentLabel, float64, error)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
