package classifier

import (
	"strings"

	"github.com/spacesedan/reviewsense/internal/models"
)

// NormalizeLabel maps the label schemes used by common three-class sentiment
// models onto the canonical labels. Unknown labels are neutral.
func NormalizeLabel(raw string) models.SentimentLabel {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LABEL_2", "POSITIVE", "POS":
		return models.SentimentPositive
	case "LABEL_0", "NEGATIVE", "NEG":
		return models.SentimentNegative
	case "LABEL_1", "NEUTRAL", "NEU":
		return models.SentimentNeutral
	}
	return models.SentimentNeutral
}
