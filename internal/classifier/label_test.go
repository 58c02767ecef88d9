package classifier

import (
	"testing"

	"github.com/spacesedan/reviewsense/internal/models"
)

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]models.SentimentLabel{
		"LABEL_2":  models.SentimentPositive,
		"positive": models.SentimentPositive,
		"POS":      models.SentimentPositive,
		"LABEL_0":  models.SentimentNegative,
		"Negative": models.SentimentNegative,
		"neg":      models.SentimentNegative,
		"LABEL_1":  models.SentimentNeutral,
		"neutral":  models.SentimentNeutral,
		"weird":    models.SentimentNeutral,
		"":         models.SentimentNeutral,
	}
	for raw, want := range cases {
		if got := NormalizeLabel(raw); got != want {
			t.Errorf("NormalizeLabel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestBestPicksHighestScore(t *testing.T) {
	label, conf, err := best([]pipelineOutput{
		{Label: "negative", Score: 0.1},
		{Label: "neutral", Score: 0.2},
		{Label: "positive", Score: 0.7},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != models.SentimentPositive {
		t.Fatalf("label = %s, want positive", label)
	}
	if conf < 0.69 || conf > 0.71 {
		t.Fatalf("confidence = %f, want ~0.7", conf)
	}

	if _, _, err := best(nil); err == nil {
		t.Fatal("expected error for empty output")
	}
}
