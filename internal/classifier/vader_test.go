package classifier

import (
	"context"
	"testing"

	"github.com/spacesedan/reviewsense/internal/models"
)

func TestVaderClassify(t *testing.T) {
	v := NewVader()
	ctx := context.Background()

	cases := []struct {
		text string
		want models.SentimentLabel
	}{
		{"This is great, I love it!", models.SentimentPositive},
		{"This is terrible and awful.", models.SentimentNegative},
		{"The box arrived on Tuesday.", models.SentimentNeutral},
	}
	for _, tc := range cases {
		label, conf, err := v.Classify(ctx, tc.text)
		if err != nil {
			t.Fatalf("Classify(%q): %v", tc.text, err)
		}
		if label != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.text, label, tc.want)
		}
		if conf < 0 || conf > 1 {
			t.Errorf("Classify(%q) confidence %f out of range", tc.text, conf)
		}
	}
}

func TestVaderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewVader().Classify(ctx, "great"); err == nil {
		t.Fatal("expected context error")
	}
}
