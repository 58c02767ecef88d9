package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/spacesedan/reviewsense/internal/models"
)

type fakeClassifier struct {
	label      models.SentimentLabel
	confidence float64
	err        error
	calls      int
}

func (f *fakeClassifier) Classify(context.Context, string) (models.SentimentLabel, float64, error) {
	f.calls++
	return f.label, f.confidence, f.err
}

func TestArbiterEnglishUsesClassifier(t *testing.T) {
	fc := &fakeClassifier{label: models.SentimentNegative, confidence: 0.4}
	got := NewArbiter(fc).Analyze(context.Background(), "Great phone, works perfectly.")
	if got != models.SentimentNegative {
		t.Fatalf("got %s, want classifier label negative", got)
	}
}

func TestArbiterEnglishFallsBackToRules(t *testing.T) {
	fc := &fakeClassifier{err: errors.New("onnx runtime missing")}
	got := NewArbiter(fc).Analyze(context.Background(), "The battery died after two days. Terrible quality.")
	if got != models.SentimentNegative {
		t.Fatalf("got %s, want negative from rules", got)
	}
}

func TestArbiterIndonesian(t *testing.T) {
	cases := []struct {
		name string
		fc   *fakeClassifier
		text string
		want models.SentimentLabel
	}{
		{
			name: "confident agreement",
			fc:   &fakeClassifier{label: models.SentimentPositive, confidence: 0.95},
			text: "produknya keren dan enak dimakan",
			want: models.SentimentPositive,
		},
		{
			name: "confident disagreement keeps rules",
			fc:   &fakeClassifier{label: models.SentimentNegative, confidence: 0.95},
			text: "produknya keren dan enak dimakan",
			want: models.SentimentPositive,
		},
		{
			name: "low confidence keeps rules",
			fc:   &fakeClassifier{label: models.SentimentPositive, confidence: 0.5},
			text: "sangat kecewa dan sangat buruk",
			want: models.SentimentNegative,
		},
		{
			name: "threshold is exclusive",
			fc:   &fakeClassifier{label: models.SentimentPositive, confidence: ConfidenceThreshold},
			text: "paket diterima hari ini",
			want: models.SentimentNeutral,
		},
		{
			name: "classifier unavailable",
			fc:   &fakeClassifier{err: errors.New("model not loaded")},
			text: "Barang jelek, sangat mengecewakan, tidak sesuai deskripsi",
			want: models.SentimentNegative,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewArbiter(tc.fc).Analyze(context.Background(), tc.text)
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
			if tc.fc.calls != 1 {
				t.Fatalf("classifier called %d times, want 1", tc.fc.calls)
			}
		})
	}
}

func TestArbiterNilClassifier(t *testing.T) {
	a := &Arbiter{}
	if got := a.Analyze(context.Background(), "produknya keren dan enak dimakan"); got != models.SentimentPositive {
		t.Fatalf("got %s, want positive", got)
	}
	if got := a.Analyze(context.Background(), ""); got != models.SentimentNeutral {
		t.Fatalf("got %s for empty text, want neutral", got)
	}
}
