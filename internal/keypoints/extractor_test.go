package keypoints

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/spacesedan/reviewsense/internal/llm"
)

func quotaErr(provider, model string) error {
	return llm.NewError(provider, model, http.StatusTooManyRequests, errors.New("RESOURCE_EXHAUSTED"))
}

func TestExtractWithoutProvidersUsesLocal(t *testing.T) {
	e := NewExtractor()
	inputs := []string{
		"produknya keren dan enak dimakan",
		"ok",
		"Great phone overall. The battery lasts two full days.",
		"Great phone overall\nBattery lasts two full days\nCamera is excellent in daylight",
		"   ",
	}
	for _, in := range inputs {
		got := e.Extract(context.Background(), in)
		if got == "" {
			t.Errorf("Extract(%q) returned empty", in)
		}
		assertBulletLines(t, got, MaxLocalLineRunes)
	}
	if got := e.Extract(context.Background(), "   "); got != TooShortEnglish {
		t.Fatalf("Extract(blank) = %q, want too-short bullet", got)
	}
}

func TestExtractQuotaSkipsRemainingModels(t *testing.T) {
	primary := &llm.Fake{
		ProviderName: "gemini",
		Responses: map[string]llm.FakeResponse{
			"g1": {Err: quotaErr("gemini", "g1")},
			"g2": {Text: "• should never be used"},
		},
	}
	secondary := &llm.Fake{
		ProviderName: "groq",
		Responses:    map[string]llm.FakeResponse{"q1": {Text: "• Rasa enak\n• Tampilan menarik"}},
	}

	e := NewExtractor(
		Stage{Client: primary, Models: []string{"g1", "g2"}},
		Stage{Client: secondary, Models: []string{"q1"}, SystemPrompt: true},
	)
	got, attempts := e.ExtractWithTrace(context.Background(), "produknya keren dan enak dimakan")

	if models := primary.Models(); len(models) != 1 || models[0] != "g1" {
		t.Fatalf("primary models tried = %v, want [g1]", models)
	}
	if len(secondary.Calls()) != 1 {
		t.Fatalf("secondary calls = %d, want 1", len(secondary.Calls()))
	}
	if got != "• Rasa enak\n• Tampilan menarik" {
		t.Fatalf("Extract = %q", got)
	}
	if len(attempts) != 2 || attempts[0].Outcome != OutcomeQuotaExceeded || attempts[1].Outcome != OutcomeSuccess {
		t.Fatalf("attempts = %+v", attempts)
	}
}

func TestExtractQuotaOnSecondaryFallsToLocal(t *testing.T) {
	secondary := &llm.Fake{
		ProviderName: "groq",
		Responses: map[string]llm.FakeResponse{
			"q1": {Err: quotaErr("groq", "q1")},
			"q2": {Text: "• unused"},
		},
	}
	e := NewExtractor(Stage{Client: secondary, Models: []string{"q1", "q2"}})

	text := "Barang sampai dengan cepat. Kualitasnya bagus sekali dan sesuai deskripsi."
	if got := e.Extract(context.Background(), text); got != Local(text) {
		t.Fatalf("Extract = %q, want local output %q", got, Local(text))
	}
	if n := len(secondary.Calls()); n != 1 {
		t.Fatalf("secondary calls = %d, want 1", n)
	}
}

func TestExtractSkipsUnavailableAndFailingModels(t *testing.T) {
	primary := &llm.Fake{
		ProviderName: "gemini",
		Responses: map[string]llm.FakeResponse{
			"broken": {Err: errors.New("connection reset")},
			"good":   {Text: "Here are the key points:\n- Battery lasts two days\n- Price is fair"},
		},
	}
	e := NewExtractor(Stage{Client: primary, Models: []string{"missing", "broken", "good"}})

	got, attempts := e.ExtractWithTrace(context.Background(), "Great phone. The battery lasts two days.")
	if got != "• Battery lasts two days\n• Price is fair" {
		t.Fatalf("Extract = %q", got)
	}
	want := []Outcome{OutcomeModelUnavailable, OutcomeError, OutcomeSuccess}
	if len(attempts) != len(want) {
		t.Fatalf("attempts = %+v", attempts)
	}
	for i, o := range want {
		if attempts[i].Outcome != o {
			t.Fatalf("attempt %d outcome = %s, want %s", i, attempts[i].Outcome, o)
		}
	}
}

func TestExtractNormalizesIndonesianOutput(t *testing.T) {
	primary := &llm.Fake{
		ProviderName: "gemini",
		Responses: map[string]llm.FakeResponse{
			"g1": {Text: "Berikut adalah poin-poin penting:\n1. Produk ini memiliki tampilan menarik\n2. Harga tidak disebutkan secara spesifik\n3. Rasa enak"},
		},
	}
	e := NewExtractor(Stage{Client: primary, Models: []string{"g1"}})

	got := e.Extract(context.Background(), "produknya keren dan enak dimakan")
	if got != "• Tampilan menarik\n• Rasa enak" {
		t.Fatalf("Extract = %q", got)
	}
}

func TestExtractEmptyAfterNormalizeUsesLocal(t *testing.T) {
	primary := &llm.Fake{
		ProviderName: "gemini",
		Responses:    map[string]llm.FakeResponse{"g1": {Text: "Kesimpulan:\nHarga tidak disebutkan"}},
	}
	secondary := &llm.Fake{ProviderName: "groq", Responses: map[string]llm.FakeResponse{"q1": {Text: "• unused"}}}
	e := NewExtractor(
		Stage{Client: primary, Models: []string{"g1"}},
		Stage{Client: secondary, Models: []string{"q1"}},
	)

	text := "Kualitasnya bagus sekali dan sesuai deskripsi."
	got, attempts := e.ExtractWithTrace(context.Background(), text)
	if got != Local(text) || got == "" {
		t.Fatalf("Extract = %q, want local output", got)
	}
	if len(secondary.Calls()) != 0 {
		t.Fatal("secondary should not be called after empty normalization")
	}
	if attempts[len(attempts)-1].Outcome != OutcomeEmptyAfterClean {
		t.Fatalf("attempts = %+v", attempts)
	}
}

func TestExtractPromptShape(t *testing.T) {
	primary := &llm.Fake{ProviderName: "gemini", Responses: map[string]llm.FakeResponse{"g1": {Text: "• ok point here"}}}
	secondary := &llm.Fake{ProviderName: "groq", Responses: map[string]llm.FakeResponse{"q1": {Text: "• ok point here"}}}

	NewExtractor(Stage{Client: primary, Models: []string{"g1"}}).Extract(context.Background(), "produknya keren")
	NewExtractor(Stage{Client: secondary, Models: []string{"q1"}, SystemPrompt: true, Temperature: 0.7, MaxTokens: 200}).
		Extract(context.Background(), "produknya keren")

	p := primary.Calls()[0]
	if p.System != "" || !strings.Contains(p.User, "produknya keren") {
		t.Fatalf("primary request = %+v", p)
	}
	s := secondary.Calls()[0]
	if s.System == "" || s.Temperature != 0.7 || s.MaxTokens != 200 {
		t.Fatalf("secondary request = %+v", s)
	}
}

func TestExtractSkipsUnconfiguredStages(t *testing.T) {
	e := NewExtractor(Stage{Models: []string{"g1"}}, Stage{Client: &llm.Fake{}})
	got, attempts := e.ExtractWithTrace(context.Background(), "produknya keren dan enak dimakan")
	if got == "" || len(attempts) != 0 {
		t.Fatalf("got %q with attempts %+v", got, attempts)
	}
}
