package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spacesedan/reviewsense/internal/keypoints"
	"github.com/spacesedan/reviewsense/internal/review"
)

// offlineEnv keeps the commands away from real providers and models.
func offlineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("PROVIDER_MODELS_FILE", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("VALKEY_TLS", "")
	t.Setenv("CLASSIFIER_BACKEND", "vader")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestDetect(t *testing.T) {
	out, err := run(t, "", "detect", "produknya keren")
	if err != nil || strings.TrimSpace(out) != "id" {
		t.Fatalf("detect = %q, %v", out, err)
	}
	out, err = run(t, "The battery lasts all day\n", "detect")
	if err != nil || strings.TrimSpace(out) != "en" {
		t.Fatalf("detect from stdin = %q, %v", out, err)
	}
}

func TestAnalyzeOffline(t *testing.T) {
	offlineEnv(t)

	out, err := run(t, "", "analyze", "produknya keren dan enak dimakan")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got analyzeOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Sentiment != "positive" || got.Language != "id" {
		t.Fatalf("got %+v", got)
	}
	if !strings.HasPrefix(got.KeyPoints, keypoints.Bullet) {
		t.Fatalf("key points = %q", got.KeyPoints)
	}
}

func TestAnalyzeTraceFromFile(t *testing.T) {
	offlineEnv(t)
	path := filepath.Join(t.TempDir(), "review.txt")
	if err := os.WriteFile(path, []byte("This is terrible and awful. The screen cracked after one day of use.\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "", "analyze", "--trace", "-f", path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got analyzeOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Sentiment != "negative" || got.Language != "en" || len(got.Attempts) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestAnalyzeRejectsBlank(t *testing.T) {
	offlineEnv(t)
	if _, err := run(t, "", "analyze", "   "); !errors.Is(err, review.ErrEmptyReview) {
		t.Fatalf("err = %v, want ErrEmptyReview", err)
	}
}

func TestModels(t *testing.T) {
	offlineEnv(t)
	out, err := run(t, "", "models")
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	for _, want := range []string{"gemini:", "groq:", "anthropic:", "gemini-2.5-flash"} {
		if !strings.Contains(out, want) {
			t.Errorf("models output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheClearNeedsAddress(t *testing.T) {
	offlineEnv(t)
	t.Setenv("VALKEY_INIT_ADDRESS", "")
	if _, err := run(t, "", "cache", "clear"); err == nil {
		t.Fatal("expected error without a valkey address")
	}
}
