package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newAnthropicTestClient(t *testing.T, handler http.HandlerFunc) *Anthropic {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewAnthropic(AnthropicConfig{APIKey: "test-key", BaseURL: ts.URL + "/", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewAnthropic: %v", err)
	}
	return client
}

func TestAnthropicGenerate(t *testing.T) {
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "• Battery lasts two days"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	})

	text, err := client.Generate(context.Background(), Request{Model: "claude-3-5-haiku-latest", System: "s", User: "u"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "• Battery lasts two days" {
		t.Fatalf("text = %q", text)
	}
}

func TestAnthropicRateLimit(t *testing.T) {
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	})

	_, err := client.Generate(context.Background(), Request{Model: "m", User: "u"})
	if KindOf(err) != KindQuotaExceeded {
		t.Fatalf("err = %v, want quota kind", err)
	}
}
