package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newOpenAITestClient(t *testing.T, handler http.HandlerFunc) *OpenAICompatible {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewOpenAICompatible(OpenAIConfig{
		Provider: "groq",
		APIKey:   "test-key",
		BaseURL:  ts.URL + "/",
		Timeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewOpenAICompatible: %v", err)
	}
	return client
}

func TestOpenAICompatibleGenerate(t *testing.T) {
	var got map[string]any
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "llama-3.1-8b-instant",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "  • Rasa enak\n• Pengiriman cepat  "}}]
		}`))
	})

	text, err := client.Generate(context.Background(), Request{
		Model:       "llama-3.1-8b-instant",
		System:      "system prompt",
		User:        "user prompt",
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "• Rasa enak\n• Pengiriman cepat" {
		t.Fatalf("text = %q", text)
	}

	if got["model"] != "llama-3.1-8b-instant" {
		t.Fatalf("model = %v", got["model"])
	}
	messages, _ := got["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages = %v, want system and user", got["messages"])
	}
	if got["max_tokens"] != float64(200) {
		t.Fatalf("max_tokens = %v", got["max_tokens"])
	}
}

func TestOpenAICompatibleClassifiesErrors(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached","type":"tokens"}}`, KindQuotaExceeded},
		{http.StatusNotFound, `{"error":{"message":"The model does not exist","type":"invalid_request_error"}}`, KindModelUnavailable},
		{http.StatusBadRequest, `{"error":{"message":"The model has been decommissioned","type":"invalid_request_error"}}`, KindModelUnavailable},
		{http.StatusInternalServerError, `{"error":{"message":"internal","type":"server_error"}}`, KindOther},
	}
	for _, tc := range cases {
		client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		})
		_, err := client.Generate(context.Background(), Request{Model: "m", User: "u"})
		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		if got := KindOf(err); got != tc.want {
			t.Errorf("status %d: kind = %s, want %s (%v)", tc.status, got, tc.want, err)
		}
	}
}

func TestOpenAICompatibleEmptyChoices(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	})
	_, err := client.Generate(context.Background(), Request{Model: "m", User: "u"})
	if err == nil || !strings.Contains(err.Error(), "empty response") {
		t.Fatalf("err = %v, want empty response", err)
	}
}

func TestNewClientsRequireKey(t *testing.T) {
	if _, err := NewOpenAICompatible(OpenAIConfig{}); err == nil {
		t.Fatal("expected error without key")
	}
	if _, err := NewAnthropic(AnthropicConfig{}); err == nil {
		t.Fatal("expected error without key")
	}
	if _, err := NewGemini(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected error without key")
	}
}
