package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
}

func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.UserAgent != "" {
		clientConfig.HTTPOptions.Headers = http.Header{"User-Agent": []string{cfg.UserAgent}}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.User), config)
	if err != nil {
		return "", NewError(g.Name(), req.Model, geminiStatus(err), err)
	}

	text := strings.TrimSpace(geminiText(resp))
	if text == "" {
		return "", NewError(g.Name(), req.Model, 0, ErrEmptyResponse)
	}
	return text, nil
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// geminiStatus digs the HTTP status out of a genai error. RESOURCE_EXHAUSTED
// maps to 429 even when the code is missing.
func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiStatus(apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiStatus(*apiErrPtr)
	}
	return 0
}

func apiStatus(e genai.APIError) int {
	if e.Code == 0 && strings.EqualFold(e.Status, "RESOURCE_EXHAUSTED") {
		return http.StatusTooManyRequests
	}
	if e.Code == 0 && strings.EqualFold(e.Status, "NOT_FOUND") {
		return http.StatusNotFound
	}
	return e.Code
}
