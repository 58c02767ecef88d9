package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	antoption "github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 512

type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type Anthropic struct {
	client anthropic.Client
}

func NewAnthropic(cfg AnthropicConfig) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}

	opts := []antoption.RequestOption{
		antoption.WithAPIKey(cfg.APIKey),
		antoption.WithMaxRetries(0),
		antoption.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, antoption.WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, antoption.WithHeader("User-Agent", cfg.UserAgent))
	}
	return &Anthropic{client: anthropic.NewClient(opts...)}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		status := 0
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", NewError(a.Name(), req.Model, status, err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		switch blk := block.AsAny().(type) {
		case anthropic.TextBlock:
			b.WriteString(blk.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", NewError(a.Name(), req.Model, 0, ErrEmptyResponse)
	}
	return text, nil
}
