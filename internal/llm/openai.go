package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
)

const GroqBaseURL = "https://api.groq.com/openai/v1/"

type OpenAIConfig struct {
	// Provider names the service in logs and errors, e.g. "groq".
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration

	// UserAgent overrides the SDK's User-Agent header when set.
	UserAgent string
}

// OpenAICompatible talks to any chat-completions API that follows the OpenAI
// wire format. Groq is the default target.
type OpenAICompatible struct {
	name   string
	client *openai.Client
}

func NewOpenAICompatible(cfg OpenAIConfig) (*OpenAICompatible, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai-compatible: api key is required")
	}
	if cfg.Provider == "" {
		cfg.Provider = "groq"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = GroqBaseURL
	}

	opts := []oaioption.RequestOption{
		oaioption.WithAPIKey(cfg.APIKey),
		oaioption.WithBaseURL(cfg.BaseURL),
		oaioption.WithMaxRetries(0),
		oaioption.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, oaioption.WithHeader("User-Agent", cfg.UserAgent))
	}
	client := openai.NewClient(opts...)
	return &OpenAICompatible{name: cfg.Provider, client: client}, nil
}

func (o *OpenAICompatible) Name() string { return o.name }

func (o *OpenAICompatible) Generate(ctx context.Context, req Request) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Model:       openai.F(openai.ChatModel(req.Model)),
		Messages:    openai.F(messages),
		Temperature: openai.F(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.F(int64(req.MaxTokens))
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		status := 0
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", NewError(o.name, req.Model, status, err)
	}

	if len(completion.Choices) == 0 {
		return "", NewError(o.name, req.Model, 0, ErrEmptyResponse)
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", NewError(o.name, req.Model, 0, ErrEmptyResponse)
	}
	return text, nil
}
