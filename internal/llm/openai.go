package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"briefdesk/internal/model"
)

// OpenAIProvider implements the Provider interface for any
// OpenAI-compatible chat completion endpoint (Groq by default)
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("inference API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai-compatible"
}

// IsAvailable checks if the provider is properly configured and reachable
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Summarize performs one blocking chat completion call and returns the
// generated summary. No retry, no multi-turn state.
func (p *OpenAIProvider) Summarize(ctx context.Context, req SummarizeRequest) (*model.SynthesisResult, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = p.config.Model
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req.Corpus, p.config.MaxPromptChars),
			},
		},
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, classifyAPIError(modelName, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response from endpoint", ErrModel)
	}

	return &model.SynthesisResult{
		Summary:     strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:       modelName,
		GeneratedAt: time.Now().UTC(),
		SourceCount: len(req.Corpus.Blocks),
		TokensUsed:  resp.Usage.TotalTokens,
	}, nil
}

// classifyAPIError separates endpoint-reported model failures from
// transport/auth failures. An API error with an auth status means the
// endpoint is unreachable for us; any other API error (bad request,
// decommissioned model, server fault) is a model-level failure.
func classifyAPIError(modelName string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		default:
			return fmt.Errorf("%w: model %s: %v", ErrModel, modelName, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
