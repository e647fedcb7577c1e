package llm

import (
	"context"
	"errors"
	"fmt"

	"briefdesk/internal/model"
)

// ErrUnavailable marks a transport or authorization failure reaching the
// inference endpoint
var ErrUnavailable = errors.New("inference unavailable")

// ErrModel marks an endpoint-reported model failure (e.g. a
// decommissioned model identifier)
var ErrModel = errors.New("model error")

// Provider defines the interface for synthesis providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize performs one stateless inference call over the corpus
	Summarize(ctx context.Context, req SummarizeRequest) (*model.SynthesisResult, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for one synthesis call
type SummarizeRequest struct {
	// Corpus is the normalized text body to summarize
	Corpus model.NormalizedCorpus

	// Model overrides the configured model (optional)
	Model string
}

// Config holds synthesis provider configuration
type Config struct {
	// BaseURL of the OpenAI-compatible endpoint
	BaseURL string

	// APIKey for the endpoint
	APIKey string

	// Model is the default model identifier
	Model string

	// Timeout for API requests, seconds
	Timeout int

	// MaxPromptChars caps the corpus text placed into the prompt
	MaxPromptChars int
}

// DefaultConfig returns sensible defaults (Groq hosted endpoint)
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://api.groq.com/openai/v1",
		Model:          "llama-3.3-70b-versatile",
		Timeout:        60,
		MaxPromptChars: 30000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		BaseURL:        modelConfig.BaseURL,
		APIKey:         modelConfig.APIKey,
		Model:          modelConfig.Model,
		Timeout:        modelConfig.Timeout,
		MaxPromptChars: modelConfig.MaxPromptChars,
	}
}

// systemPrompt is the fixed instruction for the summary writer
const systemPrompt = "You are a professional AI researcher. Provide a clear, detailed executive summary. Use black-and-white professional formatting."

// BuildPrompt constructs the user prompt from the corpus, truncating the
// corpus text to the character budget to prevent context overflow
func BuildPrompt(corpus model.NormalizedCorpus, maxChars int) string {
	text := corpus.Text
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return fmt.Sprintf("Analyze the following data:\n%s", text)
}
