package model

import "time"

// Config is the process-wide configuration, assembled from defaults, the
// config file, environment variables and CLI flags (in rising priority).
type Config struct {
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Sheets   SheetsConfig   `yaml:"sheets" mapstructure:"sheets"`
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
}

// LLMConfig configures the hosted inference endpoint
type LLMConfig struct {
	// BaseURL of the OpenAI-compatible endpoint
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// APIKey is read from GROQ_API_KEY (never persisted to the config file)
	APIKey string `yaml:"-" mapstructure:"-"`

	// Model is the default model identifier
	Model string `yaml:"model" mapstructure:"model"`

	// Timeout for one inference call, seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// MaxPromptChars caps the corpus text placed into the prompt
	MaxPromptChars int `yaml:"max_prompt_chars" mapstructure:"max_prompt_chars"`
}

// SheetsConfig configures the Google Sheets reader
type SheetsConfig struct {
	// APIKey is read from GOOGLE_SHEETS_API_KEY
	APIKey string `yaml:"-" mapstructure:"-"`

	// DefaultRange applies when a run supplies no A1 range
	DefaultRange string `yaml:"default_range" mapstructure:"default_range"`
}

// HTTPConfig configures outbound fetches (remote PDFs)
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// PipelineConfig configures the run pipeline
type PipelineConfig struct {
	// MinContentChars is the validator threshold
	MinContentChars int `yaml:"min_content_chars" mapstructure:"min_content_chars"`

	// ReportsDir is where report artifacts are written
	ReportsDir string `yaml:"reports_dir" mapstructure:"reports_dir"`

	// TopWords is how many frequency entries the dashboard shows
	TopWords int `yaml:"top_words" mapstructure:"top_words"`
}

// ServerConfig configures the dashboard server
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// HistoryTTL is how long finished runs stay visible
	HistoryTTL time.Duration `yaml:"history_ttl" mapstructure:"history_ttl"`

	// HistorySize caps the run-history listing
	HistorySize int `yaml:"history_size" mapstructure:"history_size"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama-3.3-70b-versatile",
			Timeout:        60,
			MaxPromptChars: 30000,
		},
		Sheets: SheetsConfig{
			DefaultRange: "A:Z",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "briefdesk/0.1 (+https://github.com/briefdesk)",
			MaxBodyBytes: 20_000_000,
		},
		Pipeline: PipelineConfig{
			MinContentChars: 10,
			ReportsDir:      "reports",
			TopWords:        10,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			HistoryTTL:  24 * time.Hour,
			HistorySize: 50,
		},
	}
}
