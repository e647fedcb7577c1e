package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"briefdesk/internal/llm"
	"briefdesk/internal/model"
	"briefdesk/internal/pipeline"
	"briefdesk/internal/report"
	"briefdesk/internal/server"
	"briefdesk/internal/source"
	"briefdesk/internal/stats"
)

var (
	addr        string
	reportsDir  string
	modelName   string
	baseURL     string
	minChars    int
	promptChars int
	httpTimeout time.Duration
	historyTTL  time.Duration
)

// serveCmd represents the serve command: the single "start the app" entry
// point
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard and run pipeline",
	Long: `Serve starts the web dashboard. Each user-triggered run:
- Extracts text from the submitted PDF, Sheet and transcript sources
- Normalizes the text into one labeled corpus
- Validates the corpus against the minimum-content threshold
- Requests an executive summary from the inference endpoint
- Writes a timestamped report file exposed for download

Credentials are read from the environment at startup: GROQ_API_KEY is
required; GOOGLE_SHEETS_API_KEY is needed only for sheet sources.

Example:
  briefdesk serve
  briefdesk serve --addr :9000 --reports-dir ./reports
  briefdesk serve --model mixtral-8x7b-32768`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "dashboard listen address")
	serveCmd.Flags().StringVar(&reportsDir, "reports-dir", "reports", "directory for report artifacts")
	serveCmd.Flags().StringVar(&modelName, "model", "llama-3.3-70b-versatile", "default inference model")
	serveCmd.Flags().StringVar(&baseURL, "base-url", "https://api.groq.com/openai/v1", "OpenAI-compatible endpoint base URL")
	serveCmd.Flags().IntVar(&minChars, "min-chars", 10, "minimum corpus length to allow synthesis")
	serveCmd.Flags().IntVar(&promptChars, "max-prompt-chars", 30000, "corpus character budget for the prompt")
	serveCmd.Flags().DurationVar(&httpTimeout, "fetch-timeout", 30*time.Second, "timeout for remote PDF fetches")
	serveCmd.Flags().DurationVar(&historyTTL, "history-ttl", 24*time.Hour, "how long finished runs stay visible")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Build configuration from defaults and flags
	cfg := model.DefaultConfig()
	cfg.Server.Addr = addr
	cfg.Server.HistoryTTL = historyTTL
	cfg.Pipeline.ReportsDir = reportsDir
	cfg.Pipeline.MinContentChars = minChars
	cfg.LLM.Model = modelName
	cfg.LLM.BaseURL = baseURL
	cfg.LLM.MaxPromptChars = promptChars
	cfg.HTTP.Timeout = httpTimeout

	// Credentials come from the environment; missing inference
	// credentials fail fast before any run starts
	cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY environment variable not set")
	}
	cfg.Sheets.APIKey = os.Getenv("GOOGLE_SHEETS_API_KEY")

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	provider, err := llm.NewOpenAIProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("init inference provider: %w", err)
	}

	fetcher := source.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes)
	resolver := source.NewResolver(
		source.NewPDFReader(fetcher),
		source.NewSheetReader(cfg.Sheets.APIKey, cfg.Sheets.DefaultRange),
		source.NewTranscriptReader(),
	)

	p := pipeline.New(
		resolver,
		provider,
		report.NewWriter(cfg.Pipeline.ReportsDir),
		stats.NewProfiler(cfg.Pipeline.TopWords),
		cfg.Pipeline.MinContentChars,
		logger,
	)

	return server.New(cfg, p, logger).Run()
}

// newLogger builds the process logger; verbose enables debug output
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
