package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"briefdesk/internal/model"
	"briefdesk/internal/pipeline"
)

// Server is the dashboard: the sole UI surface. It serves the embedded
// page, a JSON API for triggering and inspecting runs, and the report
// download action.
type Server struct {
	cfg      *model.Config
	pipeline *pipeline.Pipeline
	history  *History
	logger   *zap.Logger
	engine   *gin.Engine

	// runMu serializes runs: one user-triggered run at a time
	runMu sync.Mutex

	// activeMu guards the live view of the in-flight run
	activeMu   sync.Mutex
	activeSink *pipeline.MemorySink
}

// New creates the dashboard server
func New(cfg *model.Config, p *pipeline.Pipeline, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:      cfg,
		pipeline: p,
		history:  NewHistory(cfg.Server.HistoryTTL, cfg.Server.HistorySize),
		logger:   logger,
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/run", s.handleRun)
	api.GET("/active", s.handleActive)
	api.GET("/runs", s.handleRuns)
	api.GET("/runs/:id", s.handleRunByID)
	api.GET("/runs/:id/download", s.handleDownload)
}

// Handler exposes the HTTP handler (used by tests)
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks serving the dashboard on the configured address
func (s *Server) Run() error {
	s.logger.Info("dashboard listening", zap.String("addr", s.cfg.Server.Addr))
	return s.engine.Run(s.cfg.Server.Addr)
}

// setActive publishes the sink of the in-flight run for live polling
func (s *Server) setActive(sink *pipeline.MemorySink) {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	s.activeSink = sink
}

// activeEvents returns the in-flight run's events, if any
func (s *Server) activeEvents() ([]model.Event, bool) {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	if s.activeSink == nil {
		return nil, false
	}
	return s.activeSink.Events(), true
}
