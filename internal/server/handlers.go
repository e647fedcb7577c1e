package server

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"briefdesk/internal/model"
	"briefdesk/internal/pipeline"
)

// maxUploadBytes caps PDF uploads read into memory
const maxUploadBytes = 32 << 20

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleRun triggers one synchronous pipeline run from the submitted
// sources. A second trigger while a run is active is rejected.
func (s *Server) handleRun(c *gin.Context) {
	if !s.runMu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	defer s.runMu.Unlock()

	reqs, err := s.parseSourceRequests(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sink := pipeline.NewMemorySink()
	s.setActive(sink)
	defer s.setActive(nil)

	run := s.pipeline.Run(c.Request.Context(), reqs, c.PostForm("model"), sink)
	run.Events = sink.Events()
	s.history.Add(run)

	c.JSON(http.StatusOK, run)
}

// parseSourceRequests resolves the multipart form into tagged source
// requests, in the fixed ingestion order: PDF, sheet, transcript
func (s *Server) parseSourceRequests(c *gin.Context) ([]model.SourceRequest, error) {
	var reqs []model.SourceRequest

	if file, header, err := c.Request.FormFile("pdf"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, model.SourceRequest{
			Kind:    model.SourcePDF,
			PDFName: header.Filename,
			PDFData: data,
		})
	} else if pdfURL := c.PostForm("pdf_url"); pdfURL != "" {
		reqs = append(reqs, model.SourceRequest{
			Kind:   model.SourcePDF,
			PDFURL: pdfURL,
		})
	}

	if sheetID := c.PostForm("sheet_id"); sheetID != "" {
		reqs = append(reqs, model.SourceRequest{
			Kind:       model.SourceSheet,
			SheetID:    sheetID,
			SheetRange: c.PostForm("sheet_range"),
		})
	}

	if video := c.PostForm("video"); video != "" {
		reqs = append(reqs, model.SourceRequest{
			Kind:    model.SourceTranscript,
			VideoID: video,
		})
	}

	return reqs, nil
}

func (s *Server) handleActive(c *gin.Context) {
	events, running := s.activeEvents()
	c.JSON(http.StatusOK, gin.H{"running": running, "events": events})
}

func (s *Server) handleRuns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"runs": s.history.List()})
}

func (s *Server) handleRunByID(c *gin.Context) {
	run, ok := s.history.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// handleDownload serves the run's report artifact as an attachment
func (s *Server) handleDownload(c *gin.Context) {
	run, ok := s.history.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if run.ReportPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "run produced no report"})
		return
	}
	s.logger.Info("report download", zap.String("run_id", run.ID), zap.String("path", run.ReportPath))
	c.FileAttachment(run.ReportPath, filepath.Base(run.ReportPath))
}
