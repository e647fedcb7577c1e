package pipeline

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"briefdesk/internal/llm"
	"briefdesk/internal/model"
	"briefdesk/internal/report"
	"briefdesk/internal/source"
	"briefdesk/internal/stats"
)

// stubReader returns canned text for one source kind
type stubReader struct {
	kind model.SourceKind
	text string
	err  error
}

func (r *stubReader) Kind() model.SourceKind { return r.kind }

func (r *stubReader) Read(ctx context.Context, req model.SourceRequest) (*model.SourceDocument, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &model.SourceDocument{
		Kind:        r.kind,
		Identifier:  req.Identifier(),
		Text:        r.text,
		Chars:       len(r.text),
		RetrievedAt: time.Now().UTC(),
	}, nil
}

// stubProvider counts invocations and returns a fixed summary
type stubProvider struct {
	summary string
	err     error
	calls   int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *stubProvider) Summarize(ctx context.Context, req llm.SummarizeRequest) (*model.SynthesisResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &model.SynthesisResult{
		Summary:     p.summary,
		Model:       "stub-model",
		GeneratedAt: time.Now().UTC(),
		SourceCount: len(req.Corpus.Blocks),
	}, nil
}

func newTestPipeline(t *testing.T, reader source.Reader, provider llm.Provider, minChars int) (*Pipeline, string) {
	t.Helper()
	dir := t.TempDir()
	p := New(
		source.NewResolver(reader),
		provider,
		report.NewWriter(dir),
		stats.NewProfiler(5),
		minChars,
		nil,
	)
	return p, dir
}

func pdfRequest() model.SourceRequest {
	return model.SourceRequest{Kind: model.SourcePDF, PDFName: "input.pdf", PDFData: []byte("raw")}
}

func reportFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read reports dir: %v", err)
	}
	return entries
}

func TestPipeline_Run_Done(t *testing.T) {
	reader := &stubReader{kind: model.SourcePDF, text: "enough extracted text to analyze"}
	provider := &stubProvider{summary: "the executive summary"}
	p, dir := newTestPipeline(t, reader, provider, 10)
	sink := NewMemorySink()

	run := p.Run(context.Background(), []model.SourceRequest{pdfRequest()}, "", sink)

	if run.State != model.StateDone {
		t.Fatalf("Expected state done, got %s (%s: %s)", run.State, run.FailureKind, run.FailureMsg)
	}
	if provider.calls != 1 {
		t.Errorf("Expected exactly one synthesis call, got %d", provider.calls)
	}

	files := reportFiles(t, dir)
	if len(files) != 1 {
		t.Fatalf("Expected exactly one report file, got %d", len(files))
	}
	content, err := os.ReadFile(run.ReportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(content) != "the executive summary" {
		t.Errorf("Report content %q does not equal the returned summary", content)
	}

	events := sink.Events()
	if len(events) == 0 {
		t.Fatal("Expected run events in the sink")
	}
	if events[len(events)-1].Stage != string(model.StateDone) {
		t.Errorf("Expected final event stage done, got %s", events[len(events)-1].Stage)
	}
}

func TestPipeline_Run_InsufficientContent(t *testing.T) {
	reader := &stubReader{kind: model.SourcePDF, text: "tiny"}
	provider := &stubProvider{summary: "never used"}
	p, dir := newTestPipeline(t, reader, provider, 100000)
	sink := NewMemorySink()

	run := p.Run(context.Background(), []model.SourceRequest{pdfRequest()}, "", sink)

	if run.State != model.StateFailed {
		t.Fatalf("Expected state failed, got %s", run.State)
	}
	if run.FailureKind != KindInsufficientContent {
		t.Errorf("Expected failure kind %s, got %s", KindInsufficientContent, run.FailureKind)
	}
	if provider.calls != 0 {
		t.Errorf("Expected synthesis client not to be reached, got %d calls", provider.calls)
	}
	if len(reportFiles(t, dir)) != 0 {
		t.Error("Expected no report file on failure")
	}
}

func TestPipeline_Run_SourceFailure(t *testing.T) {
	reader := &stubReader{kind: model.SourcePDF, err: fmt.Errorf("%w: refused", source.ErrUnavailable)}
	provider := &stubProvider{summary: "never used"}
	p, dir := newTestPipeline(t, reader, provider, 10)
	sink := NewMemorySink()

	run := p.Run(context.Background(), []model.SourceRequest{pdfRequest()}, "", sink)

	if run.State != model.StateFailed {
		t.Fatalf("Expected state failed, got %s", run.State)
	}
	if run.FailureKind != KindSourceUnavailable {
		t.Errorf("Expected failure kind %s, got %s", KindSourceUnavailable, run.FailureKind)
	}
	if provider.calls != 0 {
		t.Errorf("Expected no synthesis call after ingestion failure, got %d", provider.calls)
	}
	if len(reportFiles(t, dir)) != 0 {
		t.Error("Expected no report file on failure")
	}
}

func TestPipeline_Run_ModelError(t *testing.T) {
	reader := &stubReader{kind: model.SourcePDF, text: "enough extracted text to analyze"}
	provider := &stubProvider{err: fmt.Errorf("%w: model decommissioned", llm.ErrModel)}
	p, dir := newTestPipeline(t, reader, provider, 10)

	run := p.Run(context.Background(), []model.SourceRequest{pdfRequest()}, "", NewMemorySink())

	if run.FailureKind != KindModelError {
		t.Errorf("Expected failure kind %s, got %s", KindModelError, run.FailureKind)
	}
	if len(reportFiles(t, dir)) != 0 {
		t.Error("Expected no report file on failure")
	}
}

func TestPipeline_Run_StatsComputed(t *testing.T) {
	reader := &stubReader{kind: model.SourcePDF, text: "alpha beta alpha gamma alpha"}
	provider := &stubProvider{summary: "s"}
	p, _ := newTestPipeline(t, reader, provider, 1)

	run := p.Run(context.Background(), []model.SourceRequest{pdfRequest()}, "", NewMemorySink())

	if run.Stats.Documents != 1 {
		t.Errorf("Expected 1 document in stats, got %d", run.Stats.Documents)
	}
	if run.Stats.Words == 0 {
		t.Error("Expected a word count in stats")
	}
	if len(run.Stats.TopWords) == 0 || run.Stats.TopWords[0].Word != "alpha" {
		t.Errorf("Expected alpha as top word, got %v", run.Stats.TopWords)
	}
}
