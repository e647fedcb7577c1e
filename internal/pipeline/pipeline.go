package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"briefdesk/internal/llm"
	"briefdesk/internal/model"
	"briefdesk/internal/report"
	"briefdesk/internal/source"
	"briefdesk/internal/stats"
)

// Failure kind names surfaced on the dashboard
const (
	KindSourceUnavailable    = "source_unavailable"
	KindParseFailure         = "parse_failure"
	KindInsufficientContent  = "insufficient_content"
	KindInferenceUnavailable = "inference_unavailable"
	KindModelError           = "model_error"
	KindWriteFailure         = "write_failure"
	KindInternal             = "internal_error"
)

// FailureKind maps an error chain to its dashboard-visible kind
func FailureKind(err error) string {
	switch {
	case errors.Is(err, source.ErrUnavailable):
		return KindSourceUnavailable
	case errors.Is(err, source.ErrParse):
		return KindParseFailure
	case errors.Is(err, ErrInsufficientContent):
		return KindInsufficientContent
	case errors.Is(err, llm.ErrUnavailable):
		return KindInferenceUnavailable
	case errors.Is(err, llm.ErrModel):
		return KindModelError
	case errors.Is(err, report.ErrWrite):
		return KindWriteFailure
	default:
		return KindInternal
	}
}

// Pipeline orchestrates one run: ingest, normalize, validate, synthesize,
// write. Strictly linear; the validator is the only branch point.
type Pipeline struct {
	resolver   *source.Resolver
	normalizer *Normalizer
	validator  *Validator
	provider   llm.Provider
	writer     *report.Writer
	profiler   *stats.Profiler
	logger     *zap.Logger
}

// New creates a pipeline from its components
func New(resolver *source.Resolver, provider llm.Provider, writer *report.Writer, profiler *stats.Profiler, minChars int, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		resolver:   resolver,
		normalizer: NewNormalizer(),
		validator:  NewValidator(minChars),
		provider:   provider,
		writer:     writer,
		profiler:   profiler,
		logger:     logger,
	}
}

// Run executes one end-to-end traversal for the given source requests.
// It always returns a RunReport; on the first unrecovered error the run
// ends in StateFailed with the failure kind set. Events go to the sink as
// each step completes.
func (p *Pipeline) Run(ctx context.Context, reqs []model.SourceRequest, modelName string, sink EventSink) *model.RunReport {
	run := &model.RunReport{
		ID:        uuid.NewString(),
		State:     model.StateIdle,
		StartedAt: time.Now().UTC(),
	}
	p.logger.Info("run started", zap.String("run_id", run.ID), zap.Int("sources", len(reqs)))

	// 1. Ingest
	if err := p.step(run, sink, model.StateIngesting, fmt.Sprintf("ingesting %d source(s)", len(reqs))); err != nil {
		return p.fail(run, sink, err)
	}
	docs := make([]model.SourceDocument, 0, len(reqs))
	for _, req := range reqs {
		doc, err := p.resolver.Resolve(ctx, req)
		if err != nil {
			return p.fail(run, sink, err)
		}
		docs = append(docs, *doc)
		sink.Append(event(model.StateIngesting, fmt.Sprintf("read %s %q (%d chars)", doc.Kind, doc.Identifier, doc.Chars)))
	}
	run.Documents = docs

	// 2. Normalize
	if err := p.step(run, sink, model.StateNormalizing, "assembling labeled corpus"); err != nil {
		return p.fail(run, sink, err)
	}
	corpus := p.normalizer.Normalize(docs)
	run.Stats = p.profiler.Profile(corpus)

	// 3. Validate
	if err := p.step(run, sink, model.StateValidating, fmt.Sprintf("checking corpus length (%d chars)", corpus.Len())); err != nil {
		return p.fail(run, sink, err)
	}
	if err := p.validator.Validate(corpus); err != nil {
		return p.fail(run, sink, err)
	}

	// 4. Synthesize
	if err := p.step(run, sink, model.StateSynthesizing, "requesting executive summary from "+p.provider.Name()); err != nil {
		return p.fail(run, sink, err)
	}
	result, err := p.provider.Summarize(ctx, llm.SummarizeRequest{Corpus: corpus, Model: modelName})
	if err != nil {
		return p.fail(run, sink, err)
	}
	run.Synthesis = result

	// 5. Write report
	if err := p.step(run, sink, model.StateWriting, "writing report artifact"); err != nil {
		return p.fail(run, sink, err)
	}
	path, err := p.writer.Write(*result)
	if err != nil {
		return p.fail(run, sink, err)
	}
	run.ReportPath = path

	if err := transition(run, model.StateDone); err != nil {
		return p.fail(run, sink, err)
	}
	run.FinishedAt = time.Now().UTC()
	sink.Append(event(model.StateDone, "report ready: "+path))
	p.logger.Info("run done", zap.String("run_id", run.ID), zap.String("report", path))
	return run
}

// step advances the run state and logs the step to the sink
func (p *Pipeline) step(run *model.RunReport, sink EventSink, to model.RunState, message string) error {
	if err := transition(run, to); err != nil {
		return err
	}
	sink.Append(event(to, message))
	return nil
}

// fail ends the run in StateFailed with the error's failure kind.
// No partial report is produced on failure.
func (p *Pipeline) fail(run *model.RunReport, sink EventSink, err error) *model.RunReport {
	run.FailureKind = FailureKind(err)
	run.FailureMsg = err.Error()
	if tErr := transition(run, model.StateFailed); tErr != nil {
		run.State = model.StateFailed
	}
	run.FinishedAt = time.Now().UTC()
	sink.Append(event(model.StateFailed, fmt.Sprintf("%s: %v", run.FailureKind, err)))
	p.logger.Warn("run failed",
		zap.String("run_id", run.ID),
		zap.String("kind", run.FailureKind),
		zap.Error(err))
	return run
}
