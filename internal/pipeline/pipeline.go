package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/domain/commonModels"
	"github.com/akolanti/EarningsAPI/internal/domain/jobModel"
	"github.com/akolanti/EarningsAPI/internal/extract"
	"github.com/akolanti/EarningsAPI/internal/metrics"
	"github.com/akolanti/EarningsAPI/internal/normalise"
	"github.com/akolanti/EarningsAPI/internal/rag"
	"github.com/akolanti/EarningsAPI/internal/report"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
)

// EarningsExhibitTypes are the document types that carry an earnings release.
var EarningsExhibitTypes = []string{"EX-99.1", "EX-99", "EX-99.01"}

type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeNoFilings Outcome = "no_filings"
	OutcomeNoExhibit Outcome = "no_exhibit"
	OutcomeError     Outcome = "error"
)

// FilingSource finds and downloads filings.
type FilingSource interface {
	LatestFiling(ctx context.Context, ticker string, form string) (commonModels.Filing, bool, error)
	Download(ctx context.Context, exhibit commonModels.Exhibit) ([]byte, error)
}

// Progress is told about each step a run enters.
type Progress func(step jobModel.InternalStatus)

type Summary struct {
	Reference commonModels.FilingReference `json:"reference"`
	Outcome   Outcome                      `json:"outcome"`
	Filing    commonModels.Filing          `json:"filing"`
	Exhibit   commonModels.Exhibit         `json:"exhibit"`
	Metrics   extract.Metrics              `json:"metrics,omitempty"`
	Report    string                       `json:"report"`
	Err       error                        `json:"-"`
}

type Driver struct {
	source    FilingSource
	engine    rag.Service
	extractor *extract.Extractor
	timeout   time.Duration
	logger    *logger_i.Logger
}

type Option func(*Driver)

func WithExtractor(e *extract.Extractor) Option {
	return func(d *Driver) { d.extractor = e }
}

func WithTimeout(t time.Duration) Option {
	return func(d *Driver) { d.timeout = t }
}

func NewDriver(source FilingSource, engine rag.Service, opts ...Option) *Driver {
	d := &Driver{
		source:    source,
		engine:    engine,
		extractor: extract.NewExtractor(),
		timeout:   config.PipelineTimeout,
		logger:    logger_i.NewLogger("Pipeline"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run returns the report for the latest earnings exhibit of ticker. It never
// fails: not-found cases and errors come back as report text.
func (d *Driver) Run(ctx context.Context, ticker string, form string) string {
	return d.Summarise(ctx, commonModels.FilingReference{Ticker: ticker, Form: form}).Report
}

func (d *Driver) Summarise(ctx context.Context, ref commonModels.FilingReference) Summary {
	return d.Track(ctx, ref, nil)
}

// Track is Summarise with a progress callback.
func (d *Driver) Track(ctx context.Context, ref commonModels.FilingReference, progress Progress) (summary Summary) {
	ref = displayed(ref)
	lookup := ref.Normalised(config.DefaultForm)
	summary = Summary{Reference: ref}
	step := stepper(progress)

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			summary = failed(summary, fmt.Errorf("panic: %v", r))
		}
		d.finish(ctx, summary, time.Since(start))
	}()

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	step(jobModel.FilingLookup)
	filing, found, err := d.source.LatestFiling(ctx, lookup.Ticker, lookup.Form)
	if err != nil {
		return failed(summary, fmt.Errorf("filing lookup: %w", err))
	}
	if !found {
		summary.Outcome = OutcomeNoFilings
		summary.Report = fmt.Sprintf("No %s filings found for %s", ref.Form, ref.Ticker)
		return summary
	}
	summary.Filing = filing

	exhibit, ok := SelectExhibit(filing.Exhibits)
	if !ok {
		summary.Outcome = OutcomeNoExhibit
		summary.Report = fmt.Sprintf("No earnings exhibits found in latest %s filing for %s", ref.Form, ref.Ticker)
		return summary
	}
	summary.Exhibit = exhibit

	step(jobModel.ExhibitFetch)
	content, err := d.source.Download(ctx, exhibit)
	if err != nil {
		return failed(summary, fmt.Errorf("exhibit download: %w", err))
	}

	doc := commonModels.RawDocument{
		Reference:   lookup,
		Exhibit:     exhibit,
		Name:        exhibit.Name,
		ContentType: normalise.DetectType(exhibit.Name, content),
		Content:     content,
	}
	return d.summariseDocument(ctx, summary, doc, step)
}

// SummariseDocument runs the pipeline on a document that is already loaded.
func (d *Driver) SummariseDocument(ctx context.Context, ref commonModels.FilingReference, doc commonModels.RawDocument) (summary Summary) {
	ref = displayed(ref)
	summary = Summary{Reference: ref, Exhibit: doc.Exhibit}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			summary = failed(summary, fmt.Errorf("panic: %v", r))
		}
		d.finish(ctx, summary, time.Since(start))
	}()

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	return d.summariseDocument(ctx, summary, doc, stepper(nil))
}

func (d *Driver) summariseDocument(ctx context.Context, summary Summary, doc commonModels.RawDocument, step Progress) Summary {
	log := d.logger.WithTrace(ctx).With("ticker", summary.Reference.Ticker)

	step(jobModel.Normalising)
	text := normalise.Text(doc)
	log.Debug("normalised exhibit", "name", doc.Name, "bytes", len(doc.Content), "chars", len(text))

	step(jobModel.IndexBuild)
	index, err := d.engine.BuildIndex(ctx, text, doc.Name)
	if err != nil {
		return failed(summary, fmt.Errorf("index build: %w", err))
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		_ = d.engine.Release(releaseCtx, index)
	}()

	step(jobModel.MetricQueries)
	query := func(ctx context.Context, question string, topK int) (string, error) {
		return d.engine.Query(ctx, index, question, topK)
	}
	summary.Metrics = d.extractor.Extract(ctx, query)

	step(jobModel.ReportFormat)
	summary.Outcome = OutcomeSuccess
	summary.Report = report.Format(summary.Metrics)
	return summary
}

// displayed keeps the ticker and form as the caller wrote them for the
// report text; only a missing form is filled in.
func displayed(ref commonModels.FilingReference) commonModels.FilingReference {
	if strings.TrimSpace(ref.Form) == "" {
		ref.Form = config.DefaultForm
	}
	return ref
}

// SelectExhibit returns the first exhibit whose type marks an earnings release.
func SelectExhibit(exhibits []commonModels.Exhibit) (commonModels.Exhibit, bool) {
	for _, ex := range exhibits {
		if slices.Contains(EarningsExhibitTypes, strings.ToUpper(strings.TrimSpace(ex.DocumentType))) {
			return ex, true
		}
	}
	return commonModels.Exhibit{}, false
}

func failed(summary Summary, err error) Summary {
	summary.Outcome = OutcomeError
	summary.Err = err
	summary.Report = fmt.Sprintf("Error processing %s: %s", summary.Reference.Ticker, errorMessage(err))
	return summary
}

// errorMessage drops the step prefixes added inside the pipeline, so the
// report shows the underlying cause.
func errorMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func (d *Driver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

func (d *Driver) finish(ctx context.Context, summary Summary, elapsed time.Duration) {
	metrics.CountPipelineRun(string(summary.Outcome))
	metrics.CaptureExecutionMetrics("pipeline_run", elapsed)

	log := d.logger.WithTrace(ctx).With("ticker", summary.Reference.Ticker, "form", summary.Reference.Form, "outcome", summary.Outcome)
	if summary.Err != nil {
		log.Error("summary failed", "error", summary.Err, "elapsed", elapsed)
		return
	}
	log.Info("summary finished", "elapsed", elapsed)
}

func stepper(progress Progress) Progress {
	if progress == nil {
		return func(jobModel.InternalStatus) {}
	}
	return progress
}
