package extract

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/metrics"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

const notProvided = "Not provided"

// QueryFunc answers one question against an already built index.
type QueryFunc func(ctx context.Context, question string, topK int) (string, error)

type ParsedMetric struct {
	Key    string `json:"key"`
	Raw    string `json:"raw"`
	Value  string `json:"value,omitempty"`
	Growth string `json:"growth,omitempty"`
	// Parsed is false when FormatGrowth fell back to the raw answer.
	Parsed bool `json:"parsed"`
	// Failed marks a query error; Raw then holds the placeholder text.
	Failed  bool `json:"failed"`
	numeric bool
}

// String is the value printed in the report.
func (m ParsedMetric) String() string {
	switch {
	case m.Failed:
		return m.Raw
	case m.numeric:
		return CombineGrowth(m.Value, m.Growth)
	case m.Key == Guidance && strings.TrimSpace(m.Raw) == "":
		return notProvided
	default:
		return m.Raw
	}
}

// Metrics keeps the extractor output in query order.
type Metrics []ParsedMetric

// Get returns the metric for key, or an empty one and false.
func (ms Metrics) Get(key string) (ParsedMetric, bool) {
	for _, m := range ms {
		if m.Key == key {
			return m, true
		}
	}
	return ParsedMetric{Key: key}, false
}

// AsMap renders every metric as its report text, keyed by metric key.
func (ms Metrics) AsMap() map[string]string {
	out := make(map[string]string, len(ms))
	for _, m := range ms {
		out[m.Key] = m.String()
	}
	return out
}

type Extractor struct {
	queries     []MetricQuery
	topK        int
	concurrency int
	logger      *logger_i.Logger
}

type Option func(*Extractor)

func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func WithTopK(k int) Option {
	return func(e *Extractor) {
		if k > 0 {
			e.topK = k
		}
	}
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		queries:     Queries,
		topK:        config.SimilarityTopK,
		concurrency: config.MetricQueryConcurrency,
		logger:      logger_i.NewLogger("MetricExtractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs every metric query and always returns one entry per query,
// in query order. A failing query degrades to a placeholder for its key.
// A panic in a query is re-raised on the calling goroutine.
func (e *Extractor) Extract(ctx context.Context, query QueryFunc) Metrics {
	log := e.logger.WithTrace(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("metric_extraction", time.Since(start)) }()

	results := make(Metrics, len(e.queries))

	var (
		panicOnce sync.Once
		panicVal  any
	)
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, q := range e.queries {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicVal = r })
				}
			}()
			results[i] = e.runQuery(ctx, log, query, q)
			return nil
		})
	}
	_ = g.Wait()

	if panicVal != nil {
		panic(panicVal)
	}
	return results
}

func (e *Extractor) runQuery(ctx context.Context, log *logger_i.Logger, query QueryFunc, q MetricQuery) ParsedMetric {
	log = log.With("metric", q.Key)

	answer, err := query(ctx, q.Question, e.topK)
	if err != nil {
		log.Warn("metric query failed", "error", err)
		metrics.CountQueryFailure(q.Key)
		return ParsedMetric{
			Key:    q.Key,
			Raw:    fmt.Sprintf("Not available (query failed: %v)", err),
			Failed: true,
		}
	}
	log.Debug("metric answered", "answer", answer)

	return Parse(q, answer)
}

// Parse turns one raw answer into a ParsedMetric. It never fails.
func Parse(q MetricQuery, answer string) ParsedMetric {
	m := ParsedMetric{Key: q.Key, Raw: answer, numeric: q.Numeric}
	if !q.Numeric {
		return m
	}
	m.Value, m.Growth, m.Parsed = FormatGrowth(answer)
	if !m.Parsed {
		metrics.CountParseFallback(q.Key)
	}
	return m
}
