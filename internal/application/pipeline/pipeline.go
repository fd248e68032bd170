// Package pipeline orchestrates the enrichment pass: fetch raw listings from
// the configured source, classify each by coordinates, extract description
// signals, normalize financials, compute the opportunity score, and hand the
// scored set to the ranking engine. Enrichment steps are independent per
// listing; a data problem in one listing degrades that listing only.
package pipeline

import (
	"context"
	"time"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/finance"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/geo"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/ranking"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/scoring"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/textfeat"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/prometheus"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/source"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// Pipeline runs the full enrichment pass over a listing source. Construct
// once and reuse; Run is safe for concurrent callers.
type Pipeline struct {
	source     source.Source
	classifier *geo.Classifier
	extractor  *textfeat.Extractor
	scorer     *scoring.Scorer
	logger     logging.Logger
	metrics    *prometheus.AppMetrics
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithMetrics attaches the application metrics; without it the pipeline runs
// unobserved.
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithClassifier replaces the default neighborhood rules.
func WithClassifier(c *geo.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// New builds a Pipeline over src using the given scorer.
func New(src source.Source, scorer *scoring.Scorer, logger logging.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:     src,
		classifier: geo.NewDefaultClassifier(),
		extractor:  textfeat.NewExtractor(),
		scorer:     scorer,
		logger:     logger.Named("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run fetches the current raw listings and returns them scored and ranked.
// An empty source yields an empty engine, not an error; only a source fetch
// failure is fatal to the run.
func (p *Pipeline) Run(ctx context.Context) (*ranking.Engine, error) {
	start := time.Now()

	raws, err := p.source.Fetch(ctx)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordPipelineRun(p.source.Name(), 0, time.Since(start), err)
		}
		p.logger.Error("listing source fetch failed",
			logging.String("source", p.source.Name()), logging.Err(err))
		return nil, apperrors.Wrap(err, apperrors.ErrCodePipelineFailed, "pipeline run failed")
	}

	scored := make([]listing.Scored, 0, len(raws))
	for _, raw := range raws {
		scored = append(scored, p.Enrich(raw))
	}

	engine := ranking.NewEngine(scored)

	if p.metrics != nil {
		p.metrics.RecordPipelineRun(p.source.Name(), len(scored), time.Since(start), nil)
	}
	p.logger.Info("pipeline run complete",
		logging.String("source", p.source.Name()),
		logging.Int("listings", len(scored)),
		logging.Duration("elapsed", time.Since(start)))

	return engine, nil
}

// Enrich runs every enrichment step over one raw listing and assembles the
// scored record.
func (p *Pipeline) Enrich(raw listing.Raw) listing.Scored {
	classification := p.classifier.Classify(raw.Latitude, raw.Longitude)
	signals := p.extractor.Extract(raw.Description)
	financials := finance.Normalize(raw.Price, raw.CashFlow)
	score := p.scorer.Score(classification, signals)

	p.observeParseFailures(raw, financials)

	return listing.NewBuilder(raw).
		WithClassification(classification).
		WithSignals(signals).
		WithFinancials(financials).
		WithScore(score).
		Build()
}

// observeParseFailures attributes currency parse failures per field. A zero
// metric value is the degradation sentinel, so only zero fields are
// re-checked.
func (p *Pipeline) observeParseFailures(raw listing.Raw, m finance.Metrics) {
	if m.Price == 0 {
		if _, err := finance.ParseCurrency(raw.Price); err != nil {
			p.recordParseFailure("price", raw.Title, raw.Price)
		}
	}
	if m.CashFlow == 0 {
		if _, err := finance.ParseCurrency(raw.CashFlow); err != nil {
			p.recordParseFailure("cash_flow", raw.Title, raw.CashFlow)
		}
	}
}

func (p *Pipeline) recordParseFailure(field, title, value string) {
	if p.metrics != nil {
		p.metrics.FinanceParseFailures.WithLabelValues(field).Inc()
	}
	p.logger.Warn("currency parse failed, cap rate degraded to 0",
		logging.String("field", field),
		logging.String("listing", title),
		logging.String("value", value))
}
