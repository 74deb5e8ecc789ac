// Package pipeline takes notice units from scan or text to a stored
// corpus record.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/landwatch/internal/cache"
	"github.com/ppiankov/landwatch/internal/corpus"
	"github.com/ppiankov/landwatch/internal/extract"
	"github.com/ppiankov/landwatch/internal/llm"
	"github.com/ppiankov/landwatch/internal/metrics"
	"github.com/ppiankov/landwatch/internal/model"
	"github.com/ppiankov/landwatch/internal/worker"
	"go.uber.org/zap"
)

// Options wires a Pipeline. Only Store is required.
type Options struct {
	Provider      llm.Provider
	Cache         cache.Cache
	Limiter       llm.Waiter // nil disables rate limiting
	Store         *corpus.Store
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
	Concurrency   int
	UnitTimeout   time.Duration
	SkipTranslate bool
}

// Pipeline runs units through OCR, language normalization and structured
// extraction, and stores successful records.
type Pipeline struct {
	provider   llm.Provider
	ocr        *extract.OCR
	normalizer *extract.LanguageNormalizer
	extractor  *extract.StructuredExtractor
	store      *corpus.Store
	metrics    *metrics.Metrics
	logger     *zap.Logger

	concurrency   int
	unitTimeout   time.Duration
	skipTranslate bool
}

// New creates a pipeline from opts.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	capability := func(key string) llm.Provider {
		return llm.WithLimit(metrics.Instrument(opts.Provider, opts.Metrics, key), opts.Limiter, key)
	}

	return &Pipeline{
		provider:      opts.Provider,
		ocr:           extract.NewOCR(capability(worker.KeyOCR), opts.Cache, logger),
		normalizer:    extract.NewLanguageNormalizer(capability(worker.KeyTranslate), opts.Cache, logger),
		extractor:     extract.NewStructuredExtractor(capability(worker.KeyExtract), logger),
		store:         opts.Store,
		metrics:       opts.Metrics,
		logger:        logger,
		concurrency:   max(opts.Concurrency, 1),
		unitTimeout:   opts.UnitTimeout,
		skipTranslate: opts.SkipTranslate,
	}
}

// Check reports whether the pipeline can run at all.
func (p *Pipeline) Check() error {
	if p.provider == nil {
		return fmt.Errorf("no LLM provider configured: %w", model.ErrCapabilityUnavailable)
	}
	if p.store == nil {
		return errors.New("no corpus store configured")
	}
	return nil
}

// Process takes one unit to a terminal state.
func (p *Pipeline) Process(ctx context.Context, unit model.Unit) *model.UnitResult {
	return p.process(ctx, unit, p.logger)
}

// ProcessBatch runs every unit and returns their results in input order.
// A failing unit never affects the others.
func (p *Pipeline) ProcessBatch(ctx context.Context, units []model.Unit) []*model.UnitResult {
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))
	logger.Info("pipeline.batch.start", zap.Int("units", len(units)), zap.Int("concurrency", p.concurrency))

	start := time.Now()
	bp := worker.NewBatchProcessor(&run{p: p, logger: logger}, p.concurrency)
	results := bp.ProcessUnits(ctx, units)

	stored := 0
	for _, r := range results {
		if r.Succeeded() {
			stored++
		}
	}
	if p.store != nil {
		p.metrics.CorpusSize(p.store.Len())
	}
	logger.Info("pipeline.batch.done",
		zap.Int("stored", stored),
		zap.Int("failed", len(results)-stored),
		zap.Duration("elapsed", time.Since(start)))
	return results
}

type run struct {
	p      *Pipeline
	logger *zap.Logger
}

func (r *run) Process(ctx context.Context, unit model.Unit) *model.UnitResult {
	return r.p.process(ctx, unit, r.logger)
}

func (p *Pipeline) process(ctx context.Context, unit model.Unit, logger *zap.Logger) *model.UnitResult {
	start := time.Now()
	logger = logger.With(zap.String("key", unit.Key))
	result := &model.UnitResult{Key: unit.Key, State: model.StateReceived}

	if p.unitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.unitTimeout)
		defer cancel()
	}

	fail := func(err error) *model.UnitResult {
		result.FailedAt = result.State
		result.State = model.StateFailed
		result.Err = err
		result.Duration = time.Since(start)
		logger.Warn("pipeline.unit.failed", zap.String("at", string(result.FailedAt)), zap.Error(err))
		p.metrics.Unit(string(model.StateFailed), string(result.FailedAt), result.Duration)
		return result
	}
	advance := func(s model.UnitState) {
		result.State = s
		logger.Debug("pipeline.unit.state", zap.String("state", string(s)))
	}

	if err := p.Check(); err != nil {
		return fail(err)
	}
	if unit.Key == "" {
		return fail(errors.New("unit has no key"))
	}
	if unit.Rejected != nil {
		return fail(fmt.Errorf("%w: %v", model.ErrCapabilityFailure, unit.Rejected))
	}

	text := unit.Text
	if !unit.IsText() {
		t, err := p.ocr.Extract(ctx, unit.Image, unit.MIMEType)
		if err != nil {
			return fail(err)
		}
		text = t
	}
	advance(model.StateOCRd)

	if !p.skipTranslate {
		translated, lang := p.normalizer.Normalize(ctx, text)
		logger.Debug("pipeline.unit.language", zap.String("lang", string(lang)))
		text = translated
	}
	advance(model.StateTranslated)

	notice, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return fail(err)
	}
	result.Notice = notice
	advance(model.StateExtracted)

	p.store.Put(unit.Key, *notice)
	advance(model.StateStored)

	result.Duration = time.Since(start)
	logger.Info("pipeline.unit.stored", zap.Duration("elapsed", result.Duration))
	p.metrics.Unit(string(model.StateStored), "", result.Duration)
	return result
}
