package worker

import (
	"context"

	"github.com/ppiankov/landwatch/internal/model"
)

// UnitProcessor runs one ingestion unit to a terminal state
type UnitProcessor interface {
	Process(ctx context.Context, unit model.Unit) *model.UnitResult
}

// UnitJob represents one unit queued for ingestion
type UnitJob struct {
	Index     int
	Unit      model.Unit
	Processor UnitProcessor
}

// Execute executes the unit job
func (j *UnitJob) Execute(ctx context.Context) Result {
	return &indexedResult{
		index:  j.Index,
		result: j.Processor.Process(ctx, j.Unit),
	}
}

type indexedResult struct {
	index  int
	result *model.UnitResult
}

func (r *indexedResult) GetError() error {
	return r.result.GetError()
}

// BatchProcessor processes multiple units concurrently
type BatchProcessor struct {
	processor   UnitProcessor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor UnitProcessor, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessUnits runs every unit and returns results in input order.
// With concurrency 1 units run strictly one after another.
func (b *BatchProcessor) ProcessUnits(ctx context.Context, units []model.Unit) []*model.UnitResult {
	out := make([]*model.UnitResult, len(units))
	if len(units) == 0 {
		return out
	}

	if b.concurrency == 1 {
		for i, u := range units {
			out[i] = b.processor.Process(ctx, u)
		}
		return out
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for i, u := range units {
		pool.Submit(&UnitJob{Index: i, Unit: u, Processor: b.processor})
	}

	for _, r := range pool.Wait() {
		ir := r.(*indexedResult)
		out[ir.index] = ir.result
	}

	// Units never submitted because ctx ended
	cancelErr := ctx.Err()
	if cancelErr == nil {
		cancelErr = context.Canceled
	}
	for i, u := range units {
		if out[i] == nil {
			out[i] = &model.UnitResult{
				Key:      u.Key,
				State:    model.StateFailed,
				FailedAt: model.StateReceived,
				Err:      cancelErr,
			}
		}
	}

	return out
}
