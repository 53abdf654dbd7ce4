package filter

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the minimum chunk size for concurrent processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator implements both Evaluator and BatchEvaluator
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate evaluates a single filter against all items
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, items []Item) ([]Item, error) {
	if len(items) == 0 {
		return []Item{}, nil
	}

	// Small lists are not worth fanning out
	if len(items) < e.batchSize {
		return e.evaluateSequential(filter, items), nil
	}

	return e.evaluateConcurrent(ctx, filter, items)
}

// EvaluateBatch evaluates multiple filters against items concurrently
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, items []Item) (map[string][]Item, error) {
	results := make(map[string][]Item, len(filters))
	if len(filters) == 0 || len(items) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for name, filter := range filters {
		g.Go(func() error {
			matches, err := e.Evaluate(gctx, filter, items)
			if err != nil {
				return &EvaluationError{
					FilterName: name,
					Reason:     "evaluation aborted",
					Err:        err,
				}
			}

			mu.Lock()
			results[name] = matches
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// evaluateSequential evaluates a filter against all items sequentially
func (e *ConcurrentEvaluator) evaluateSequential(filter CompiledFilter, items []Item) []Item {
	matches := make([]Item, 0, len(items)/10)
	for _, item := range items {
		if filter.Evaluate(item) {
			matches = append(matches, item)
		}
	}
	return matches
}

// evaluateConcurrent splits the items into chunks and evaluates them in
// parallel, then stitches the chunk results back together in input order.
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, items []Item) ([]Item, error) {
	chunkSize := max(len(items)/e.workerCount, e.batchSize)
	chunkCount := (len(items) + chunkSize - 1) / chunkSize
	chunks := make([][]Item, chunkCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for index := range chunkCount {
		start := index * chunkSize
		end := min(start+chunkSize, len(items))
		chunk := items[start:end]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chunks[index] = e.evaluateSequential(filter, chunk)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	matches := make([]Item, 0, total)
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}

	return matches, nil
}
