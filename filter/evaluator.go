package filter

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*Evaluator)

// WithWorkers sets the number of concurrent chunks
func WithWorkers(workers int) EvaluatorOption {
	return func(e *Evaluator) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithBatchSize sets the chunk size; shorter lists are evaluated inline
func WithBatchSize(size int) EvaluatorOption {
	return func(e *Evaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// WithLogger sets the logger used to report records that fail to evaluate
func WithLogger(logger zerolog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// Evaluator applies a filter to lists of records, splitting long lists
// into chunks that are evaluated concurrently.
type Evaluator struct {
	workers   int
	batchSize int
	logger    zerolog.Logger
}

// NewEvaluator creates a new evaluator
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		workers:   runtime.GOMAXPROCS(0),
		batchSize: 100,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Select returns the items whose environment matches f, in input order.
// Records that fail to evaluate are logged and treated as non-matching.
func Select[T any](ctx context.Context, e *Evaluator, f *Filter, items []T, env func(T) map[string]any) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}
	if len(items) < e.batchSize {
		return selectChunk(e, f, items, env), nil
	}

	chunkSize := max(len(items)/e.workers, e.batchSize)
	chunks := (len(items) + chunkSize - 1) / chunkSize
	results := make([][]T, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(items))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = selectChunk(e, f, items[start:end], env)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]T, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}

func selectChunk[T any](e *Evaluator, f *Filter, items []T, env func(T) map[string]any) []T {
	matches := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := f.Match(env(item))
		if err != nil {
			e.logger.Debug().Err(err).Msg("Filter evaluation failed")
			continue
		}
		if ok {
			matches = append(matches, item)
		}
	}
	return matches
}
