package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Default batch processing configuration.
const (
	// DefaultBatchSize is the default number of items per batch.
	DefaultBatchSize = 100

	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 1000

	// DefaultConcurrency is the default number of batches in flight.
	DefaultConcurrency = 4
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// ItemFunc maps one item to its result. index is the item's position in the
// input. Returning an error stops the whole run.
type ItemFunc[T, R any] func(ctx context.Context, item T, index int) (R, error)

// ProgressCallback is an optional callback invoked after each batch is processed.
// It receives progress information for UI updates or logging.
type ProgressCallback func(progress *Progress)

// Processor maps items to results in fixed-size batches. Batches may run
// concurrently but results always come back in input order.
type Processor[T, R any] struct {
	batchSize   int
	concurrency int
	onProgress  ProgressCallback

	// mu serialises progress callbacks.
	mu sync.Mutex
}

// NewProcessor creates a new batch processor with the given batch size.
// A concurrency below one processes batches sequentially.
func NewProcessor[T, R any](batchSize, concurrency int) (*Processor[T, R], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	return &Processor[T, R]{
		batchSize:   batchSize,
		concurrency: concurrency,
	}, nil
}

// NewProcessorWithDefaults creates a processor with default batch size and concurrency.
func NewProcessorWithDefaults[T, R any]() *Processor[T, R] {
	return &Processor[T, R]{
		batchSize:   DefaultBatchSize,
		concurrency: DefaultConcurrency,
	}
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T, R]) WithProgressCallback(callback ProgressCallback) *Processor[T, R] {
	p.onProgress = callback
	return p
}

// Map applies fn to every item and returns the results in input order.
// The first error cancels the remaining batches and is returned wrapped with
// the failing batch index.
func (p *Processor[T, R]) Map(ctx context.Context, items []T, fn ItemFunc[T, R]) ([]R, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	if fn == nil {
		return nil, ErrNilCallback
	}

	bounds := p.CalculateBatches(len(items))
	progress := NewProgress(len(items), len(bounds), p.batchSize)
	results := make([]R, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for batchIndex, bound := range bounds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			for i := bound[0]; i < bound[1]; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				result, err := fn(gctx, items[i], i)
				if err != nil {
					return fmt.Errorf("batch %d failed: %w", batchIndex, err)
				}
				results[i] = result
			}
			p.report(progress, bound[1]-bound[0])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetBatchSize returns the configured batch size.
func (p *Processor[T, R]) GetBatchSize() int {
	return p.batchSize
}

// GetConcurrency returns the configured number of batches in flight.
func (p *Processor[T, R]) GetConcurrency() int {
	return p.concurrency
}

// CalculateBatches returns the batch boundaries for the given items.
// Returns a slice of [start, end) index pairs.
func (p *Processor[T, R]) CalculateBatches(totalItems int) [][2]int {
	totalBatches := (totalItems + p.batchSize - 1) / p.batchSize
	batches := make([][2]int, totalBatches)

	for i := range totalBatches {
		start := i * p.batchSize
		end := min(start+p.batchSize, totalItems)
		batches[i] = [2]int{start, end}
	}

	return batches
}

// report records a finished batch and notifies the progress callback.
func (p *Processor[T, R]) report(progress *Progress, itemsProcessed int) {
	progress.AddProcessed(itemsProcessed)

	if p.onProgress == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onProgress(progress)
}
