package batch

import (
	"context"
	"errors"
	"fmt"
)

// Batch size bounds.
const (
	DefaultBatchSize = 100
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
)

// Span is the half-open [Start, End) index range of one chunk.
type Span struct {
	Start int
	End   int
}

// Len returns the number of items in the span.
func (s Span) Len() int { return s.End - s.Start }

// Callback handles one chunk. index is 0-based.
type Callback[T any] func(ctx context.Context, chunk []T, index int) error

// ProgressCallback is invoked after each chunk succeeds.
type ProgressCallback func(progress Progress)

// Processor walks an item slice in fixed-size chunks, in order.
type Processor[T any] struct {
	size       int
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given chunk size.
func NewProcessor[T any](size int) (*Processor[T], error) {
	if size < MinBatchSize || size > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}
	return &Processor[T]{size: size}, nil
}

// WithProgressCallback sets the progress callback and returns p.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// BatchSize returns the chunk size.
func (p *Processor[T]) BatchSize() int {
	return p.size
}

// Spans splits totalItems into chunk ranges. The last span may be short.
func (p *Processor[T]) Spans(totalItems int) []Span {
	spans := make([]Span, 0, (totalItems+p.size-1)/p.size)
	for start := 0; start < totalItems; start += p.size {
		spans = append(spans, Span{Start: start, End: min(start+p.size, totalItems)})
	}
	return spans
}

// Process hands each chunk to callback and stops at the first error or
// cancellation. No items means no calls.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	if callback == nil {
		return ErrNilCallback
	}

	spans := p.Spans(len(items))
	progress := Progress{TotalItems: len(items), TotalBatches: len(spans)}

	for i, span := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := callback(ctx, items[span.Start:span.End], i); err != nil {
			return fmt.Errorf("batch %d failed: %w", i, err)
		}

		progress.ProcessedItems += span.Len()
		progress.ProcessedBatches++
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}
	return nil
}
