package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessor(t *testing.T) {
	_, err := NewProcessor[string](0)
	require.ErrorIs(t, err, ErrInvalidBatchSize)

	_, err = NewProcessor[string](MaxBatchSize + 1)
	require.ErrorIs(t, err, ErrInvalidBatchSize)

	p, err := NewProcessor[string](10)
	require.NoError(t, err)
	assert.Equal(t, 10, p.BatchSize())
}

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("Sequential", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		var sizes []int
		var last Progress

		p.WithProgressCallback(func(pr Progress) { last = pr })
		err := p.Process(context.Background(), items, func(_ context.Context, batch []int, _ int) error {
			sizes = append(sizes, len(batch))
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []int{10, 10, 5}, sizes)
		assert.True(t, last.IsComplete())
		assert.InDelta(t, 100.0, last.PercentComplete(), 0.001)
		assert.Equal(t, 3, last.ProcessedBatches)
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		calls := 0
		err := p.Process(context.Background(), items, func(_ context.Context, _ []int, batchIndex int) error {
			calls++
			if batchIndex == 1 {
				return errors.New("fail")
			}
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 1 failed")
		assert.Equal(t, 2, calls)
	})

	t.Run("Cancellation", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.Process(ctx, items, func(context.Context, []int, int) error { return nil })
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("EmptyIsNoop", func(t *testing.T) {
		p, _ := NewProcessor[int](DefaultBatchSize)
		err := p.Process(context.Background(), nil, func(context.Context, []int, int) error {
			t.Fatal("callback must not run")
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("NilCallback", func(t *testing.T) {
		p, _ := NewProcessor[int](DefaultBatchSize)
		require.ErrorIs(t, p.Process(context.Background(), items, nil), ErrNilCallback)
	})
}

func TestProcessor_Spans(t *testing.T) {
	p, _ := NewProcessor[int](4)
	assert.Equal(t, []Span{{0, 4}, {4, 8}, {8, 9}}, p.Spans(9))
	assert.Empty(t, p.Spans(0))
	assert.Equal(t, []Span{{0, 4}}, p.Spans(4))
}

func TestProgress_Empty(t *testing.T) {
	var pr Progress
	assert.Zero(t, pr.PercentComplete())
	assert.True(t, pr.IsComplete())
}
