package batch

import (
	"context"

	"github.com/rshade/accountdesk/internal/logging"
)

// Progress is a snapshot taken after a chunk completes.
type Progress struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
}

// PercentComplete returns 0-100. An empty run reports 0.
func (p Progress) PercentComplete() float64 {
	if p.TotalItems == 0 {
		return 0
	}
	return float64(p.ProcessedItems) * 100 / float64(p.TotalItems)
}

// IsComplete reports whether every item has been processed.
func (p Progress) IsComplete() bool {
	return p.ProcessedItems >= p.TotalItems
}

// LogProgress returns a callback that logs each completed chunk at debug level.
func LogProgress(ctx context.Context, component string) ProgressCallback {
	log := logging.FromContext(ctx)
	return func(p Progress) {
		log.Debug().Ctx(ctx).
			Str("component", component).
			Int("batch", p.ProcessedBatches).
			Int("batches", p.TotalBatches).
			Float64("percent", p.PercentComplete()).
			Msg("update batch done")
	}
}
