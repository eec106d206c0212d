package reconcile

import (
	"context"

	"inventorysync/internal/logger"
)

// IndexRefresher rebuilds realtime indexes and defers scheduled ones.
type IndexRefresher struct {
	registry IndexRegistry
	logger   *logger.Logger
}

func NewIndexRefresher(registry IndexRegistry, logger *logger.Logger) *IndexRefresher {
	return &IndexRefresher{registry: registry, logger: logger}
}

// Refresh handles every id independently and returns the per-id result.
// Scheduled indexes are only flagged invalid for the scheduled pass.
func (r *IndexRefresher) Refresh(ctx context.Context, ids []string) map[string]error {
	results := make(map[string]error, len(ids))
	for _, id := range ids {
		if err := r.refresh(ctx, id); err != nil {
			r.logger.Error("Error reindexing %s: %v", id, err)
			results[id] = &IndexError{IndexerID: id, Err: err}
			continue
		}
		results[id] = nil
	}
	return results
}

func (r *IndexRefresher) refresh(ctx context.Context, id string) error {
	scheduled, err := r.registry.IsScheduled(ctx, id)
	if err != nil {
		return err
	}
	if scheduled {
		r.logger.Debug("Index %s is scheduled, deferring rebuild", id)
		return r.registry.Invalidate(ctx, id)
	}

	if err := r.registry.ReindexAll(ctx, id); err != nil {
		return err
	}
	r.logger.Info("Reindexed: %s", id)
	return nil
}
