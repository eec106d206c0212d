package processors

import (
	"context"
	"fmt"

	"inventorysync/internal/events"
	"inventorysync/internal/logger"
)

// SyncRunner runs one inventory sync.
type SyncRunner interface {
	Execute(ctx context.Context)
}

// IndexRefresher rebuilds the named indexes.
type IndexRefresher interface {
	Refresh(ctx context.Context, ids []string) map[string]error
}

// InvalidReindexer rebuilds every index flagged invalid.
type InvalidReindexer interface {
	ReindexInvalid(ctx context.Context) map[string]error
}

type EventProcessor struct {
	sync       SyncRunner
	refresher  IndexRefresher
	reindexer  InvalidReindexer
	defaultIDs []string
	logger     *logger.Logger
}

func NewEventProcessor(sync SyncRunner, refresher IndexRefresher, reindexer InvalidReindexer, defaultIDs []string, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{
		sync:       sync,
		refresher:  refresher,
		reindexer:  reindexer,
		defaultIDs: defaultIDs,
		logger:     logger,
	}
}

// Process handles one event. Index failures are logged, not returned.
func (ep *EventProcessor) Process(ctx context.Context, event events.Event) error {
	ep.logger.Debug("Processing event: %s", event.Type)

	switch event.Type {
	case events.TypeSyncRequested:
		ep.sync.Execute(ctx)
	case events.TypeReindexRequested:
		ids := event.IndexerIDs
		if len(ids) == 0 {
			ids = ep.defaultIDs
		}
		ep.refresher.Refresh(ctx, ids)
	default:
		return fmt.Errorf("%w: %s", events.ErrUnknownEvent, event.Type)
	}

	ep.logger.Info("Event processed successfully: %s", event.Type)
	return nil
}

// RunScheduled is the periodic pass: a full sync followed by the rebuild of
// indexes the sync deferred.
func (ep *EventProcessor) RunScheduled(ctx context.Context) {
	ep.logger.Info("Running scheduled inventory sync")
	ep.sync.Execute(ctx)

	for id, err := range ep.reindexer.ReindexInvalid(ctx) {
		if err != nil {
			ep.logger.Error("Error reindexing %s: %v", id, err)
			continue
		}
		ep.logger.Info("Reindexed: %s", id)
	}
}
