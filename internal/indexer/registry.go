package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventorysync/internal/logger"
	"inventorysync/internal/models"

	"gorm.io/gorm"
)

// ErrUnknownIndexer is returned for ids that were never registered.
var ErrUnknownIndexer = errors.New("unknown indexer")

// Indexer rebuilds one derived structure from catalog data.
type Indexer interface {
	ID() string
	Title() string
	// Rebuild recomputes the index from scratch. db is a transaction
	// owned by the registry.
	Rebuild(ctx context.Context, db *gorm.DB) error
}

// Registry owns the known indexers and their persisted mode and status.
type Registry struct {
	db       *gorm.DB
	logger   *logger.Logger
	order    []string
	indexers map[string]Indexer
}

func NewRegistry(db *gorm.DB, logger *logger.Logger) *Registry {
	return &Registry{
		db:       db,
		logger:   logger,
		indexers: make(map[string]Indexer),
	}
}

// Register adds ix, replacing any indexer with the same id.
func (r *Registry) Register(ix Indexer) {
	if _, ok := r.indexers[ix.ID()]; !ok {
		r.order = append(r.order, ix.ID())
	}
	r.indexers[ix.ID()] = ix
}

// IDs lists registered indexers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Get(id string) (Indexer, error) {
	ix, ok := r.indexers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndexer, id)
	}
	return ix, nil
}

// State returns the persisted state of id, creating a realtime/valid row on first use.
func (r *Registry) State(ctx context.Context, id string) (*models.IndexerState, error) {
	if _, err := r.Get(id); err != nil {
		return nil, err
	}

	state := models.IndexerState{IndexerID: id}
	err := r.db.WithContext(ctx).
		Where(models.IndexerState{IndexerID: id}).
		Attrs(models.IndexerState{Mode: models.IndexerModeRealtime, Status: models.IndexerStatusValid}).
		FirstOrCreate(&state).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load state of %s: %w", id, err)
	}
	return &state, nil
}

func (r *Registry) States(ctx context.Context) ([]models.IndexerState, error) {
	states := make([]models.IndexerState, 0, len(r.order))
	for _, id := range r.order {
		state, err := r.State(ctx, id)
		if err != nil {
			return nil, err
		}
		states = append(states, *state)
	}
	return states, nil
}

// IsScheduled reports whether id is rebuilt by the scheduled pass instead of on save.
func (r *Registry) IsScheduled(ctx context.Context, id string) (bool, error) {
	state, err := r.State(ctx, id)
	if err != nil {
		return false, err
	}
	return state.Mode == models.IndexerModeSchedule, nil
}

func (r *Registry) SetMode(ctx context.Context, id string, mode models.IndexerMode) error {
	if mode != models.IndexerModeRealtime && mode != models.IndexerModeSchedule {
		return fmt.Errorf("invalid indexer mode %q", mode)
	}
	if _, err := r.State(ctx, id); err != nil {
		return err
	}
	return r.update(ctx, id, map[string]interface{}{"mode": mode})
}

// Invalidate flags id for the next scheduled pass.
func (r *Registry) Invalidate(ctx context.Context, id string) error {
	if _, err := r.State(ctx, id); err != nil {
		return err
	}
	return r.update(ctx, id, map[string]interface{}{"status": models.IndexerStatusInvalid})
}

// ReindexAll fully rebuilds id inside one transaction. A failed rebuild
// leaves the previous index data in place and the indexer invalid.
func (r *Registry) ReindexAll(ctx context.Context, id string) error {
	ix, err := r.Get(id)
	if err != nil {
		return err
	}
	if _, err := r.State(ctx, id); err != nil {
		return err
	}
	if err := r.update(ctx, id, map[string]interface{}{"status": models.IndexerStatusWorking}); err != nil {
		return err
	}

	start := time.Now()
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ix.Rebuild(ctx, tx)
	})
	if err != nil {
		if updErr := r.update(ctx, id, map[string]interface{}{"status": models.IndexerStatusInvalid}); updErr != nil {
			r.logger.Error("Failed to mark %s invalid: %v", id, updErr)
		}
		return fmt.Errorf("rebuild %s: %w", id, err)
	}

	r.logger.Debug("Rebuilt %s in %s", id, time.Since(start))
	return r.update(ctx, id, map[string]interface{}{"status": models.IndexerStatusValid})
}

// ReindexInvalid rebuilds every scheduled indexer that is flagged invalid.
func (r *Registry) ReindexInvalid(ctx context.Context) map[string]error {
	results := make(map[string]error)
	for _, id := range r.order {
		state, err := r.State(ctx, id)
		if err != nil {
			results[id] = err
			continue
		}
		if state.Mode != models.IndexerModeSchedule || state.Status != models.IndexerStatusInvalid {
			continue
		}
		results[id] = r.ReindexAll(ctx, id)
	}
	return results
}

func (r *Registry) update(ctx context.Context, id string, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.IndexerState{}).
		Where("indexer_id = ?", id).
		Updates(values).Error
	if err != nil {
		return fmt.Errorf("failed to update state of %s: %w", id, err)
	}
	return nil
}
