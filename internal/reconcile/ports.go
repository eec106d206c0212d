package reconcile

import (
	"context"

	"inventorysync/internal/feed"
	"inventorysync/internal/models"
)

// Settings exposes the externally owned sync configuration.
type Settings interface {
	SyncEnabled(ctx context.Context) (bool, error)
	FeedURL(ctx context.Context) (string, error)
}

// FeedFetcher performs the single outbound feed request of a run.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*feed.Response, error)
}

// ProductStore reads and writes catalog products. FindBySKU must return an
// error matching store.ErrNotFound for unknown skus.
type ProductStore interface {
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
}

// CategoryStore resolves categories by name. GetOrCreateByName is atomic:
// build is only called when no category with that name exists.
type CategoryStore interface {
	GetOrCreateByName(ctx context.Context, name string, build func() *models.Category) (*models.Category, bool, error)
}

// StockStore persists a stock batch in one call.
type StockStore interface {
	SaveBatch(ctx context.Context, items []models.SourceItem) error
}

// IndexRegistry triggers index rebuilds by id.
type IndexRegistry interface {
	IsScheduled(ctx context.Context, id string) (bool, error)
	Invalidate(ctx context.Context, id string) error
	ReindexAll(ctx context.Context, id string) error
}
