package indexer

import (
	"context"

	"gorm.io/gorm"
)

const StorefrontCacheID = "storefront_cache"

// Invalidator drops cached storefront responses.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// storefrontIndexer flushes the storefront response cache so the next
// request reads the freshly synced catalog.
type storefrontIndexer struct {
	cache Invalidator
}

// NewStorefrontIndexer returns the cache-flushing indexer for c.
func NewStorefrontIndexer(c Invalidator) Indexer {
	return &storefrontIndexer{cache: c}
}

func (ix *storefrontIndexer) ID() string    { return StorefrontCacheID }
func (ix *storefrontIndexer) Title() string { return "Storefront Cache" }

func (ix *storefrontIndexer) Rebuild(ctx context.Context, _ *gorm.DB) error {
	return ix.cache.Invalidate(ctx)
}
