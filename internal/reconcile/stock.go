package reconcile

import (
	"context"

	"inventorysync/internal/feed"
	"inventorysync/internal/logger"
	"inventorysync/internal/models"
)

// StockBatch accumulates one source item per reconciled record.
type StockBatch struct {
	items []models.SourceItem
}

// Add derives the stock adjustment for record and appends it.
func (b *StockBatch) Add(record feed.RemoteProduct) models.SourceItem {
	item := models.NewSourceItem(record.SKU, record.Stock)
	b.items = append(b.items, item)
	return item
}

func (b *StockBatch) Items() []models.SourceItem {
	return b.items
}

func (b *StockBatch) Len() int {
	return len(b.items)
}

// StockCommitter writes a whole batch in a single store call.
type StockCommitter struct {
	store  StockStore
	logger *logger.Logger
}

func NewStockCommitter(store StockStore, logger *logger.Logger) *StockCommitter {
	return &StockCommitter{store: store, logger: logger}
}

// Commit saves batch. An empty batch never reaches the store.
func (c *StockCommitter) Commit(ctx context.Context, batch []models.SourceItem) error {
	if len(batch) == 0 {
		return nil
	}
	if err := c.store.SaveBatch(ctx, batch); err != nil {
		return &BatchCommitError{Count: len(batch), Err: err}
	}
	c.logger.Info("Saved %d source items", len(batch))
	return nil
}
