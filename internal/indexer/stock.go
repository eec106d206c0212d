package indexer

import (
	"context"
	"fmt"

	"inventorysync/internal/models"

	"gorm.io/gorm"
)

const (
	StockID      = "cataloginventory_stock"
	InventoryID  = "inventory"
	SourceItemID = "inventory_source_item"
)

// stockIndexer sums source items per SKU. The legacy stock indexer and both
// multi-source inventory indexers share this rebuild.
type stockIndexer struct {
	id    string
	title string
}

func (ix *stockIndexer) ID() string    { return ix.id }
func (ix *stockIndexer) Title() string { return ix.title }

func (ix *stockIndexer) Rebuild(ctx context.Context, db *gorm.DB) error {
	var totals []struct {
		SKU      string
		Quantity int
		InStock  int
	}
	err := db.Model(&models.SourceItem{}).
		Select("sku, SUM(quantity) AS quantity, MAX(CASE WHEN is_in_stock THEN 1 ELSE 0 END) AS in_stock").
		Group("sku").
		Order("sku").
		Scan(&totals).Error
	if err != nil {
		return fmt.Errorf("aggregate source items: %w", err)
	}

	rows := make([]models.StockStatus, len(totals))
	for i, t := range totals {
		rows[i] = models.StockStatus{SKU: t.SKU, Quantity: t.Quantity, IsInStock: t.InStock > 0}
	}
	return replaceAll(db, &models.StockStatus{}, rows)
}
