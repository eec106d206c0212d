package store

import (
	"context"
	"fmt"
	"time"

	"inventorysync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SourceItemRepository struct {
	db *gorm.DB
}

func NewSourceItemRepository(db *gorm.DB) *SourceItemRepository {
	return &SourceItemRepository{db: db}
}

// SaveBatch upserts all items in a single transaction keyed by (source_code, sku).
// When a SKU repeats inside the batch the later item wins.
func (r *SourceItemRepository) SaveBatch(ctx context.Context, items []models.SourceItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			item := items[i]
			item.UpdatedAt = now
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "source_code"}, {Name: "sku"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantity", "is_in_stock", "updated_at"}),
			}).Create(&item).Error
			if err != nil {
				return fmt.Errorf("failed to save source item %s/%s: %w", item.SourceCode, item.SKU, err)
			}
		}
		return nil
	})
}

func (r *SourceItemRepository) FindBySKU(ctx context.Context, sku string) ([]models.SourceItem, error) {
	var items []models.SourceItem
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).Order("source_code").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch source items for %s: %w", sku, err)
	}
	return items, nil
}

// StockBySKU reads the aggregated stock index for the given skus.
func (r *SourceItemRepository) StockBySKU(ctx context.Context, skus []string) (map[string]models.StockStatus, error) {
	out := make(map[string]models.StockStatus, len(skus))
	if len(skus) == 0 {
		return out, nil
	}

	var rows []models.StockStatus
	if err := r.db.WithContext(ctx).Where("sku IN ?", skus).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stock index: %w", err)
	}
	for _, row := range rows {
		out[row.SKU] = row
	}
	return out, nil
}
