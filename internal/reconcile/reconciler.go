package reconcile

import (
	"context"
	"errors"

	"inventorysync/internal/feed"
	"inventorysync/internal/logger"
	"inventorysync/internal/models"
	"inventorysync/internal/store"
)

// Outcome describes one successfully reconciled record.
type Outcome struct {
	Product *models.Product
	Created bool
	// CategoryErr is set when the category could not be resolved; the
	// product was still saved with its previous categories.
	CategoryErr error
}

// ProductReconciler brings one local product in line with a feed record.
type ProductReconciler struct {
	products   ProductStore
	categories *CategoryResolver
	logger     *logger.Logger
}

func NewProductReconciler(products ProductStore, categories *CategoryResolver, logger *logger.Logger) *ProductReconciler {
	return &ProductReconciler{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// Reconcile upserts the product for record. On error nothing was persisted
// for the record and no stock adjustment may be emitted for it.
func (r *ProductReconciler) Reconcile(ctx context.Context, record feed.RemoteProduct) (*Outcome, error) {
	if record.SKU == "" {
		return nil, &RecordError{SKU: record.SKU, Op: "match", Err: ErrNotFound}
	}

	product, created, err := r.initialize(ctx, record)
	if err != nil {
		return nil, &RecordError{SKU: record.SKU, Op: "load", Err: err}
	}

	outcome := &Outcome{Product: product, Created: created}

	product.Price = record.Price
	if record.HasCategory() {
		categoryID, err := r.categories.Resolve(ctx, *record.Category)
		if err != nil {
			r.logger.Error("Error processing category with Name %s: %v", *record.Category, err)
			outcome.CategoryErr = err
		} else {
			product.CategoryIDs = []string{categoryID}
		}
	}

	if err := r.products.Save(ctx, product); err != nil {
		r.logger.Error("Error saving product: %s -> %v", record.SKU, err)
		return nil, &RecordError{SKU: record.SKU, Op: "save", Err: err}
	}

	if created {
		r.logger.Info("Product created: %s", record.SKU)
	} else {
		r.logger.Info("Product updated: %s", record.SKU)
	}
	return outcome, nil
}

// initialize returns the stored product for the record's sku, or a new shell
// named after the record. Existing names are kept.
func (r *ProductReconciler) initialize(ctx context.Context, record feed.RemoteProduct) (*models.Product, bool, error) {
	product, err := r.products.FindBySKU(ctx, record.SKU)
	if err == nil {
		return product, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}
	return models.NewProduct(record.SKU, record.Title), true, nil
}
