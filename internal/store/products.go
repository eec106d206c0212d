package store

import (
	"context"
	"errors"
	"fmt"

	"inventorysync/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindBySKU loads a product and its category links.
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with SKU %s: %w", sku, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", sku, err)
	}

	ids, err := r.categoryIDs(r.db.WithContext(ctx), product.ID)
	if err != nil {
		return nil, err
	}
	product.CategoryIDs = ids
	return &product, nil
}

// Save inserts or updates the product and replaces its category links
// with product.CategoryIDs, in one transaction.
func (r *ProductRepository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if product.IsNew() {
			if err := tx.Create(product).Error; err != nil {
				return fmt.Errorf("failed to create product %s: %w", product.SKU, err)
			}
		} else if err := tx.Save(product).Error; err != nil {
			return fmt.Errorf("failed to update product %s: %w", product.SKU, err)
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductCategory{}).Error; err != nil {
			return fmt.Errorf("failed to clear categories of %s: %w", product.SKU, err)
		}
		if len(product.CategoryIDs) == 0 {
			return nil
		}

		links := make([]models.ProductCategory, len(product.CategoryIDs))
		for i, categoryID := range product.CategoryIDs {
			links[i] = models.ProductCategory{ProductID: product.ID, CategoryID: categoryID}
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to link categories of %s: %w", product.SKU, err)
		}
		return nil
	})
}

// ListBySKUs returns one page of the products matching skus and the total match count.
func (r *ProductRepository) ListBySKUs(ctx context.Context, skus []string, page, pageSize int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if len(skus) == 0 {
		return products, 0, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("sku IN ?", skus)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("sku").Offset(offset).Limit(pageSize).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, total, nil
}

// ListByCategory returns the products indexed under a category for a store.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string, storeID int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Select("products.*").
		Joins("JOIN catalog_category_product_index ccpi ON ccpi.product_id = products.id").
		Where("ccpi.category_id = ? AND ccpi.store_id = ?", categoryID, storeID).
		Where("products.status = ?", models.ProductStatusEnabled).
		Order("ccpi.position, products.name").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category products: %w", err)
	}
	return products, nil
}

// FinalPrices reads the indexed final price of each product for a store.
// Products missing from the price index are absent from the map.
func (r *ProductRepository) FinalPrices(ctx context.Context, productIDs []string, storeID int) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	var rows []models.PriceIndex
	err := r.db.WithContext(ctx).
		Where("product_id IN ? AND store_id = ?", productIDs, storeID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price index: %w", err)
	}
	for _, row := range rows {
		out[row.ProductID] = row.FinalPrice
	}
	return out, nil
}

func (r *ProductRepository) categoryIDs(tx *gorm.DB, productID string) ([]string, error) {
	var ids []string
	err := tx.Model(&models.ProductCategory{}).
		Where("product_id = ?", productID).
		Order("position, category_id").
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories of product %s: %w", productID, err)
	}
	return ids, nil
}
