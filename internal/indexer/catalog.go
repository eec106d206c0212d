package indexer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"inventorysync/internal/models"

	"gorm.io/gorm"
)

const (
	CategoryProductID = "catalog_category_product"
	ProductCategoryID = "catalog_product_category"
	CatalogRuleID     = "catalogrule_rule"
	ProductAttrID     = "catalog_product_attribute"
	FulltextID        = "catalogsearch_fulltext"
)

// categoryProductIndexer maps categories to their products. Anchor parents
// also list the products of their direct children.
type categoryProductIndexer struct {
	id      string
	title   string
	storeID int
}

func (ix *categoryProductIndexer) ID() string    { return ix.id }
func (ix *categoryProductIndexer) Title() string { return ix.title }

func (ix *categoryProductIndexer) Rebuild(ctx context.Context, db *gorm.DB) error {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var links []models.ProductCategory
	if err := db.Order("product_id, position").Find(&links).Error; err != nil {
		return fmt.Errorf("load product categories: %w", err)
	}

	rows := make(map[[2]string]models.CategoryProductIndex)
	for _, link := range links {
		category, ok := byID[link.CategoryID]
		if !ok {
			continue
		}
		rows[[2]string{category.ID, link.ProductID}] = models.CategoryProductIndex{
			CategoryID: category.ID,
			ProductID:  link.ProductID,
			StoreID:    ix.storeID,
			Position:   link.Position,
		}

		if category.ParentID == nil {
			continue
		}
		parent, ok := byID[*category.ParentID]
		if !ok || !parent.IsAnchor {
			continue
		}
		key := [2]string{parent.ID, link.ProductID}
		if _, exists := rows[key]; !exists {
			rows[key] = models.CategoryProductIndex{
				CategoryID: parent.ID,
				ProductID:  link.ProductID,
				StoreID:    ix.storeID,
				Position:   link.Position,
				IsParent:   true,
			}
		}
	}

	out := make([]models.CategoryProductIndex, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		return out[i].ProductID < out[j].ProductID
	})

	return replaceAll(db, &models.CategoryProductIndex{}, out)
}

// priceIndexer materialises final prices. No price rules exist yet, so the
// final price equals the product price.
type priceIndexer struct {
	storeID int
}

func (ix *priceIndexer) ID() string    { return CatalogRuleID }
func (ix *priceIndexer) Title() string { return "Catalog Rule Product" }

func (ix *priceIndexer) Rebuild(ctx context.Context, db *gorm.DB) error {
	var products []models.Product
	if err := db.Where("status = ?", models.ProductStatusEnabled).Find(&products).Error; err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	rows := make([]models.PriceIndex, len(products))
	for i, p := range products {
		rows[i] = models.PriceIndex{ProductID: p.ID, StoreID: ix.storeID, Price: p.Price, FinalPrice: p.Price}
	}
	return replaceAll(db, &models.PriceIndex{}, rows)
}

type attributeIndexer struct{}

func (attributeIndexer) ID() string    { return ProductAttrID }
func (attributeIndexer) Title() string { return "Product EAV" }

func (attributeIndexer) Rebuild(ctx context.Context, db *gorm.DB) error {
	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	rows := make([]models.AttributeIndex, 0, len(products)*4)
	for _, p := range products {
		rows = append(rows,
			models.AttributeIndex{ProductID: p.ID, AttributeCode: "status", Value: fmt.Sprint(int(p.Status))},
			models.AttributeIndex{ProductID: p.ID, AttributeCode: "visibility", Value: fmt.Sprint(int(p.Visibility))},
			models.AttributeIndex{ProductID: p.ID, AttributeCode: "type_id", Value: string(p.TypeID)},
			models.AttributeIndex{ProductID: p.ID, AttributeCode: "attribute_set_id", Value: fmt.Sprint(p.AttributeSetID)},
		)
	}
	return replaceAll(db, &models.AttributeIndex{}, rows)
}

// fulltextIndexer builds lower-cased search keywords for searchable products.
type fulltextIndexer struct{}

func (fulltextIndexer) ID() string    { return FulltextID }
func (fulltextIndexer) Title() string { return "Catalog Search" }

func (fulltextIndexer) Rebuild(ctx context.Context, db *gorm.DB) error {
	var products []models.Product
	err := db.Where("status = ? AND visibility IN ?", models.ProductStatusEnabled,
		[]models.ProductVisibility{models.VisibilitySearch, models.VisibilityCatalogAndSearch}).
		Find(&products).Error
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	type linkName struct {
		ProductID string
		Name      string
	}
	var names []linkName
	err = db.Model(&models.ProductCategory{}).
		Select("product_categories.product_id, categories.name").
		Joins("JOIN categories ON categories.id = product_categories.category_id").
		Scan(&names).Error
	if err != nil {
		return fmt.Errorf("load category names: %w", err)
	}
	categoryNames := make(map[string][]string)
	for _, n := range names {
		categoryNames[n.ProductID] = append(categoryNames[n.ProductID], n.Name)
	}

	rows := make([]models.SearchIndex, len(products))
	for i, p := range products {
		words := append([]string{p.SKU, p.Name}, categoryNames[p.ID]...)
		rows[i] = models.SearchIndex{
			ProductID: p.ID,
			SKU:       p.SKU,
			Keywords:  strings.ToLower(strings.Join(words, " ")),
		}
	}
	return replaceAll(db, &models.SearchIndex{}, rows)
}

// replaceAll truncates the index table of model and inserts rows.
func replaceAll[T any](db *gorm.DB, model *T, rows []T) error {
	if err := db.Where("1 = 1").Delete(model).Error; err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.CreateInBatches(rows, 500).Error; err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}
