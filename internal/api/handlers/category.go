package handlers

import (
	"context"
	"errors"
	"net/http"

	"inventorysync/internal/logger"
	"inventorysync/internal/models"
	"inventorysync/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CategoryFinder interface {
	FindByID(ctx context.Context, id string) (*models.Category, error)
}

type CategoryProductLister interface {
	ListByCategory(ctx context.Context, categoryID string, storeID int) ([]models.Product, error)
	FinalPrices(ctx context.Context, productIDs []string, storeID int) (map[string]decimal.Decimal, error)
}

type CategoryHandler struct {
	categories CategoryFinder
	products   CategoryProductLister
	cache      ResponseCache
	storeID    int
	logger     *logger.Logger
}

func NewCategoryHandler(categories CategoryFinder, products CategoryProductLister, cache ResponseCache, storeID int, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		products:   products,
		cache:      cache,
		storeID:    storeID,
		logger:     logger,
	}
}

// CategoryProduct carries the final price from the price index, falling
// back to the base price for products not indexed yet.
type CategoryProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *CategoryHandler) Products(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()
	key := "category:" + id

	var out []CategoryProduct
	if h.cache != nil && h.cache.Get(ctx, key, &out) {
		c.JSON(http.StatusOK, out)
		return
	}

	if _, err := h.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to fetch category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	products, err := h.products.ListByCategory(ctx, id, h.storeID)
	if err != nil {
		h.logger.Error("Failed to fetch products for category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	finalPrices, err := h.products.FinalPrices(ctx, ids, h.storeID)
	if err != nil {
		h.logger.Error("Failed to fetch prices for category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	out = make([]CategoryProduct, 0, len(products))
	for _, p := range products {
		price, ok := finalPrices[p.ID]
		if !ok {
			price = p.Price
		}
		out = append(out, CategoryProduct{ID: p.ID, Name: p.Name, Price: price.InexactFloat64()})
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, out); err != nil {
			h.logger.Warn("Failed to cache category products: %v", err)
		}
	}
	c.JSON(http.StatusOK, out)
}
