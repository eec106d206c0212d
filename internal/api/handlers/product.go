package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"inventorysync/internal/logger"
	"inventorysync/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProductLister interface {
	ListBySKUs(ctx context.Context, skus []string, page, pageSize int) ([]models.Product, int64, error)
}

type StockReader interface {
	StockBySKU(ctx context.Context, skus []string) (map[string]models.StockStatus, error)
}

// ResponseCache is optional; a nil cache disables caching.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}) error
}

type ProductHandler struct {
	products ProductLister
	stock    StockReader
	cache    ResponseCache
	logger   *logger.Logger
}

func NewProductHandler(products ProductLister, stock StockReader, cache ResponseCache, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		stock:    stock,
		cache:    cache,
		logger:   logger,
	}
}

type ProductInfo struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

type PageInfo struct {
	PageSize    int `json:"page_size"`
	CurrentPage int `json:"current_page"`
}

type ProductInfoResponse struct {
	Items      []ProductInfo `json:"items"`
	TotalCount int64         `json:"total_count"`
	PageInfo   PageInfo      `json:"page_info"`
}

// List returns name, price and salable quantity for the requested skus.
func (h *ProductHandler) List(c *gin.Context) {
	skus := splitSKUs(c.Query("skus"))
	if len(skus) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skus is required"})
		return
	}

	pageSize, err := positiveQuery(c, "page_size", defaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	page, err := positiveQuery(c, "current_page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("products:%s:%d:%d", strings.Join(skus, ","), pageSize, page)

	var resp ProductInfoResponse
	if h.cache != nil && h.cache.Get(ctx, key, &resp) {
		c.JSON(http.StatusOK, resp)
		return
	}

	products, total, err := h.products.ListBySKUs(ctx, skus, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to fetch products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	stock, err := h.stock.StockBySKU(ctx, skus)
	if err != nil {
		h.logger.Error("Failed to fetch stock: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return
	}

	resp = ProductInfoResponse{
		Items:      make([]ProductInfo, 0, len(products)),
		TotalCount: total,
		PageInfo:   PageInfo{PageSize: pageSize, CurrentPage: page},
	}
	for _, p := range products {
		resp.Items = append(resp.Items, ProductInfo{
			Name:  p.Name,
			Price: p.Price.InexactFloat64(),
			Qty:   stock[p.SKU].Quantity,
		})
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, resp); err != nil {
			h.logger.Warn("Failed to cache products: %v", err)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// splitSKUs returns the distinct, sorted skus of a comma separated list.
func splitSKUs(raw string) []string {
	seen := map[string]bool{}
	var skus []string
	for _, sku := range strings.Split(raw, ",") {
		sku = strings.TrimSpace(sku)
		if sku == "" || seen[sku] {
			continue
		}
		seen[sku] = true
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

func positiveQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return value, nil
}
