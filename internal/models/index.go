package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type IndexerMode string

const (
	IndexerModeRealtime IndexerMode = "realtime"
	IndexerModeSchedule IndexerMode = "schedule"
)

type IndexerStatus string

const (
	IndexerStatusValid   IndexerStatus = "valid"
	IndexerStatusInvalid IndexerStatus = "invalid"
	IndexerStatusWorking IndexerStatus = "working"
)

// IndexerState is the persisted mode and health of one indexer.
type IndexerState struct {
	IndexerID string        `json:"indexer_id" gorm:"type:varchar(64);primaryKey"`
	Mode      IndexerMode   `json:"mode" gorm:"type:varchar(16);not null"`
	Status    IndexerStatus `json:"status" gorm:"type:varchar(16);not null"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (IndexerState) TableName() string {
	return "indexer_state"
}

// StockStatus aggregates source items per SKU.
type StockStatus struct {
	SKU       string `json:"sku" gorm:"primaryKey"`
	Quantity  int    `json:"qty"`
	IsInStock bool   `json:"is_in_stock"`
}

func (StockStatus) TableName() string {
	return "inventory_stock_index"
}

type CategoryProductIndex struct {
	CategoryID string `gorm:"type:varchar(36);primaryKey"`
	ProductID  string `gorm:"type:varchar(36);primaryKey"`
	StoreID    int    `gorm:"primaryKey;autoIncrement:false"`
	Position   int
	IsParent   bool
}

func (CategoryProductIndex) TableName() string {
	return "catalog_category_product_index"
}

type PriceIndex struct {
	ProductID  string          `gorm:"type:varchar(36);primaryKey"`
	StoreID    int             `gorm:"primaryKey;autoIncrement:false"`
	Price      decimal.Decimal `gorm:"type:decimal(12,4)"`
	FinalPrice decimal.Decimal `gorm:"type:decimal(12,4)"`
}

func (PriceIndex) TableName() string {
	return "catalog_product_index_price"
}

type AttributeIndex struct {
	ProductID     string `gorm:"type:varchar(36);primaryKey"`
	AttributeCode string `gorm:"type:varchar(64);primaryKey"`
	Value         string
}

func (AttributeIndex) TableName() string {
	return "catalog_product_index_eav"
}

type SearchIndex struct {
	ProductID string `gorm:"type:varchar(36);primaryKey"`
	SKU       string `gorm:"index"`
	Keywords  string
}

func (SearchIndex) TableName() string {
	return "catalogsearch_fulltext_index"
}
