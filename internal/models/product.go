package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Defaults applied to products created by the inventory sync.
const (
	DefaultAttributeSetID = 4
	DefaultSourceCode     = "default"
)

type Product struct {
	ID             string            `json:"id" gorm:"type:varchar(36);primaryKey"`
	SKU            string            `json:"sku" gorm:"uniqueIndex;not null"`
	Name           string            `json:"name" gorm:"not null"`
	Price          decimal.Decimal   `json:"price" gorm:"type:decimal(12,4)"`
	AttributeSetID int               `json:"attribute_set_id"`
	Status         ProductStatus     `json:"status"`
	Visibility     ProductVisibility `json:"visibility"`
	TypeID         ProductType       `json:"type_id" gorm:"type:varchar(32)"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// CategoryIDs is persisted through ProductCategory links.
	CategoryIDs []string `json:"category_ids" gorm:"-"`
}

type ProductStatus int

const (
	ProductStatusEnabled  ProductStatus = 1
	ProductStatusDisabled ProductStatus = 2
)

type ProductVisibility int

const (
	VisibilityNotVisible       ProductVisibility = 1
	VisibilityCatalog          ProductVisibility = 2
	VisibilitySearch           ProductVisibility = 3
	VisibilityCatalogAndSearch ProductVisibility = 4
)

type ProductType string

const (
	ProductTypeSimple       ProductType = "simple"
	ProductTypeConfigurable ProductType = "configurable"
	ProductTypeVirtual      ProductType = "virtual"
)

// NewProduct returns an unsaved product shell carrying the catalog defaults.
func NewProduct(sku, name string) *Product {
	return &Product{
		SKU:            sku,
		Name:           name,
		AttributeSetID: DefaultAttributeSetID,
		Status:         ProductStatusEnabled,
		Visibility:     VisibilityCatalogAndSearch,
		TypeID:         ProductTypeSimple,
	}
}

// IsNew reports whether the product has never been persisted.
func (p *Product) IsNew() bool {
	return p.ID == ""
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// ProductCategory links a product to one of its categories.
type ProductCategory struct {
	ProductID  string `json:"product_id" gorm:"type:varchar(36);primaryKey"`
	CategoryID string `json:"category_id" gorm:"type:varchar(36);primaryKey;index"`
	Position   int    `json:"position"`
}
