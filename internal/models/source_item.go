package models

import "time"

// SourceItem is the quantity and availability of a SKU at one inventory source.
type SourceItem struct {
	SourceCode string    `json:"source_code" gorm:"type:varchar(64);primaryKey"`
	SKU        string    `json:"sku" gorm:"primaryKey"`
	Quantity   int       `json:"quantity"`
	IsInStock  bool      `json:"is_in_stock"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewSourceItem(sku string, quantity int) SourceItem {
	return SourceItem{
		SourceCode: DefaultSourceCode,
		SKU:        sku,
		Quantity:   quantity,
		IsInStock:  quantity > 0,
	}
}
