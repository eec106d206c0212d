package feed

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RemoteProduct is one entry of the inventory feed snapshot.
type RemoteProduct struct {
	SKU      string
	Title    string
	Price    decimal.Decimal
	Stock    int
	Category *string
}

// HasCategory reports whether the feed entry names a category.
func (p RemoteProduct) HasCategory() bool {
	return p.Category != nil && *p.Category != ""
}

// Record is one decoded feed entry. Err is set when that entry alone is
// malformed; Product then carries whatever SKU could be read.
type Record struct {
	Product RemoteProduct
	Err     error
}

// Snapshot is the full feed payload. Products is a pointer so a missing
// collection can be told apart from an empty one. Entries stay raw so each
// one is decoded on its own.
type Snapshot struct {
	Products *[]json.RawMessage `json:"products"`
}

// entry is the wire shape of a product. Stock accepts integral numbers in
// any JSON spelling ("5", 5.0).
type entry struct {
	SKU      string          `json:"sku"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Stock    json.Number     `json:"stock"`
	Category *string         `json:"category,omitempty"`
}

// Response is the raw result of a feed fetch.
type Response struct {
	StatusCode int
	Body       []byte
}
