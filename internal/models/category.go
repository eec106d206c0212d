package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RootCategoryID is the seeded "Default Category" every synced category hangs from.
const (
	RootCategoryID   = "00000000-0000-0000-0000-000000000002"
	RootCategoryName = "Default Category"
)

type Category struct {
	ID              string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name            string    `json:"name" gorm:"uniqueIndex;not null"`
	ParentID        *string   `json:"parent_id" gorm:"type:varchar(36);index"`
	IsActive        bool      `json:"is_active"`
	IsAnchor        bool      `json:"is_anchor"`
	IncludeInMenu   bool      `json:"include_in_menu"`
	StoreID         int       `json:"store_id"`
	URLKey          string    `json:"url_key"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// URLKeyFor derives a category url key: lower-cased, spaces replaced by hyphens.
func URLKeyFor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
