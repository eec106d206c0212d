package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"inventorysync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	PathSyncEnabled = "inventorysync/general/enable_sync"
	PathSyncAPIURL  = "inventorysync/general/api_url"

	ScopeDefault = "default"
)

// ScopeConfig reads default-scope values from core_config_data, falling
// back to the process defaults when a path has no stored value.
type ScopeConfig struct {
	db       *gorm.DB
	defaults map[string]string
}

func NewScopeConfig(db *gorm.DB, defaults map[string]string) *ScopeConfig {
	if defaults == nil {
		defaults = map[string]string{}
	}
	return &ScopeConfig{db: db, defaults: defaults}
}

// Value returns the configured value for path and whether one was found.
func (c *ScopeConfig) Value(ctx context.Context, path string) (string, bool, error) {
	var row models.ConfigValue
	err := c.db.WithContext(ctx).
		Where("scope = ? AND scope_id = ? AND path = ?", ScopeDefault, 0, path).
		First(&row).Error
	switch {
	case err == nil && row.Value != nil:
		return *row.Value, true, nil
	case err == nil, errors.Is(err, gorm.ErrRecordNotFound):
		value, ok := c.defaults[path]
		return value, ok, nil
	default:
		return "", false, fmt.Errorf("failed to read config %s: %w", path, err)
	}
}

// IsSetFlag reports whether path holds a truthy value.
func (c *ScopeConfig) IsSetFlag(ctx context.Context, path string) (bool, error) {
	value, ok, err := c.Value(ctx, path)
	if err != nil || !ok {
		return false, err
	}
	flag, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, nil
	}
	return flag, nil
}

func (c *ScopeConfig) Set(ctx context.Context, path, value string) error {
	row := models.ConfigValue{Scope: ScopeDefault, ScopeID: 0, Path: path, Value: &value}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "scope_id"}, {Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}
	return nil
}

// SyncEnabled reports the inventory sync enable flag.
func (c *ScopeConfig) SyncEnabled(ctx context.Context) (bool, error) {
	return c.IsSetFlag(ctx, PathSyncEnabled)
}

// FeedURL returns the configured inventory feed URL, empty when unset.
func (c *ScopeConfig) FeedURL(ctx context.Context) (string, error) {
	value, _, err := c.Value(ctx, PathSyncAPIURL)
	return strings.TrimSpace(value), err
}
