package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"INVENTORY_SYNC_ENABLED", "INVENTORY_SYNC_API_URL", "STORE_ID", "SYNC_INTERVAL", "INDEXER_IDS", "REDIS_URL", "FEED_TIMEOUT", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.SyncEnabled)
	assert.Empty(t, cfg.SyncAPIURL)
	assert.Equal(t, 1, cfg.StoreID)
	assert.Equal(t, time.Hour, cfg.SyncInterval)
	assert.Equal(t, DefaultIndexerIDs, cfg.IndexerIDs)
	assert.Empty(t, cfg.RedisURL)
	assert.Zero(t, cfg.FeedTimeout)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INVENTORY_SYNC_ENABLED", "true")
	t.Setenv("INVENTORY_SYNC_API_URL", "https://feed.example.com/products")
	t.Setenv("STORE_ID", "3")
	t.Setenv("SYNC_INTERVAL", "15m")
	t.Setenv("INDEXER_IDS", "inventory, catalogsearch_fulltext ,")
	t.Setenv("FEED_TIMEOUT", "45s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.SyncEnabled)
	assert.Equal(t, "https://feed.example.com/products", cfg.SyncAPIURL)
	assert.Equal(t, 3, cfg.StoreID)
	assert.Equal(t, 15*time.Minute, cfg.SyncInterval)
	assert.Equal(t, []string{"inventory", "catalogsearch_fulltext"}, cfg.IndexerIDs)
	assert.Equal(t, 45*time.Second, cfg.FeedTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("STORE_ID", "abc")
	t.Setenv("INVENTORY_SYNC_ENABLED", "maybe")
	t.Setenv("FEED_TIMEOUT", "soon")

	assert.Equal(t, 1, getEnvAsInt("STORE_ID", 1))
	assert.False(t, getEnvAsBool("INVENTORY_SYNC_ENABLED", false))
	assert.Equal(t, 30*time.Second, getEnvAsDuration("FEED_TIMEOUT", 30*time.Second))
}
