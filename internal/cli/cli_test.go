package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inventorysync/internal/app"
	"inventorysync/internal/config"
	"inventorysync/internal/database"
	"inventorysync/internal/database/databasetest"
	"inventorysync/internal/logger"
	"inventorysync/internal/models"
	"inventorysync/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLoader returns a loader over a shared in-memory database that outlives
// each command, plus a handle to inspect it.
func testLoader(t *testing.T, cfg config.Config) (Loader, *database.Database) {
	t.Helper()
	keeper := databasetest.New(t)

	cfg.DatabaseURL = databasetest.URL(t)
	cfg.LogLevel = "error"
	cfg.StoreID = 1
	if cfg.IndexerIDs == nil {
		cfg.IndexerIDs = config.DefaultIndexerIDs
	}

	return func() (*app.App, error) {
		c := cfg
		return app.New(&c, logger.NewWithWriter("error", "json", io.Discard))
	}, keeper
}

func run(t *testing.T, load Loader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(load)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSyncExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"sku":"A1","title":"Widget","price":9.99,"stock":5,"category":"Tools"}]}`))
	}))
	defer server.Close()

	load, db := testLoader(t, config.Config{SyncEnabled: true, SyncAPIURL: server.URL})

	out, err := run(t, load, "sync:execute")
	require.NoError(t, err)
	assert.Contains(t, out, "Updating inventory...")
	assert.Contains(t, out, "Inventory sync completed successfully.")
	assert.Contains(t, out, "1 created, 0 updated, 0 failed")

	product, err := store.NewProductRepository(db.DB).FindBySKU(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)
}

func TestSyncExecuteDisabledStillSucceeds(t *testing.T) {
	load, _ := testLoader(t, config.Config{})

	out, err := run(t, load, "sync:execute")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory sync skipped: sync failed while gating: sync is disabled")
}

func TestSyncExecuteFeedFailureStillSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	load, _ := testLoader(t, config.Config{SyncEnabled: true, SyncAPIURL: server.URL})

	out, err := run(t, load, "sync:execute")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory sync failed:")
}

func TestConfigSetEnablesSync(t *testing.T) {
	load, db := testLoader(t, config.Config{})

	out, err := run(t, load, "config:set", store.PathSyncEnabled, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+store.PathSyncEnabled)

	enabled, err := store.NewScopeConfig(db.DB, nil).SyncEnabled(context.Background())
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = run(t, load, "config:set", store.PathSyncEnabled)
	assert.Error(t, err)
}

func TestIndexerSetModeAndStatus(t *testing.T) {
	load, db := testLoader(t, config.Config{})

	_, err := run(t, load, "indexer:set-mode", "schedule", "inventory")
	require.NoError(t, err)

	var state models.IndexerState
	require.NoError(t, db.DB.First(&state, "indexer_id = ?", "inventory").Error)
	assert.Equal(t, models.IndexerModeSchedule, state.Mode)

	out, err := run(t, load, "indexer:status")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "catalogsearch_fulltext")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "inventory ") {
			assert.Contains(t, line, "schedule")
		}
	}
}

func TestIndexerSetModeRejectsUnknown(t *testing.T) {
	load, _ := testLoader(t, config.Config{})

	_, err := run(t, load, "indexer:set-mode", "sometimes")
	assert.ErrorContains(t, err, "invalid mode")

	_, err = run(t, load, "indexer:set-mode", "schedule", "nope")
	assert.Error(t, err)
}

func TestIndexerReindex(t *testing.T) {
	load, _ := testLoader(t, config.Config{})

	out, err := run(t, load, "indexer:reindex", "inventory", "catalogsearch_fulltext")
	require.NoError(t, err)
	assert.Contains(t, out, "Reindexed: inventory")
	assert.Contains(t, out, "Reindexed: catalogsearch_fulltext")

	out, err = run(t, load, "indexer:reindex", "nope")
	assert.Error(t, err)
	assert.Contains(t, out, "Error reindexing nope")
}
