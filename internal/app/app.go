package app

import (
	"fmt"
	"strconv"

	"inventorysync/internal/cache"
	"inventorysync/internal/config"
	"inventorysync/internal/database"
	"inventorysync/internal/feed"
	"inventorysync/internal/indexer"
	"inventorysync/internal/logger"
	"inventorysync/internal/store"
	"inventorysync/internal/reconcile"

	"github.com/go-redis/redis/v8"
)

// App holds the collaborators shared by the api, the worker and the cli.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Database *database.Database

	Settings    *store.ScopeConfig
	Products    *store.ProductRepository
	Categories  *store.CategoryRepository
	SourceItems *store.SourceItemRepository

	Registry  *indexer.Registry
	Refresher *reconcile.IndexRefresher
	Sync      *reconcile.Orchestrator

	// Cache is nil when no redis url is configured.
	Cache      *cache.Cache
	IndexerIDs []string

	redis *redis.Client
}

func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	db, err := database.New(cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Logger:   log,
		Database: db,
		Settings: store.NewScopeConfig(db.DB, map[string]string{
			store.PathSyncEnabled: strconv.FormatBool(cfg.SyncEnabled),
			store.PathSyncAPIURL:  cfg.SyncAPIURL,
		}),
		Products:    store.NewProductRepository(db.DB),
		Categories:  store.NewCategoryRepository(db.DB),
		SourceItems: store.NewSourceItemRepository(db.DB),
		Registry:    indexer.NewRegistry(db.DB, log.With("component", "indexer")),
		IndexerIDs:  append([]string(nil), cfg.IndexerIDs...),
	}
	indexer.RegisterDefaults(a.Registry, cfg.StoreID)

	if cfg.RedisURL != "" {
		client, err := cache.Connect(cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = client
		a.Cache = cache.New(client, cache.DefaultTTL, log.With("component", "cache"))
		a.Registry.Register(indexer.NewStorefrontIndexer(a.Cache))
		a.IndexerIDs = append(a.IndexerIDs, indexer.StorefrontCacheID)
	}

	syncLogger := log.With("component", "sync")
	a.Refresher = reconcile.NewIndexRefresher(a.Registry, syncLogger)
	a.Sync = reconcile.NewOrchestrator(reconcile.Dependencies{
		Settings:   a.Settings,
		Fetcher:    feed.NewClient(cfg.FeedTimeout, syncLogger),
		Products:   a.Products,
		Categories: a.Categories,
		Stock:      a.SourceItems,
		Indexes:    a.Registry,
		IndexerIDs: a.IndexerIDs,
		StoreID:    cfg.StoreID,
		Logger:     syncLogger,
	})

	return a, nil
}

func (a *App) Close() error {
	if a.redis != nil {
		a.redis.Close()
	}
	return a.Database.Close()
}
