package database

import (
	"fmt"
	"strings"

	"inventorysync/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

// Tables returns every model the service migrates, in dependency order.
func Tables() []interface{} {
	return []interface{}{
		&models.Category{},
		&models.Product{},
		&models.ProductCategory{},
		&models.SourceItem{},
		&models.ConfigValue{},
		&models.IndexerState{},
		&models.StockStatus{},
		&models.CategoryProductIndex{},
		&models.PriceIndex{},
		&models.AttributeIndex{},
		&models.SearchIndex{},
	}
}

func New(databaseURL, logLevel string) (*Database, error) {
	var db *gorm.DB
	var err error

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogMode(logLevel)),
		TranslateError: true,
	}

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development and tests
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), gormConfig)
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if strings.HasPrefix(databaseURL, "sqlite://") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		// sqlite allows a single writer; in-memory databases vanish with their last connection
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Tables()...); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	if err := seedRootCategory(db); err != nil {
		return nil, fmt.Errorf("failed to seed root category: %w", err)
	}

	return &Database{DB: db}, nil
}

func seedRootCategory(db *gorm.DB) error {
	root := models.Category{
		ID:            models.RootCategoryID,
		Name:          models.RootCategoryName,
		IsActive:      true,
		IsAnchor:      true,
		IncludeInMenu: true,
		URLKey:        models.URLKeyFor(models.RootCategoryName),
	}
	return db.Where(models.Category{ID: models.RootCategoryID}).FirstOrCreate(&root).Error
}

func gormLogMode(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "warn", "warning":
		return logger.Warn
	default:
		return logger.Silent
	}
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
