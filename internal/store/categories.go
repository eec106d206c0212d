package store

import (
	"context"
	"errors"
	"fmt"

	"inventorysync/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch category %s: %w", id, err)
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at").First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch category %q: %w", name, err)
	}
	return &category, nil
}

// GetOrCreateByName returns the category named name, creating it from build
// when none exists. Lookup and insert share a transaction and the unique
// name index settles concurrent creators: the loser re-reads the winner's row.
// Existing categories are returned untouched.
func (r *CategoryRepository) GetOrCreateByName(ctx context.Context, name string, build func() *models.Category) (*models.Category, bool, error) {
	var category models.Category
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).Order("created_at").First(&category).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		category = *build()
		category.Name = name
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		created = true
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, findErr := r.FindByName(ctx, name)
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to save category %q: %w", name, err)
	}
	return &category, created, nil
}
