package reconcile

import (
	"context"

	"inventorysync/internal/logger"
	"inventorysync/internal/models"
)

// CategoryResolver maps a feed category name to a local category id,
// creating the category under the root on first sight.
type CategoryResolver struct {
	store   CategoryStore
	storeID int
	rootID  string
	logger  *logger.Logger
}

func NewCategoryResolver(store CategoryStore, storeID int, rootID string, logger *logger.Logger) *CategoryResolver {
	if rootID == "" {
		rootID = models.RootCategoryID
	}
	return &CategoryResolver{
		store:   store,
		storeID: storeID,
		rootID:  rootID,
		logger:  logger,
	}
}

// Resolve returns the id of the category named name. Existing categories are
// never modified.
func (r *CategoryResolver) Resolve(ctx context.Context, name string) (string, error) {
	category, created, err := r.store.GetOrCreateByName(ctx, name, func() *models.Category {
		return r.build(name)
	})
	if err != nil {
		return "", &CategoryError{Name: name, Err: err}
	}

	if created {
		r.logger.Info("Category created: %s", name)
	}
	return category.ID, nil
}

func (r *CategoryResolver) build(name string) *models.Category {
	parentID := r.rootID
	return &models.Category{
		Name:            name,
		IsActive:        true,
		ParentID:        &parentID,
		IsAnchor:        true,
		IncludeInMenu:   true,
		StoreID:         r.storeID,
		URLKey:          models.URLKeyFor(name),
		MetaTitle:       name,
		MetaDescription: name,
	}
}
