package database_test

import (
	"testing"

	"inventorysync/internal/database"
	"inventorysync/internal/database/databasetest"
	"inventorysync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsRootCategory(t *testing.T) {
	db := databasetest.New(t)

	var root models.Category
	require.NoError(t, db.DB.First(&root, "id = ?", models.RootCategoryID).Error)
	assert.Equal(t, models.RootCategoryName, root.Name)
	assert.Nil(t, root.ParentID)
	assert.True(t, root.IsActive)
}

func TestNewMigratesTables(t *testing.T) {
	db := databasetest.New(t)

	for _, table := range database.Tables() {
		assert.True(t, db.DB.Migrator().HasTable(table), "missing table for %T", table)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := databasetest.New(t)

	// A second open of the same shared in-memory database must not duplicate the root.
	again, err := database.New(databasetest.URL(t), "error")
	require.NoError(t, err)
	defer again.Close()

	var count int64
	require.NoError(t, db.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
