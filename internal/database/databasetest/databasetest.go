// Package databasetest opens throwaway databases for tests.
package databasetest

import (
	"fmt"
	"strings"
	"testing"

	"inventorysync/internal/database"
)

// URL is the shared in-memory sqlite URL for the running test. Every
// connection opened with it sees the same data while one stays open.
func URL(t testing.TB) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", name)
}

// New opens a migrated, isolated in-memory sqlite database that is closed
// when the test ends.
func New(t testing.TB) *database.Database {
	t.Helper()

	db, err := database.New(URL(t), "error")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
