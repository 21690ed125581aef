// Package testutil opens throwaway in-memory databases for tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"avenstudio/internal/database"
	"avenstudio/internal/store"
)

// NewTestDB returns a migrated and seeded in-memory SQLite database that is
// closed when t finishes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:aven_%s?mode=memory&cache=shared", name)

	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := store.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// NewTestStore wraps NewTestDB in a record store.
func NewTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	return store.New(NewTestDB(t), opts...)
}
