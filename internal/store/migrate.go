package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Migrate creates every declared table that does not exist yet and seeds the
// default project and category set. It is safe to run on every start.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	for _, t := range tables {
		if err := db.Exec(t.ddl()).Error; err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}
	return seed(db, time.Now())
}

func seed(db *gorm.DB, now time.Time) error {
	stamp := FormatTime(now)

	err := db.Exec(
		`INSERT INTO "projects" ("id", "name", "project_type", "status", "description", "created_at", "updated_at")
		 VALUES (?, ?, 'self-build', 'planning', '', ?, ?) ON CONFLICT DO NOTHING`,
		DefaultProjectID, DefaultProjectName, stamp, stamp,
	).Error
	if err != nil {
		return fmt.Errorf("seed default project: %w", err)
	}

	for _, name := range DefaultCategories {
		err := db.Exec(
			`INSERT INTO "categories" ("name", "created_at") VALUES (?, ?) ON CONFLICT DO NOTHING`,
			name, stamp,
		).Error
		if err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}
	return nil
}
