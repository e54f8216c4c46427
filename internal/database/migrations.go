package database

import (
	"fmt"

	"github.com/yukikurage/resource-management-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the tables and the composite indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Assignment{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}

// AddIndexes adds the composite indexes used by capacity and list queries.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		table   string
		name    string
		columns string
	}{
		// Capacity sums filter by engineer and optionally by date
		{&models.Assignment{}, "assignments", "idx_assignments_engineer_start", "engineer_id, start_date"},
		{&models.Assignment{}, "assignments", "idx_assignments_project_start", "project_id, start_date"},
		{&models.Project{}, "projects", "idx_projects_created_at", "created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
