package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Session indexes for suggestion queries and project listings
		{"sessions", "idx_sessions_project_id", "project_id"},
		{"sessions", "idx_sessions_host_id", "host_id"},
		{"sessions", "idx_sessions_schedule_time", "schedule_time"},
		{"sessions", "idx_sessions_stack", "stack"},

		// User indexes for candidate filtering
		{"users", "idx_users_stack", "stack"},
		{"users", "idx_users_level_id", "level_id"},

		// Project indexes
		{"projects", "idx_projects_owner_id", "owner_id"},

		// Join table lookups
		{"session_participants", "idx_session_participants_user_id", "user_id"},
		{"interested_participants", "idx_interested_participants_user_id", "user_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
