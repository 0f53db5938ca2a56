package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_data (
			key TEXT PRIMARY KEY,
			active_roadmap_id TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS roadmaps (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_active DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Task order is the prerequisite order; position is authoritative.
		`CREATE TABLE IF NOT EXISTS roadmap_tasks (
			roadmap_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			label TEXT NOT NULL,
			description TEXT,
			search_query TEXT,
			completed INTEGER DEFAULT 0,

			PRIMARY KEY(roadmap_id, position),
			FOREIGN KEY(roadmap_id) REFERENCES roadmaps(id)
		);`,
		`CREATE TABLE IF NOT EXISTS gamification (
			key TEXT PRIMARY KEY,
			total_xp INTEGER DEFAULT 0,
			streak_days INTEGER DEFAULT 0,
			last_active_date TEXT DEFAULT '',
			total_completed INTEGER DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_roadmap_tasks_roadmap_id ON roadmap_tasks(roadmap_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
