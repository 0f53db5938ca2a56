package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainUserKey = "main_user"

// UserRepo owns the singleton user_data row: which roadmap is active.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ActiveRoadmapID returns the active roadmap id, or "" when none is set.
func (r *UserRepo) ActiveRoadmapID(ctx context.Context) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT active_roadmap_id FROM user_data WHERE key = ?`, MainUserKey)

	var id sql.NullString
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("user get: %w", err)
	}
	return id.String, nil
}

// SetActiveRoadmapID sets (or clears, with "") the active roadmap.
func (r *UserRepo) SetActiveRoadmapID(ctx context.Context, id string) error {
	var val any
	if id != "" {
		val = id
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_data (key, active_roadmap_id) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET active_roadmap_id = excluded.active_roadmap_id
	`, MainUserKey, val)
	if err != nil {
		return fmt.Errorf("user set active: %w", err)
	}
	return nil
}
