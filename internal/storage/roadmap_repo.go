package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"skillbloom/internal/roadmap"
)

type RoadmapRepo struct {
	db *sql.DB
}

func NewRoadmapRepo(db *sql.DB) *RoadmapRepo {
	return &RoadmapRepo{db: db}
}

// Insert stores a roadmap and its ordered tasks atomically.
func (r *RoadmapRepo) Insert(ctx context.Context, rm roadmap.Roadmap) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO roadmaps (id, title, description, created_at, last_active)
			VALUES (?, ?, ?, ?, ?)
		`, rm.ID, rm.Title, rm.Description, rm.CreatedAt, rm.LastActive); err != nil {
			return fmt.Errorf("roadmap insert: %w", err)
		}
		for i, t := range rm.Tasks {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO roadmap_tasks (roadmap_id, position, id, label, description, search_query, completed)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, rm.ID, i, t.ID, t.Label, t.Description, t.SearchQuery, boolToInt(t.Completed)); err != nil {
				return fmt.Errorf("roadmap task insert: %w", err)
			}
		}
		return nil
	})
}

// Get loads one roadmap with its tasks in order, or nil when absent.
func (r *RoadmapRepo) Get(ctx context.Context, id string) (*roadmap.Roadmap, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, created_at, last_active
		FROM roadmaps WHERE id = ?
	`, id)

	var rm roadmap.Roadmap
	var desc sql.NullString
	if err := row.Scan(&rm.ID, &rm.Title, &desc, &rm.CreatedAt, &rm.LastActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("roadmap get: %w", err)
	}
	rm.Description = desc.String

	tasks, err := r.tasksFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rm.Tasks = tasks
	return &rm, nil
}

// ListAll returns every roadmap, most recently active first.
func (r *RoadmapRepo) ListAll(ctx context.Context) ([]roadmap.Roadmap, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, created_at, last_active
		FROM roadmaps
		ORDER BY last_active DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("roadmap list: %w", err)
	}
	defer rows.Close()

	var out []roadmap.Roadmap
	for rows.Next() {
		var rm roadmap.Roadmap
		var desc sql.NullString
		if err := rows.Scan(&rm.ID, &rm.Title, &desc, &rm.CreatedAt, &rm.LastActive); err != nil {
			return nil, fmt.Errorf("roadmap scan: %w", err)
		}
		rm.Description = desc.String
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roadmap list rows: %w", err)
	}

	for i := range out {
		tasks, err := r.tasksFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Tasks = tasks
	}
	return out, nil
}

// ReplaceTasks rewrites the full task list for a roadmap and bumps its
// last_active stamp. Whole-document replacement keeps each toggle atomic.
func (r *RoadmapRepo) ReplaceTasks(ctx context.Context, id string, tasks []roadmap.Task, lastActive time.Time) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM roadmap_tasks WHERE roadmap_id = ?`, id); err != nil {
			return fmt.Errorf("roadmap tasks clear: %w", err)
		}
		for i, t := range tasks {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO roadmap_tasks (roadmap_id, position, id, label, description, search_query, completed)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, id, i, t.ID, t.Label, t.Description, t.SearchQuery, boolToInt(t.Completed)); err != nil {
				return fmt.Errorf("roadmap task rewrite: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE roadmaps SET last_active = ? WHERE id = ?`, lastActive, id); err != nil {
			return fmt.Errorf("roadmap touch: %w", err)
		}
		return nil
	})
}

// Delete removes a roadmap and its tasks.
func (r *RoadmapRepo) Delete(ctx context.Context, id string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM roadmap_tasks WHERE roadmap_id = ?`, id); err != nil {
			return fmt.Errorf("roadmap tasks delete: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM roadmaps WHERE id = ?`, id); err != nil {
			return fmt.Errorf("roadmap delete: %w", err)
		}
		return nil
	})
}

// IDs returns every roadmap id, most recently active first.
func (r *RoadmapRepo) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM roadmaps ORDER BY last_active DESC`)
	if err != nil {
		return nil, fmt.Errorf("roadmap ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("roadmap id scan: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roadmap ids rows: %w", err)
	}
	return out, nil
}

func (r *RoadmapRepo) tasksFor(ctx context.Context, roadmapID string) ([]roadmap.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, label, description, search_query, completed
		FROM roadmap_tasks
		WHERE roadmap_id = ?
		ORDER BY position ASC
	`, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("roadmap tasks: %w", err)
	}
	defer rows.Close()

	var out []roadmap.Task
	for rows.Next() {
		var t roadmap.Task
		var desc, query sql.NullString
		var completed int
		if err := rows.Scan(&t.ID, &t.Label, &desc, &query, &completed); err != nil {
			return nil, fmt.Errorf("roadmap task scan: %w", err)
		}
		t.Description = desc.String
		t.SearchQuery = query.String
		t.Completed = completed != 0
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roadmap tasks rows: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
