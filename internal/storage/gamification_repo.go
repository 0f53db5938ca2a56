package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// GamificationRecord mirrors the singleton gamification row. Value repair
// (negative XP, stale streaks) is the engine's job, not the store's.
type GamificationRecord struct {
	TotalXP        int
	StreakDays     int
	LastActiveDate string
	TotalCompleted int
}

// GamificationRepo owns the singleton gamification row.
type GamificationRepo struct {
	db *sql.DB
}

func NewGamificationRepo(db *sql.DB) *GamificationRepo {
	return &GamificationRepo{db: db}
}

// Get loads the persisted gamification record. A missing row is a fresh
// zero record, not an error.
func (r *GamificationRepo) Get(ctx context.Context) (GamificationRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT total_xp, streak_days, last_active_date, total_completed
		FROM gamification WHERE key = ?
	`, MainUserKey)

	var rec GamificationRecord
	var lastActive sql.NullString
	if err := row.Scan(&rec.TotalXP, &rec.StreakDays, &lastActive, &rec.TotalCompleted); err != nil {
		if err == sql.ErrNoRows {
			return GamificationRecord{}, nil
		}
		return GamificationRecord{}, fmt.Errorf("gamification get: %w", err)
	}
	rec.LastActiveDate = lastActive.String
	return rec, nil
}

// Put stores the whole record.
func (r *GamificationRepo) Put(ctx context.Context, rec GamificationRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gamification (key, total_xp, streak_days, last_active_date, total_completed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			total_xp = excluded.total_xp,
			streak_days = excluded.streak_days,
			last_active_date = excluded.last_active_date,
			total_completed = excluded.total_completed
	`, MainUserKey, rec.TotalXP, rec.StreakDays, rec.LastActiveDate, rec.TotalCompleted)
	if err != nil {
		return fmt.Errorf("gamification put: %w", err)
	}
	return nil
}
