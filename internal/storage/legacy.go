package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"skillbloom/internal/roadmap"
)

// legacyDoc is the pre-multi-roadmap on-disk shape: one roadmap, no id,
// no timestamps.
type legacyDoc struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tasks       []roadmap.Task `json:"tasks"`
}

// DefaultLegacyPath is where releases before the multi-roadmap garden kept
// their single roadmap.
func DefaultLegacyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".skill-bloom.json"), nil
}

// MigrateLegacy lifts a legacy single-roadmap file into the database:
// fresh id, stamped timestamps, marked active. The file is renamed aside
// afterwards, which is what makes the transform one-shot — running this on
// every startup never double-migrates. A missing file is a no-op; an
// unreadable one is set aside without touching current state.
func MigrateLegacy(ctx context.Context, db *sql.DB, legacyPath string, now time.Time) (migrated bool, err error) {
	data, err := os.ReadFile(legacyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read legacy file: %w", err)
	}

	var doc legacyDoc
	if err := json.Unmarshal(data, &doc); err != nil || len(doc.Tasks) == 0 {
		// Corrupt legacy data: recover to the fresh default rather than
		// failing startup, but move the file so we stop retrying.
		_ = os.Rename(legacyPath, legacyPath+".corrupt")
		return false, nil
	}

	rm := roadmap.Roadmap{
		ID:          uuid.NewString(),
		Title:       doc.Title,
		Description: doc.Description,
		Tasks:       doc.Tasks,
		CreatedAt:   now,
		LastActive:  now,
	}
	if rm.Title == "" {
		rm.Title = "My Skill"
	}
	for i := range rm.Tasks {
		if rm.Tasks[i].ID == "" {
			rm.Tasks[i].ID = uuid.NewString()
		}
	}

	if err := NewRoadmapRepo(db).Insert(ctx, rm); err != nil {
		return false, err
	}
	if err := NewUserRepo(db).SetActiveRoadmapID(ctx, rm.ID); err != nil {
		return false, err
	}

	if err := os.Rename(legacyPath, legacyPath+".migrated"); err != nil {
		return true, fmt.Errorf("retire legacy file: %w", err)
	}
	return true, nil
}
