package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"skillbloom/internal/generate"
	"skillbloom/internal/roadmap"
	"skillbloom/internal/storage"
)

func newTestService(t *testing.T, now func() time.Time) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if now == nil {
		now = time.Now
	}
	svc := NewServiceWithClock(db, now)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func plantRoadmap(t *testing.T, svc *Service, title string, labels ...string) *roadmap.Roadmap {
	t.Helper()
	ctx := context.Background()

	p := &generate.Payload{Title: title, Description: "test roadmap"}
	for _, l := range labels {
		p.Tasks = append(p.Tasks, generate.TaskSpec{Label: l})
	}
	rm, err := svc.CreateFromGeneration(ctx, p)
	if err != nil {
		t.Fatalf("CreateFromGeneration: %v", err)
	}
	return rm
}

func TestCreateFromGenerationSetsActive(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	rm := plantRoadmap(t, svc, "Learn Go", "A", "B", "C")
	if rm.ID == "" {
		t.Fatalf("no id minted")
	}
	for _, task := range rm.Tasks {
		if task.ID == "" {
			t.Fatalf("task without id: %+v", task)
		}
		if task.Completed {
			t.Fatalf("new task already completed")
		}
	}

	active, err := svc.ActiveRoadmap(ctx)
	if err != nil {
		t.Fatalf("ActiveRoadmap: %v", err)
	}
	if active == nil || active.ID != rm.ID {
		t.Fatalf("new roadmap is not active")
	}
}

func TestToggleTaskGating(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	rm := plantRoadmap(t, svc, "Learn Go", "A", "B", "C")

	// Completing the second task while the first is open must fail.
	_, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[1].ID)
	var locked LockedTaskError
	if !errors.As(err, &locked) {
		t.Fatalf("err=%v, want LockedTaskError", err)
	}

	// Nothing may have been committed.
	fresh, err := svc.RoadmapRepo().Get(ctx, rm.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for _, task := range fresh.Tasks {
		if task.Completed {
			t.Fatalf("rejected toggle persisted: %+v", task)
		}
	}
	state, err := svc.GamificationState(ctx)
	if err != nil {
		t.Fatalf("GamificationState: %v", err)
	}
	if state.TotalXP != 0 {
		t.Fatalf("rejected toggle awarded XP: %+v", state)
	}

	// In order works.
	res, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[0].ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if !res.NowCompleted || res.Reward == nil || res.Reward.EarnedXP != 25 {
		t.Fatalf("result: %+v", res)
	}
	if res.Ratio < 33.3 || res.Ratio > 33.4 {
		t.Fatalf("ratio=%v", res.Ratio)
	}

	if _, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[1].ID); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
}

func TestToggleTaskUncompleteRules(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	rm := plantRoadmap(t, svc, "Learn Go", "A", "B")
	if _, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[0].ID); err != nil {
		t.Fatalf("complete A: %v", err)
	}
	if _, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[1].ID); err != nil {
		t.Fatalf("complete B: %v", err)
	}

	// A cannot be unchecked while B depends on it.
	_, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[0].ID)
	var locked LockedTaskError
	if !errors.As(err, &locked) {
		t.Fatalf("err=%v, want LockedTaskError", err)
	}

	// The last completed task can be unchecked, and awards nothing.
	state, err := svc.GamificationState(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	xpBefore := state.TotalXP

	res, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[1].ID)
	if err != nil {
		t.Fatalf("uncheck B: %v", err)
	}
	if res.NowCompleted || res.Reward != nil {
		t.Fatalf("uncheck result: %+v", res)
	}

	state, err = svc.GamificationState(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.TotalXP != xpBefore {
		t.Fatalf("uncheck changed XP: %d → %d", xpBefore, state.TotalXP)
	}
}

func TestToggleTaskStreakAcrossDays(t *testing.T) {
	current := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, cleanup := newTestService(t, func() time.Time { return current })
	defer cleanup()
	ctx := context.Background()

	rm := plantRoadmap(t, svc, "Learn Go", "A", "B", "C")

	if _, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[0].ID); err != nil {
		t.Fatalf("day 1: %v", err)
	}

	current = current.AddDate(0, 0, 1)
	res, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[1].ID)
	if err != nil {
		t.Fatalf("day 2: %v", err)
	}
	if res.Reward.EarnedXP != 35 || res.Reward.StreakDays != 2 {
		t.Fatalf("day 2 reward: %+v", res.Reward)
	}

	// A skipped day decays the streak on the next load.
	current = current.AddDate(0, 0, 2)
	state, err := svc.GamificationState(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.StreakDays != 0 {
		t.Fatalf("streak survived the gap: %+v", state)
	}
	if state.TotalXP != 60 {
		t.Fatalf("decay touched XP: %+v", state)
	}
}

func TestDeleteRoadmapReassignsActive(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	first := plantRoadmap(t, svc, "First", "A")
	second := plantRoadmap(t, svc, "Second", "A")

	// Second is now active; deleting it must fall back to the survivor.
	if err := svc.DeleteRoadmap(ctx, second.ID); err != nil {
		t.Fatalf("DeleteRoadmap: %v", err)
	}
	active, err := svc.ActiveRoadmap(ctx)
	if err != nil {
		t.Fatalf("ActiveRoadmap: %v", err)
	}
	if active == nil || active.ID != first.ID {
		t.Fatalf("active not reassigned: %+v", active)
	}

	// Deleting the last roadmap clears the active id.
	if err := svc.DeleteRoadmap(ctx, first.ID); err != nil {
		t.Fatalf("DeleteRoadmap: %v", err)
	}
	active, err = svc.ActiveRoadmap(ctx)
	if err != nil {
		t.Fatalf("ActiveRoadmap: %v", err)
	}
	if active != nil {
		t.Fatalf("active id not cleared: %+v", active)
	}

	var notFound NotFoundError
	if err := svc.DeleteRoadmap(ctx, first.ID); !errors.As(err, &notFound) {
		t.Fatalf("double delete err=%v, want NotFoundError", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	rm := plantRoadmap(t, svc, "Learn Go", "A", "B")
	if _, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[0].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	data, err := svc.ExportRoadmap(ctx, rm.ID)
	if err != nil {
		t.Fatalf("ExportRoadmap: %v", err)
	}

	imported, err := svc.ImportRoadmap(ctx, data)
	if err != nil {
		t.Fatalf("ImportRoadmap: %v", err)
	}
	if imported.ID == rm.ID {
		t.Fatalf("import reused the source id")
	}
	if len(imported.Tasks) != 2 || !imported.Tasks[0].Completed || imported.Tasks[1].Completed {
		t.Fatalf("import lost task state: %+v", imported.Tasks)
	}

	active, err := svc.ActiveRoadmap(ctx)
	if err != nil {
		t.Fatalf("ActiveRoadmap: %v", err)
	}
	if active.ID != imported.ID {
		t.Fatalf("import did not become active")
	}
}

func TestImportRejectsBadDocumentWithoutSideEffects(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.ImportRoadmap(ctx, []byte(`{"title":"X","tasks":[]}`)); !errors.Is(err, roadmap.ErrNoTasks) {
		t.Fatalf("err=%v, want ErrNoTasks", err)
	}
	all, err := svc.RoadmapRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected import persisted: %d roadmaps", len(all))
	}
}

func TestSceneForStability(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	rm := plantRoadmap(t, svc, "Learn React", "A", "B")

	a, err := svc.SceneFor(ctx, rm.ID)
	if err != nil {
		t.Fatalf("SceneFor: %v", err)
	}
	b, err := svc.SceneFor(ctx, rm.ID)
	if err != nil {
		t.Fatalf("SceneFor: %v", err)
	}
	if a.Descriptor.Variant != "oak" {
		t.Fatalf("variant=%s, want oak", a.Descriptor.Variant)
	}
	if a.Stage.Index != b.Stage.Index || a.Scene.ElementCount() != b.Scene.ElementCount() {
		t.Fatalf("scene flapped between loads")
	}

	if _, err := svc.ToggleTask(ctx, rm.ID, rm.Tasks[0].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	c, err := svc.SceneFor(ctx, rm.ID)
	if err != nil {
		t.Fatalf("SceneFor: %v", err)
	}
	if c.Ratio != 50 {
		t.Fatalf("ratio=%v, want 50", c.Ratio)
	}
}

func TestLegacyMigrationOneShot(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	dir := t.TempDir()
	legacy := filepath.Join(dir, "legacy.json")
	doc := `{"title":"Old Skill","description":"from v1","tasks":[{"id":"1","label":"A","completed":true},{"id":"2","label":"B"}]}`
	if err := os.WriteFile(legacy, []byte(doc), 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	db := svc.RoadmapRepo()
	migrated, err := storage.MigrateLegacy(ctx, svc.db, legacy, time.Now())
	if err != nil {
		t.Fatalf("MigrateLegacy: %v", err)
	}
	if !migrated {
		t.Fatalf("nothing migrated")
	}

	all, err := db.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].Title != "Old Skill" || !all[0].Tasks[0].Completed {
		t.Fatalf("bad migration: %+v", all)
	}

	// The legacy file was renamed aside, so a second run is a no-op.
	if _, err := os.Stat(legacy); !os.IsNotExist(err) {
		t.Fatalf("legacy file still present")
	}
	migrated, err = storage.MigrateLegacy(ctx, svc.db, legacy, time.Now())
	if err != nil || migrated {
		t.Fatalf("second run migrated=%v err=%v", migrated, err)
	}

	all, err = db.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("double migration: %d roadmaps", len(all))
	}
}

func TestLegacyMigrationCorruptFile(t *testing.T) {
	svc, cleanup := newTestService(t, nil)
	defer cleanup()
	ctx := context.Background()

	dir := t.TempDir()
	legacy := filepath.Join(dir, "legacy.json")
	if err := os.WriteFile(legacy, []byte(`{broken`), 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	migrated, err := storage.MigrateLegacy(ctx, svc.db, legacy, time.Now())
	if err != nil {
		t.Fatalf("MigrateLegacy: %v", err)
	}
	if migrated {
		t.Fatalf("corrupt file reported as migrated")
	}
	if _, err := os.Stat(legacy + ".corrupt"); err != nil {
		t.Fatalf("corrupt file not set aside: %v", err)
	}

	all, err := svc.RoadmapRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("corrupt migration created roadmaps")
	}
}
