package roadmap

import (
	"errors"
	"testing"
	"time"
)

func chain(completed ...bool) []Task {
	tasks := make([]Task, len(completed))
	for i, c := range completed {
		tasks[i] = Task{ID: string(rune('a' + i)), Label: "t", Completed: c}
	}
	return tasks
}

func TestCompletionRatio(t *testing.T) {
	if got := CompletionRatio(nil); got != 0 {
		t.Fatalf("empty ratio=%v, want 0", got)
	}
	if got := CompletionRatio(chain(false, false, false, false)); got != 0 {
		t.Fatalf("ratio=%v, want 0", got)
	}
	if got := CompletionRatio(chain(true, false, false, false)); got != 25 {
		t.Fatalf("ratio=%v, want 25", got)
	}
	if got := CompletionRatio(chain(true, true, true, true)); got != 100 {
		t.Fatalf("ratio=%v, want 100", got)
	}
	got := CompletionRatio(chain(true, false, false))
	if got < 33.3 || got > 33.4 {
		t.Fatalf("ratio=%v, want ~33.33", got)
	}
}

func TestStateAtGating(t *testing.T) {
	// Exhaustive over list lengths 1..6: for every completed-prefix
	// arrangement, a task is locked iff some earlier task is incomplete.
	for n := 1; n <= 6; n++ {
		for mask := 0; mask < 1<<n; mask++ {
			tasks := make([]Task, n)
			for i := range tasks {
				tasks[i] = Task{ID: string(rune('a' + i)), Completed: mask&(1<<i) != 0}
			}
			for i := range tasks {
				anyEarlierIncomplete := false
				for k := 0; k < i; k++ {
					if !tasks[k].Completed {
						anyEarlierIncomplete = true
					}
				}
				got := StateAt(tasks, i)
				switch {
				case tasks[i].Completed:
					if got != StateCompleted {
						t.Fatalf("n=%d mask=%b i=%d: got %s, want completed", n, mask, i, got)
					}
				case anyEarlierIncomplete:
					if got != StateLocked {
						t.Fatalf("n=%d mask=%b i=%d: got %s, want locked", n, mask, i, got)
					}
				default:
					if got != StateActive {
						t.Fatalf("n=%d mask=%b i=%d: got %s, want active", n, mask, i, got)
					}
				}
			}
		}
	}
}

func TestStateAtOutOfRange(t *testing.T) {
	tasks := chain(true)
	if StateAt(tasks, -1) != StateLocked || StateAt(tasks, 1) != StateLocked {
		t.Fatalf("out-of-range index must report locked")
	}
}

func TestNextActive(t *testing.T) {
	if got := NextActive(chain(true, true, false, false)); got != 2 {
		t.Fatalf("NextActive=%d, want 2", got)
	}
	if got := NextActive(chain(true, true)); got != -1 {
		t.Fatalf("NextActive on done list=%d, want -1", got)
	}
	if got := NextActive(nil); got != -1 {
		t.Fatalf("NextActive on empty=%d, want -1", got)
	}
}

func TestToggleFlipsExactlyOne(t *testing.T) {
	tasks := chain(true, false, false)
	out, err := Toggle(tasks, "b")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !out[1].Completed {
		t.Fatalf("target not flipped")
	}
	if !out[0].Completed || out[2].Completed {
		t.Fatalf("other tasks disturbed: %+v", out)
	}
	if tasks[1].Completed {
		t.Fatalf("input mutated")
	}

	if _, err := Toggle(tasks, "zz"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestImportRejectsMissingTasks(t *testing.T) {
	for _, doc := range []string{
		`{}`,
		`{"title":"X"}`,
		`{"title":"X","tasks":[]}`,
		`{"title":"X","tasks":"nope"}`,
	} {
		if _, err := Import([]byte(doc), time.Now()); !errors.Is(err, ErrNoTasks) {
			t.Fatalf("Import(%s) err=%v, want ErrNoTasks", doc, err)
		}
	}
	if _, err := Import([]byte(`not json`), time.Now()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestImportMintsFreshIdentity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := `{"title":"Shared","description":"d","tasks":[{"id":"old-1","label":"A","completed":true},{"id":"old-2","label":"B"}]}`

	rm, err := Import([]byte(doc), now)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if rm.ID == "" || rm.Title != "Shared" || len(rm.Tasks) != 2 {
		t.Fatalf("bad import: %+v", rm)
	}
	if rm.Tasks[0].ID == "old-1" || rm.Tasks[1].ID == "old-2" {
		t.Fatalf("imported task ids were not reassigned")
	}
	if !rm.Tasks[0].Completed || rm.Tasks[1].Completed {
		t.Fatalf("completion flags lost")
	}
	if !rm.CreatedAt.Equal(now) {
		t.Fatalf("createdAt=%v, want %v", rm.CreatedAt, now)
	}
}

func TestImportDefaultsTitle(t *testing.T) {
	rm, err := Import([]byte(`{"tasks":[{"label":"A"}]}`), time.Now())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if rm.Title != "Imported Roadmap" {
		t.Fatalf("title=%q", rm.Title)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := Roadmap{
		ID:          "id-1",
		Title:       "Learn Go",
		Description: "desc",
		Tasks:       chain(true, true, false),
		CreatedAt:   time.Now(),
		LastActive:  time.Now(),
	}
	data, err := Export(src)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	back, err := Import(data, time.Now())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if back.Title != src.Title || len(back.Tasks) != len(src.Tasks) {
		t.Fatalf("round trip lost content: %+v", back)
	}
	for i := range back.Tasks {
		if back.Tasks[i].Completed != src.Tasks[i].Completed {
			t.Fatalf("task %d completion changed", i)
		}
	}
}
