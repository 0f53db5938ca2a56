package engine

import (
	"testing"
	"time"
)

var day = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestLevelCurve(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{-50, 1},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Fatalf("LevelForXP(%d)=%d, want %d", c.xp, got, c.want)
		}
	}

	for lvl := 1; lvl <= 10; lvl++ {
		at := XPForLevel(lvl)
		if got := LevelForXP(at); got != lvl {
			t.Fatalf("LevelForXP(XPForLevel(%d))=%d", lvl, got)
		}
		if lvl > 1 {
			if got := LevelForXP(at - 1); got != lvl-1 {
				t.Fatalf("LevelForXP(%d)=%d, want %d", at-1, got, lvl-1)
			}
		}
	}
}

func TestRecordStreakProgression(t *testing.T) {
	// Day D: first completion ever.
	s1, r1 := Record(State{}, day)
	if r1.EarnedXP != 25 || r1.StreakBonus != 0 || r1.StreakDays != 1 {
		t.Fatalf("day D reward: %+v", r1)
	}
	if s1.TotalXP != 25 || s1.StreakDays != 1 || s1.TotalCompleted != 1 {
		t.Fatalf("day D state: %+v", s1)
	}

	// Day D+1: streak extends, bonus kicks in.
	s2, r2 := Record(s1, day.AddDate(0, 0, 1))
	if r2.EarnedXP != 35 || r2.StreakBonus != 10 || r2.StreakDays != 2 {
		t.Fatalf("day D+1 reward: %+v", r2)
	}
	if s2.TotalXP != 60 {
		t.Fatalf("day D+1 total=%d, want 60", s2.TotalXP)
	}

	// Later the same day: streak holds, bonus still paid.
	s3, r3 := Record(s2, day.AddDate(0, 0, 1).Add(5*time.Hour))
	if r3.EarnedXP != 35 || r3.StreakDays != 2 {
		t.Fatalf("same-day reward: %+v", r3)
	}
	if s3.TotalXP != 95 || s3.StreakDays != 2 {
		t.Fatalf("same-day state: %+v", s3)
	}

	// Two days later: streak restarts at one.
	s4, r4 := Record(s3, day.AddDate(0, 0, 3))
	if r4.EarnedXP != 25 || r4.StreakDays != 1 {
		t.Fatalf("gap reward: %+v", r4)
	}
	if s4.StreakDays != 1 {
		t.Fatalf("gap state: %+v", s4)
	}
}

func TestRecordLevelUp(t *testing.T) {
	s := State{TotalXP: 90}
	next, r := Record(s, day)
	if !r.LeveledUp || r.NewLevel != 2 {
		t.Fatalf("reward: %+v", r)
	}
	if next.Level() != 2 {
		t.Fatalf("level=%d", next.Level())
	}

	// No level boundary crossed.
	_, r2 := Record(State{TotalXP: 10}, day)
	if r2.LeveledUp {
		t.Fatalf("unexpected level up: %+v", r2)
	}
}

func TestNormalizeStreakDecay(t *testing.T) {
	active := State{TotalXP: 500, StreakDays: 4, LastActiveDate: "2025-03-09", TotalCompleted: 9}

	// Yesterday: streak survives the load.
	if got := Normalize(active, day); got.StreakDays != 4 {
		t.Fatalf("yesterday decayed: %+v", got)
	}
	// Today: untouched.
	today := active
	today.LastActiveDate = "2025-03-10"
	if got := Normalize(today, day); got.StreakDays != 4 {
		t.Fatalf("today decayed: %+v", got)
	}
	// Three days ago: streak resets, XP and lifetime count are untouched.
	stale := active
	stale.LastActiveDate = "2025-03-07"
	got := Normalize(stale, day)
	if got.StreakDays != 0 {
		t.Fatalf("stale streak kept: %+v", got)
	}
	if got.TotalXP != 500 || got.TotalCompleted != 9 {
		t.Fatalf("decay touched XP or counts: %+v", got)
	}
}

func TestNormalizeRepairsCorruption(t *testing.T) {
	got := Normalize(State{TotalXP: -10, StreakDays: -2, TotalCompleted: -1, LastActiveDate: "garbage"}, day)
	if got.TotalXP != 0 || got.StreakDays != 0 || got.TotalCompleted != 0 {
		t.Fatalf("corruption survived: %+v", got)
	}
}

func TestProgressWithinLevel(t *testing.T) {
	// Level 2 spans 100..400.
	s := State{TotalXP: 250}
	p := ProgressWithinLevel(s)
	if p != 50 {
		t.Fatalf("progress=%v, want 50", p)
	}
	if got := ProgressWithinLevel(State{TotalXP: 0}); got != 0 {
		t.Fatalf("progress at 0=%v", got)
	}
	if got := XPToNextLevel(State{TotalXP: 250}); got != 150 {
		t.Fatalf("to next=%d, want 150", got)
	}
}
