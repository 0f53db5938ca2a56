package engine

import (
	"math"
	"time"
)

const (
	// BaseTaskXP is awarded for every completed task.
	BaseTaskXP = 25

	// StreakBonusXP is the extra XP per consecutive day beyond the first.
	StreakBonusXP = 10

	// LevelXPUnit sets the leveling curve: level L starts at
	// (L-1)^2 * LevelXPUnit total XP.
	LevelXPUnit = 100
)

// State is the persisted gamification record. Level is always derived from
// TotalXP (see LevelForXP) and never stored in a way that can drift.
type State struct {
	TotalXP        int
	StreakDays     int
	LastActiveDate string // ISO date, YYYY-MM-DD; empty before first completion
	TotalCompleted int
}

// Reward describes one completion event for the caller to surface; the
// engine itself triggers no notifications.
type Reward struct {
	EarnedXP    int
	StreakBonus int
	StreakDays  int
	LeveledUp   bool
	NewLevel    int
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// LevelForXP derives the level from total XP:
// level = floor(sqrt(xp/100)) + 1, so level 2 starts at 100 XP, level 3 at
// 400, level 4 at 900. Negative XP counts as zero.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return int(math.Floor(math.Sqrt(float64(totalXP)/LevelXPUnit))) + 1
}

// XPForLevel returns the total XP at which the given level begins.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * LevelXPUnit
}

// Level returns the state's derived level.
func (s State) Level() int {
	return LevelForXP(s.TotalXP)
}

// Record applies one task-completion event at the given wall-clock time and
// returns the next state plus the reward earned. Streak rules:
//   - already active today: streak unchanged, bonus still paid;
//   - last active yesterday: streak extends by one;
//   - otherwise: streak restarts at one.
func Record(s State, now time.Time) (State, Reward) {
	today := isoDate(now)
	yesterday := isoDate(now.AddDate(0, 0, -1))

	streak := s.StreakDays
	switch s.LastActiveDate {
	case today:
		// Already credited today.
	case yesterday:
		streak++
	default:
		streak = 1
	}
	if streak < 1 {
		streak = 1
	}

	bonus := 0
	if streak > 1 {
		bonus = StreakBonusXP * (streak - 1)
	}
	earned := BaseTaskXP + bonus

	levelBefore := s.Level()
	next := State{
		TotalXP:        s.TotalXP + earned,
		StreakDays:     streak,
		LastActiveDate: today,
		TotalCompleted: s.TotalCompleted + 1,
	}
	newLevel := next.Level()

	return next, Reward{
		EarnedXP:    earned,
		StreakBonus: bonus,
		StreakDays:  streak,
		LeveledUp:   newLevel > levelBefore,
		NewLevel:    newLevel,
	}
}

// Normalize repairs a loaded state: corrupted values fall back to safe
// defaults, and a streak silently decays to zero when a full day was
// skipped. XP, level and lifetime counts are never touched by decay.
func Normalize(s State, now time.Time) State {
	if s.TotalXP < 0 {
		s.TotalXP = 0
	}
	if s.StreakDays < 0 {
		s.StreakDays = 0
	}
	if s.TotalCompleted < 0 {
		s.TotalCompleted = 0
	}

	today := isoDate(now)
	yesterday := isoDate(now.AddDate(0, 0, -1))
	if s.LastActiveDate != today && s.LastActiveDate != yesterday {
		s.StreakDays = 0
	}
	return s
}

// ProgressWithinLevel reports how far TotalXP has advanced through the
// current level's XP band, as a percentage clamped to [0, 100].
func ProgressWithinLevel(s State) float64 {
	level := s.Level()
	lo := XPForLevel(level)
	hi := XPForLevel(level + 1)
	if hi <= lo {
		return 0
	}
	p := float64(s.TotalXP-lo) / float64(hi-lo) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// XPToNextLevel returns how much XP remains until the next level.
func XPToNextLevel(s State) int {
	remaining := XPForLevel(s.Level()+1) - s.TotalXP
	if remaining < 0 {
		return 0
	}
	return remaining
}
