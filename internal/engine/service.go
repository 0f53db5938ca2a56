package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"skillbloom/internal/archetype"
	"skillbloom/internal/generate"
	"skillbloom/internal/growth"
	"skillbloom/internal/roadmap"
	"skillbloom/internal/storage"
)

// Service ties the roadmap store, the gamification record and the growth
// pipeline together. All mutations go through it so the gating precondition
// and the completion→XP flow live in one place.
type Service struct {
	db       *sql.DB
	user     *storage.UserRepo
	roadmaps *storage.RoadmapRepo
	gamify   *storage.GamificationRepo
	now      func() time.Time
}

func NewService(db *sql.DB) *Service {
	return NewServiceWithClock(db, time.Now)
}

// NewServiceWithClock injects the wall clock; tests pin it to fixed dates
// to exercise streak day boundaries.
func NewServiceWithClock(db *sql.DB, now func() time.Time) *Service {
	return &Service{
		db:       db,
		user:     storage.NewUserRepo(db),
		roadmaps: storage.NewRoadmapRepo(db),
		gamify:   storage.NewGamificationRepo(db),
		now:      now,
	}
}

func (s *Service) UserRepo() *storage.UserRepo           { return s.user }
func (s *Service) RoadmapRepo() *storage.RoadmapRepo     { return s.roadmaps }
func (s *Service) GamifyRepo() *storage.GamificationRepo { return s.gamify }

// GamificationState loads the persisted record, applies load-time repair
// (corruption recovery, streak decay after a skipped day) and persists the
// repaired state when it changed.
func (s *Service) GamificationState(ctx context.Context) (State, error) {
	rec, err := s.gamify.Get(ctx)
	if err != nil {
		return State{}, err
	}
	loaded := State{
		TotalXP:        rec.TotalXP,
		StreakDays:     rec.StreakDays,
		LastActiveDate: rec.LastActiveDate,
		TotalCompleted: rec.TotalCompleted,
	}
	normalized := Normalize(loaded, s.now())
	if normalized != loaded {
		if err := s.putState(ctx, normalized); err != nil {
			return State{}, err
		}
	}
	return normalized, nil
}

func (s *Service) putState(ctx context.Context, st State) error {
	return s.gamify.Put(ctx, storage.GamificationRecord{
		TotalXP:        st.TotalXP,
		StreakDays:     st.StreakDays,
		LastActiveDate: st.LastActiveDate,
		TotalCompleted: st.TotalCompleted,
	})
}

// CreateFromGeneration persists a freshly generated roadmap, minting ids
// for the gateway's id-less payload, and makes it the active one.
func (s *Service) CreateFromGeneration(ctx context.Context, p *generate.Payload) (*roadmap.Roadmap, error) {
	now := s.now()
	rm := roadmap.Roadmap{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   now,
		LastActive:  now,
	}
	for _, t := range p.Tasks {
		rm.Tasks = append(rm.Tasks, roadmap.Task{
			ID:          uuid.NewString(),
			Label:       t.Label,
			Description: t.Description,
			SearchQuery: t.SearchQuery,
		})
	}

	if err := s.roadmaps.Insert(ctx, rm); err != nil {
		return nil, err
	}
	if err := s.user.SetActiveRoadmapID(ctx, rm.ID); err != nil {
		return nil, err
	}
	return &rm, nil
}

// ActiveRoadmap returns the currently tended roadmap, or nil when the
// garden is empty.
func (s *Service) ActiveRoadmap(ctx context.Context) (*roadmap.Roadmap, error) {
	id, err := s.user.ActiveRoadmapID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return s.roadmaps.Get(ctx, id)
}

// SetActive switches the active roadmap.
func (s *Service) SetActive(ctx context.Context, id string) error {
	rm, err := s.roadmaps.Get(ctx, id)
	if err != nil {
		return err
	}
	if rm == nil {
		return NotFoundError{Kind: "roadmap", ID: id}
	}
	return s.user.SetActiveRoadmapID(ctx, id)
}

// DeleteRoadmap removes a roadmap. When the active one is deleted, the
// most recently active survivor takes over, or the active id clears if
// none remain.
func (s *Service) DeleteRoadmap(ctx context.Context, id string) error {
	rm, err := s.roadmaps.Get(ctx, id)
	if err != nil {
		return err
	}
	if rm == nil {
		return NotFoundError{Kind: "roadmap", ID: id}
	}

	activeID, err := s.user.ActiveRoadmapID(ctx)
	if err != nil {
		return err
	}

	if err := s.roadmaps.Delete(ctx, id); err != nil {
		return err
	}

	if activeID == id {
		remaining, err := s.roadmaps.IDs(ctx)
		if err != nil {
			return err
		}
		next := ""
		if len(remaining) > 0 {
			next = remaining[0]
		}
		if err := s.user.SetActiveRoadmapID(ctx, next); err != nil {
			return err
		}
	}
	return nil
}

// ToggleResult reports one toggle: the new task state, the roadmap's new
// ratio, and the gamification reward when the toggle was a completion.
type ToggleResult struct {
	Roadmap      *roadmap.Roadmap
	Task         roadmap.Task
	NowCompleted bool
	Ratio        float64
	Reward       *Reward
}

// ToggleTask flips one task's completion. The gating invariant is enforced
// here: completing a locked task is rejected, and un-completing a task that
// later completed tasks depend on is rejected for the same reason.
// Completions feed the gamification record; un-completions award nothing
// and never claw XP back.
func (s *Service) ToggleTask(ctx context.Context, roadmapID, taskID string) (*ToggleResult, error) {
	rm, err := s.roadmaps.Get(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, NotFoundError{Kind: "roadmap", ID: roadmapID}
	}

	i := roadmap.IndexOf(rm.Tasks, taskID)
	if i < 0 {
		return nil, NotFoundError{Kind: "task", ID: taskID}
	}

	if !rm.Tasks[i].Completed {
		if roadmap.StateAt(rm.Tasks, i) == roadmap.StateLocked {
			return nil, LockedTaskError{TaskID: taskID, Label: rm.Tasks[i].Label, Index: i}
		}
	} else if i+1 < len(rm.Tasks) && rm.Tasks[i+1].Completed {
		return nil, LockedTaskError{TaskID: taskID, Label: rm.Tasks[i].Label, Index: i}
	}

	tasks, err := roadmap.Toggle(rm.Tasks, taskID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.roadmaps.ReplaceTasks(ctx, rm.ID, tasks, now); err != nil {
		return nil, err
	}
	rm.Tasks = tasks
	rm.LastActive = now

	res := &ToggleResult{
		Roadmap:      rm,
		Task:         tasks[i],
		NowCompleted: tasks[i].Completed,
		Ratio:        roadmap.CompletionRatio(tasks),
	}

	if res.NowCompleted {
		state, err := s.GamificationState(ctx)
		if err != nil {
			return nil, err
		}
		next, reward := Record(state, now)
		if err := s.putState(ctx, next); err != nil {
			return nil, err
		}
		res.Reward = &reward
	}

	return res, nil
}

// SceneInfo bundles everything a renderer needs for one roadmap.
type SceneInfo struct {
	Roadmap    roadmap.Roadmap
	Descriptor archetype.Descriptor
	Stage      growth.Stage
	Scene      *growth.Scene
	Ratio      float64
}

// SceneFor classifies the roadmap title and generates its scene at the
// current completion ratio.
func (s *Service) SceneFor(ctx context.Context, roadmapID string) (*SceneInfo, error) {
	rm, err := s.roadmaps.Get(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, NotFoundError{Kind: "roadmap", ID: roadmapID}
	}

	desc := archetype.Classify(rm.Title)
	ratio := roadmap.CompletionRatio(rm.Tasks)
	stage := growth.StageFor(desc, ratio)

	return &SceneInfo{
		Roadmap:    *rm,
		Descriptor: desc,
		Stage:      stage,
		Scene:      growth.GenerateAt(rm.Title, desc, stage),
		Ratio:      ratio,
	}, nil
}

// ExportRoadmap serializes a roadmap to its shareable document form.
func (s *Service) ExportRoadmap(ctx context.Context, id string) ([]byte, error) {
	rm, err := s.roadmaps.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, NotFoundError{Kind: "roadmap", ID: id}
	}
	return roadmap.Export(*rm)
}

// ImportRoadmap validates and stores an exported document, making the
// imported roadmap active. Nothing is committed when validation fails.
func (s *Service) ImportRoadmap(ctx context.Context, data []byte) (*roadmap.Roadmap, error) {
	rm, err := roadmap.Import(data, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.roadmaps.Insert(ctx, *rm); err != nil {
		return nil, err
	}
	if err := s.user.SetActiveRoadmapID(ctx, rm.ID); err != nil {
		return nil, err
	}
	return rm, nil
}
