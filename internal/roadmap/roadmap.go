// Package roadmap holds the learning-path domain model: ordered tasks, the
// completion ratio that drives tree growth, and the linear-chain gating
// rule. Everything here is pure; persistence and gamification live in
// internal/storage and internal/engine.
package roadmap

import (
	"fmt"
	"time"
)

type Task struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	SearchQuery string `json:"searchQuery,omitempty"`
}

// Roadmap is one learning path. Task order is significant: position
// defines prerequisite order and tasks are never reordered or removed
// individually. Title is the classifier input and must stay stable for the
// roadmap's lifetime, or the rendered plant would change species.
type Roadmap struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tasks       []Task    `json:"tasks"`
	CreatedAt   time.Time `json:"createdAt"`
	LastActive  time.Time `json:"lastActive"`
}

// UserData is the persisted aggregate: every roadmap plus which one is
// currently tended.
type UserData struct {
	ActiveRoadmapID string             `json:"activeRoadmapId"`
	Roadmaps        map[string]Roadmap `json:"roadmaps"`
}

// TaskState is a task's position in the gated chain.
type TaskState string

const (
	StateLocked    TaskState = "locked"
	StateActive    TaskState = "active"
	StateCompleted TaskState = "completed"
)

// CompletionRatio returns 100*completed/total. An empty list is 0, never
// NaN — roadmaps reaching the growth view are non-empty by invariant, but
// the guard keeps this total.
func CompletionRatio(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(tasks))
}

// StateAt classifies the task at index i. A task is locked iff any earlier
// task is incomplete; the first incomplete task with a fully completed
// prefix is the active one. Out-of-range indexes report locked.
func StateAt(tasks []Task, i int) TaskState {
	if i < 0 || i >= len(tasks) {
		return StateLocked
	}
	if tasks[i].Completed {
		return StateCompleted
	}
	for _, prev := range tasks[:i] {
		if !prev.Completed {
			return StateLocked
		}
	}
	return StateActive
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// NextActive returns the index of the currently actionable task, or -1
// when every task is complete (or the list is empty).
func NextActive(tasks []Task) int {
	for i := range tasks {
		if !tasks[i].Completed {
			return i
		}
	}
	return -1
}

// Toggle returns a copy of tasks with exactly one task's completed flag
// flipped. It flips blindly — gating is a precondition the caller checks
// (see engine.Service.ToggleTask) so UI races degrade to an explicit error
// there, not to silent corruption here.
func Toggle(tasks []Task, id string) ([]Task, error) {
	i := IndexOf(tasks, id)
	if i < 0 {
		return nil, fmt.Errorf("task %q not found", id)
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	out[i].Completed = !out[i].Completed
	return out, nil
}

// CompletedCount returns how many tasks are done.
func CompletedCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
