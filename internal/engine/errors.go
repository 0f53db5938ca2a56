package engine

import "fmt"

// LockedTaskError is returned when a toggle targets a task whose
// prerequisites are not all complete. Reachable through normal UI races
// (double-click, stale view), so it is a typed error rather than a panic.
type LockedTaskError struct {
	TaskID string
	Label  string
	Index  int
}

func (e LockedTaskError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("task %q is locked; complete the earlier steps first", e.Label)
	}
	return fmt.Sprintf("task %s is locked; complete the earlier steps first", e.TaskID)
}

// NotFoundError reports a missing roadmap or task.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
