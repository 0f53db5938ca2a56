package roadmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is the export/import file shape: a roadmap minus its identity
// and timestamps, so a shared file imports cleanly into another garden.
type Document struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tasks       []Task `json:"tasks"`
}

// ErrNoTasks rejects import documents without a tasks array.
var ErrNoTasks = errors.New("document has no tasks array")

// Export serializes a roadmap to an indented JSON document.
func Export(r Roadmap) ([]byte, error) {
	doc := Document{
		Title:       r.Title,
		Description: r.Description,
		Tasks:       make([]Task, len(r.Tasks)),
	}
	copy(doc.Tasks, r.Tasks)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal roadmap document: %w", err)
	}
	return data, nil
}

// Import parses and validates an exported document, minting a fresh
// roadmap. Validation is eager and all-or-nothing: a bad file never
// partially applies. Task ids are reassigned so imports can't collide with
// existing roadmaps.
func Import(data []byte, now time.Time) (*Roadmap, error) {
	// Probe the raw shape first: a present-but-wrong "tasks" field and a
	// missing one should both fail with the descriptive error.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse roadmap document: %w", err)
	}
	rawTasks, ok := probe["tasks"]
	if !ok {
		return nil, ErrNoTasks
	}
	var tasks []Task
	if err := json.Unmarshal(rawTasks, &tasks); err != nil {
		return nil, ErrNoTasks
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse roadmap document: %w", err)
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = "Imported Roadmap"
	}

	r := &Roadmap{
		ID:          uuid.NewString(),
		Title:       title,
		Description: doc.Description,
		Tasks:       tasks,
		CreatedAt:   now,
		LastActive:  now,
	}
	for i := range r.Tasks {
		r.Tasks[i].ID = uuid.NewString()
	}
	return r, nil
}
