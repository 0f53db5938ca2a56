// Package generate produces learning roadmaps from free-text prompts. The
// real implementation calls the Anthropic API; a deterministic mock covers
// keyless setups. Payloads are id-less — the engine mints task ids when it
// persists a roadmap.
package generate

import (
	"context"
	"fmt"
	"strings"
)

// Category buckets gateway failures into the closed set the UI maps to
// distinct user-facing messages.
type Category string

const (
	CategoryAuth      Category = "auth"
	CategoryRateLimit Category = "rate_limited"
	CategoryMalformed Category = "malformed"
	CategoryUnknown   Category = "unknown"
)

// Error is a categorized gateway failure.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Category {
	case CategoryAuth:
		return "API authentication failed; check your API key"
	case CategoryRateLimit:
		return "rate limit exceeded; try again later"
	case CategoryMalformed:
		return "the model returned an invalid roadmap; try again"
	default:
		return "roadmap generation failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// TaskSpec is one generated milestone, before ids are assigned.
type TaskSpec struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	SearchQuery string `json:"searchQuery,omitempty"`
}

// Payload is a well-formed generation result.
type Payload struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tasks       []TaskSpec `json:"tasks"`
}

// Generator turns a skill prompt into an ordered roadmap payload. The call
// must respect ctx cancellation: a caller that navigates away abandons the
// call and commits nothing.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Payload, error)
}

// validate enforces the payload schema the rest of the system assumes.
func validate(p *Payload) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("payload has no title")
	}
	if len(p.Tasks) == 0 {
		return fmt.Errorf("payload has no tasks")
	}
	for i, t := range p.Tasks {
		if strings.TrimSpace(t.Label) == "" {
			return fmt.Errorf("task %d has no label", i)
		}
	}
	return nil
}
