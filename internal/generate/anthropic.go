package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is the model used when the config names none.
const DefaultModel = "claude-3-5-haiku-20241022"

const systemPrompt = `You are an expert curriculum designer and learning path architect. Create a comprehensive, optimally-ordered learning roadmap for: %q.

CRITICAL: Return ONLY valid JSON. No markdown, no backticks, no explanation.

{
  "title": "Skill Title",
  "description": "A motivating one-line summary of the learning journey",
  "tasks": [
    {
      "label": "Task Name",
      "description": "Clear, actionable description",
      "searchQuery": "Optimized search query to learn this topic (e.g. 'React useState tutorial')"
    }
  ]
}

RULES FOR OPTIMAL LEARNING ORDER:
1. Create exactly 10-15 progressive milestones
2. ORDER MATTERS: Each task must be a prerequisite for the next
3. Start with absolute basics
4. Progress through: Fundamentals -> Core Skills -> Intermediate -> Advanced -> Capstone
5. Each task should be achievable in 1-3 hours
6. Descriptions should be specific
7. "searchQuery" must be a concise, effective search term for a beginner

Generate the roadmap now:`

// Anthropic generates roadmaps through the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(apiKey, model string) *Anthropic {
	if model == "" {
		model = DefaultModel
	}
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (a *Anthropic) Generate(ctx context.Context, prompt string) (*Payload, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(systemPrompt, prompt))),
		},
	})
	if err != nil {
		return nil, classify(err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	payload, err := parsePayload(text.String())
	if err != nil {
		return nil, &Error{Category: CategoryMalformed, Err: err}
	}
	return payload, nil
}

// parsePayload parses model output into a validated payload, stripping the
// markdown fences models add despite instructions.
func parsePayload(text string) (*Payload, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	// A chatty model may wrap the JSON in prose; cut to the outermost
	// object before giving up.
	if !strings.HasPrefix(cleaned, "{") {
		if start := strings.Index(cleaned, "{"); start >= 0 {
			if end := strings.LastIndex(cleaned, "}"); end > start {
				cleaned = cleaned[start : end+1]
			}
		}
	}

	var p Payload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("parse roadmap JSON: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// classify maps SDK failures onto the gateway's error categories.
func classify(err error) *Error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 401, 403:
			return &Error{Category: CategoryAuth, Err: err}
		case 429:
			return &Error{Category: CategoryRateLimit, Err: err}
		}
	}
	return &Error{Category: CategoryUnknown, Err: err}
}
