package generate

import (
	"context"
	"fmt"
	"strings"
)

// Mock is the keyless fallback generator: a fixed 12-step React roadmap,
// retitled to the prompt when one is given. Deterministic by design so
// demos and tests render the same garden every time. Callers must surface
// that mock data is in use — it never silently stands in for a configured
// backend.
type Mock struct{}

func (Mock) Generate(_ context.Context, prompt string) (*Payload, error) {
	p := &Payload{
		Title:       "Learn React",
		Description: "From zero to React hero — build modern web applications",
		Tasks: []TaskSpec{
			{Label: "Environment Setup", Description: "Install Node.js, npm, and create your first React app with Vite", SearchQuery: "vite react setup tutorial"},
			{Label: "JSX Fundamentals", Description: "Learn JSX syntax — the HTML-like code that React uses", SearchQuery: "JSX syntax basics"},
			{Label: "Components Basics", Description: "Create your first functional component and understand composition", SearchQuery: "react functional components"},
			{Label: "Props & Data Flow", Description: "Pass data between components using props", SearchQuery: "react props tutorial"},
			{Label: "State with useState", Description: "Make components interactive with the useState hook", SearchQuery: "react useState tutorial"},
			{Label: "Event Handling", Description: "Handle clicks, form submissions, and user interactions", SearchQuery: "react event handling"},
			{Label: "useEffect Hook", Description: "Manage side effects like API calls and subscriptions", SearchQuery: "react useEffect explained"},
			{Label: "Conditional Rendering", Description: "Show/hide elements based on state and props", SearchQuery: "react conditional rendering"},
			{Label: "Lists & Keys", Description: "Render arrays of data and understand the key prop", SearchQuery: "react lists and keys"},
			{Label: "Forms & Inputs", Description: "Build controlled forms with validation", SearchQuery: "react controlled forms"},
			{Label: "Custom Hooks", Description: "Extract reusable logic into custom hooks", SearchQuery: "react custom hooks"},
			{Label: "Build & Deploy", Description: "Create a production build and deploy to Vercel", SearchQuery: "deploy react app vercel"},
		},
	}

	if title := strings.TrimSpace(prompt); title != "" && !strings.EqualFold(title, "react") {
		p.Title = title
		p.Description = fmt.Sprintf("A step-by-step path into %s", title)
	}
	return p, nil
}
