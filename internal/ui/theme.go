package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SkillBloom theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSeed    = "🌱"
	IconSprout  = "🌿"
	IconTree    = "🌳"
	IconBloom   = "🌸"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconLock    = "🔒"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconFlame   = "🔥"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconScroll  = "📜"
	IconGarden  = "🪴"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StageIcon maps a growth stage index to its emoji.
func StageIcon(stage int) string {
	switch {
	case stage <= 0:
		return IconSeed
	case stage == 1:
		return IconSprout
	case stage == 2:
		return IconSprout
	case stage == 3:
		return IconTree
	default:
		return IconBloom
	}
}

// TaskMark renders the checklist marker for one task.
func TaskMark(completed, locked bool) string {
	switch {
	case completed:
		return Good.Render("[x]")
	case locked:
		return Muted.Render("[" + IconLock + "]")
	default:
		return "[ ]"
	}
}

// ProgressBar renders an n-cell bar at the given ratio (0..100).
func ProgressBar(ratio float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(ratio / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled))
}
