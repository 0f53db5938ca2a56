package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"skillbloom/internal/engine"
	"skillbloom/internal/growth"
	"skillbloom/internal/roadmap"
	"skillbloom/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	state    engine.State
	roadmaps []roadmap.Roadmap
	activeID string

	selRoadmap int
	selTask    int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	state    engine.State
	roadmaps []roadmap.Roadmap
	activeID string
	err      error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.svc.GamificationState(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		roadmaps, err := m.svc.RoadmapRepo().ListAll(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		activeID, err := m.svc.UserRepo().ActiveRoadmapID(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{state: state, roadmaps: roadmaps, activeID: activeID}
	}
}

func (m boardModel) toggleCmd(roadmapID, taskID string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleTask(m.ctx, roadmapID, taskID)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		m.roadmaps = msg.roadmaps
		m.activeID = msg.activeID
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.NowCompleted && msg.res.Reward != nil {
			r := msg.res.Reward
			m.lastLog = fmt.Sprintf("%s +%d XP (streak %d)", ui.IconSparkle, r.EarnedXP, r.StreakDays)
			if r.LeveledUp {
				m.lastLog += "  " + ui.BadgeLevelUp + fmt.Sprintf(" → level %d", r.NewLevel)
			}
		} else {
			m.lastLog = fmt.Sprintf("Unchecked %q.", msg.res.Task.Label)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "tab", "right", "l":
			if len(m.roadmaps) > 0 {
				m.selRoadmap = (m.selRoadmap + 1) % len(m.roadmaps)
				m.selTask = 0
			}
			return m, nil
		case "shift+tab", "left", "h":
			if len(m.roadmaps) > 0 {
				m.selRoadmap = (m.selRoadmap + len(m.roadmaps) - 1) % len(m.roadmaps)
				m.selTask = 0
			}
			return m, nil
		case "up", "k":
			if m.selTask > 0 {
				m.selTask--
			}
			return m, nil
		case "down", "j":
			if rm := m.current(); rm != nil && m.selTask < len(rm.Tasks)-1 {
				m.selTask++
			}
			return m, nil
		case "enter", " ", "c":
			rm := m.current()
			if rm == nil || m.selTask < 0 || m.selTask >= len(rm.Tasks) {
				return m, nil
			}
			t := rm.Tasks[m.selTask]
			if !t.Completed && roadmap.StateAt(rm.Tasks, m.selTask) == roadmap.StateLocked {
				m.lastLog = ui.IconLock + " Finish the earlier steps first."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Toggling %q…", t.Label)
			return m, m.toggleCmd(rm.ID, t.ID)
		}
	}
	return m, nil
}

func (m *boardModel) current() *roadmap.Roadmap {
	if m.selRoadmap < 0 || m.selRoadmap >= len(m.roadmaps) {
		return nil
	}
	return &m.roadmaps[m.selRoadmap]
}

func (m *boardModel) clampSelection() {
	if m.selRoadmap >= len(m.roadmaps) {
		m.selRoadmap = len(m.roadmaps) - 1
	}
	if m.selRoadmap < 0 {
		m.selRoadmap = 0
	}
	if rm := m.current(); rm != nil {
		if m.selTask >= len(rm.Tasks) {
			m.selTask = len(rm.Tasks) - 1
		}
	}
	if m.selTask < 0 {
		m.selTask = 0
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	lvl := m.state.Level()
	bar := progressBar(
		m.state.TotalXP-engine.XPForLevel(lvl),
		engine.XPForLevel(lvl+1)-engine.XPForLevel(lvl),
		30,
	)
	streak := fmt.Sprintf("%s %d", ui.IconFlame, m.state.StreakDays)
	return fmt.Sprintf("SkillBloom %s | Level %d | XP %d %s | Streak %s",
		ui.IconGarden, lvl, m.state.TotalXP, bar, streak)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Garden"}
	if len(m.roadmaps) == 0 {
		lines = append(lines, "(empty — `bloom grow` plants one)")
	}
	for i, rm := range m.roadmaps {
		cursor := "  "
		if i == m.selRoadmap {
			cursor = "> "
		}
		marker := " "
		if rm.ID == m.activeID {
			marker = "*"
		}
		ratio := roadmap.CompletionRatio(rm.Tasks)
		icon := ui.StageIcon(growth.StageIndex(ratio))
		lines = append(lines, fmt.Sprintf("%s%s %s %s (%.0f%%)", cursor, marker, icon, rm.Title, ratio))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- tab/←/→: switch plant")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- space/enter: toggle")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	rm := m.current()
	if rm == nil {
		return "(no roadmap selected)"
	}

	ratio := roadmap.CompletionRatio(rm.Tasks)
	var out []string
	out = append(out, fmt.Sprintf("%s %s — %d/%d done %s",
		ui.StageIcon(growth.StageIndex(ratio)), rm.Title,
		roadmap.CompletedCount(rm.Tasks), len(rm.Tasks), progressBar(int(ratio), 100, 20)))
	if rm.Description != "" {
		out = append(out, rm.Description)
	}
	out = append(out, "")

	for i, t := range rm.Tasks {
		cursor := "  "
		if i == m.selTask {
			cursor = "> "
		}
		locked := !t.Completed && roadmap.StateAt(rm.Tasks, i) == roadmap.StateLocked
		out = append(out, fmt.Sprintf("%s%s %s", cursor, ui.TaskMark(t.Completed, locked), t.Label))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
