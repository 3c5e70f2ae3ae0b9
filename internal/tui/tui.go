// Package tui provides a Bubble Tea terminal user interface for the track library.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/handiism/track-library/internal/catalog"
	"github.com/handiism/track-library/internal/library"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ECDC4"))
)

const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateMenu State = iota
	StatePrompt
	StateWorking
	StateResult
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   library.ProgressLevel
}

// Events buffers progress events until the model displays them.
// Pass its Add method as library.Options.OnProgress.
type Events struct {
	mu      sync.Mutex
	pending []library.ProgressEvent
}

// NewEvents creates an empty event buffer.
func NewEvents() *Events {
	return &Events{}
}

// Add queues an event. It is safe to call from an action goroutine.
func (e *Events) Add(event library.ProgressEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = append(e.pending, event)
}

func (e *Events) drain() []library.ProgressEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	events := e.pending
	e.pending = nil
	return events
}

// ActionDoneMsg is sent when a menu action finishes.
type ActionDoneMsg struct {
	Result Result
}

// Model is the Bubble Tea model for the TUI.
//
// The manager is only touched by one action at a time: keys are ignored
// while an action runs, and View renders a stats snapshot taken on the UI
// goroutine before and after each action instead of reading the manager.
type Model struct {
	state     State
	cursor    int
	current   int
	answers   []string
	textInput textinput.Model
	spinner   spinner.Model

	lib    *library.Manager
	stats  catalog.Stats
	events *Events
	logs   []LogEntry
	result Result

	verbose bool
	ctx     context.Context
	cancel  context.CancelFunc
	width   int
}

// NewModel creates a new TUI model over lib. events must be the buffer the
// manager reports to; anything already queued is shown immediately.
func NewModel(ctx context.Context, lib *library.Manager, events *Events, verbose bool) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(ctx)

	m := Model{
		state:     StateMenu,
		textInput: ti,
		spinner:   sp,
		lib:       lib,
		events:    events,
		verbose:   verbose,
		ctx:       ctx,
		cancel:    cancel,
	}
	m.stats = lib.Stats()
	m.collectEvents()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textInput.Width = min(max(msg.Width-10, 20), 80)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ActionDoneMsg:
		m.stats = m.lib.Stats()
		m.collectEvents()
		m.result = msg.Result
		m.state = StateResult
		return m, nil
	}

	if m.state == StatePrompt {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	switch m.state {
	case StateMenu:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(actions)-1 {
				m.cursor++
			}
		case "enter":
			return m.selectAction(m.cursor)
		case "q", "esc", "0":
			m.cancel()
			return m, tea.Quit
		default:
			if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(actions)-1 {
				m.cursor = int(key[0] - '1')
				return m.selectAction(m.cursor)
			}
		}

	case StatePrompt:
		switch key {
		case "esc":
			m.state = StateMenu
			m.textInput.Blur()
			return m, nil
		case "enter":
			m.answers = append(m.answers, strings.TrimSpace(m.textInput.Value()))
			if len(m.answers) < len(actions[m.current].prompts) {
				m.resetInput()
				return m, textinput.Blink
			}
			m.textInput.Blur()
			return m.start()
		}
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd

	case StateResult:
		switch key {
		case "enter", "esc", "q":
			m.state = StateMenu
		}
	}

	return m, nil
}

func (m Model) selectAction(i int) (tea.Model, tea.Cmd) {
	a := actions[i]
	if a.quit {
		m.cancel()
		return m, tea.Quit
	}

	m.current = i
	m.answers = nil
	if len(a.prompts) == 0 {
		return m.start()
	}

	m.state = StatePrompt
	m.resetInput()
	return m, textinput.Blink
}

func (m *Model) resetInput() {
	m.textInput.SetValue("")
	m.textInput.Placeholder = actions[m.current].placeholder
	m.textInput.Focus()
}

// start runs the current action in the background.
func (m Model) start() (tea.Model, tea.Cmd) {
	m.state = StateWorking

	run := actions[m.current].run
	ctx, lib := m.ctx, m.lib
	answers := slices.Clone(m.answers)

	return m, func() tea.Msg {
		return ActionDoneMsg{Result: run(ctx, lib, answers)}
	}
}

func (m *Model) collectEvents() {
	if m.events == nil {
		return
	}
	for _, event := range m.events.drain() {
		if event.Level == library.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	}
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Logs returns the log entries currently shown.
func (m Model) Logs() []LogEntry {
	return m.logs
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ Track Library"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d tracks in %d buckets", m.stats.Tracks, m.stats.Capacity)))
	b.WriteString("\n\n")

	switch m.state {
	case StateMenu:
		b.WriteString(m.viewMenu())
	case StatePrompt:
		b.WriteString(m.viewPrompt())
	case StateWorking:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render(actions[m.current].label + "..."))
		b.WriteString("\n")
	case StateResult:
		b.WriteString(m.viewResult())
	}

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder

	for i, a := range actions {
		n := i + 1
		if a.quit {
			n = 0
		}
		line := fmt.Sprintf("[%d] %s", n, a.label)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewPrompt() string {
	var b strings.Builder

	a := actions[m.current]
	b.WriteString(subtitleStyle.Render(a.label))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(a.prompts[len(m.answers)]))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder

	if m.result.Err != nil {
		b.WriteString(errorStyle.Render("✗ " + m.result.Title))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  %s", m.result.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(successStyle.Render(m.result.Title))
	b.WriteString("\n")
	if len(m.result.Rows) > 0 {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(tableBorderStyle).
			Headers(m.result.Headers...).
			Rows(m.result.Rows...)
		b.WriteString("\n")
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case library.LevelError:
			style = errorStyle
			prefix = "✗"
		case library.LevelWarning:
			style = warningStyle
			prefix = "!"
		case library.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case library.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateMenu:
		return "↑/↓: move • enter: select • 1-7: shortcut • q: quit"
	case StatePrompt:
		return "enter: confirm • esc: back"
	case StateWorking:
		return "ctrl+c: quit"
	case StateResult:
		return "enter: back to menu"
	}
	return ""
}

// Run starts the TUI application.
func Run(ctx context.Context, lib *library.Manager, events *Events, verbose bool) error {
	p := tea.NewProgram(NewModel(ctx, lib, events, verbose), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
