// ============================================================================
// Pascal - Zeilenorientierter Rechner
// ============================================================================
//
// Package:     calculator
// Description: Main Bubbletea model for the calculator TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-18
// License:     MIT
// ============================================================================

package calculator

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/pascal/internal/pascal/session"
	"github.com/msto63/pascal/pkg/core/version"
)

// Config holds TUI configuration
type Config struct {
	Prompt string

	// MaxHistory limits the input history browsed with Up/Down
	MaxHistory int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Prompt:     "> ",
		MaxHistory: 100,
	}
}

// Model is the main Bubbletea model for the calculator
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	quitting bool

	// loading is set while a line is being evaluated; Enter is ignored
	// until its result arrives so the transcript keeps input order
	loading bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Calculator state
	session    *session.Session
	transcript []transcriptEntry

	// Input history, oldest first. historyPos == len(history) means the
	// user is editing a new line.
	history    []string
	historyPos int
	draft      string

	config Config
}

// New creates a new calculator model
func New(sess *session.Session, cfg Config) Model {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultConfig().Prompt
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = DefaultConfig().MaxHistory
	}

	ti := textinput.New()
	ti.Placeholder = "Ausdruck eingeben, z.B. r = 2; PI * r ** 2"
	ti.Prompt = cfg.Prompt
	ti.PromptStyle = PromptStyle
	ti.Focus()
	ti.CharLimit = 4096

	return Model{
		input:   ti,
		session: sess,
		config:  cfg,
	}
}

// Run starts the TUI in the alternate screen and blocks until it exits
func Run(sess *session.Session, cfg Config) error {
	_, err := tea.NewProgram(New(sess, cfg), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.pushHistory(input)
			m.input.Reset()
			m.loading = true
			return m, m.evaluate(input)

		case "up":
			m.browseHistory(-1)
			return m, nil

		case "down":
			m.browseHistory(1)
			return m, nil

		case "ctrl+l":
			m.transcript = nil
			m.updateViewportContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel
		footerHeight := 6 // Input panel + status + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()

	case evalResultMsg:
		m.loading = false
		m.transcript = append(m.transcript, transcriptEntry{input: msg.input, result: msg.result})
		m.updateViewportContent()
		if !msg.result.Continue {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// evaluate runs the line in the session
func (m Model) evaluate(input string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return evalResultMsg{input: input, result: sess.Eval(context.Background(), input)}
	}
}

func (m *Model) pushHistory(input string) {
	if n := len(m.history); n == 0 || m.history[n-1] != input {
		m.history = append(m.history, input)
	}
	if len(m.history) > m.config.MaxHistory {
		m.history = m.history[len(m.history)-m.config.MaxHistory:]
	}
	m.historyPos = len(m.history)
	m.draft = ""
}

// browseHistory moves through the input history; dir is -1 for older
func (m *Model) browseHistory(dir int) {
	pos := m.historyPos + dir
	if pos < 0 || pos > len(m.history) {
		return
	}
	if m.historyPos == len(m.history) {
		m.draft = m.input.Value()
	}
	m.historyPos = pos
	if pos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[pos])
	}
	m.input.CursorEnd()
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Lade Pascal..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(TranscriptPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(InputPanelStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo and session
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)
	sub := SubHeaderStyle.Render("Zeilenorientierter Rechner")

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		sub,
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderStatusBar renders session id, variable count and version
func (m Model) renderStatusBar() string {
	id := m.session.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	left := HelpDescStyle.Render(fmt.Sprintf("Session %s", id))
	center := HelpDescStyle.Render(fmt.Sprintf("%d Variablen", m.session.Environment().Len()))
	if m.loading {
		center = HelpDescStyle.Render("Berechne...")
	}
	right := HelpDescStyle.Render("v" + version.TUI)

	space := m.width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right) - 4
	if space < 2 {
		space = 2
	}
	leftPadding := space / 2
	content := left + strings.Repeat(" ", leftPadding) + center + strings.Repeat(" ", space-leftPadding) + right

	return StatusBarStyle.Width(m.width - 2).Render(content)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "Auswerten"),
		RenderKeyHint("↑/↓", "Verlauf"),
		RenderKeyHint("Ctrl+L", "Leeren"),
		RenderKeyHint("Esc", "Beenden"),
	}
	return strings.Join(items, "  ")
}

// updateViewportContent renders the transcript into the viewport
func (m *Model) updateViewportContent() {
	m.viewport.SetContent(renderTranscript(m.transcript, m.config.Prompt))
	m.viewport.GotoBottom()
}

func renderTranscript(entries []transcriptEntry, prompt string) string {
	var content strings.Builder
	for _, e := range entries {
		content.WriteString(PromptStyle.Render(prompt))
		content.WriteString(InputEchoStyle.Render(e.input))
		content.WriteString("\n")
		for _, l := range e.result.Lines {
			content.WriteString("  ")
			content.WriteString(RenderLine(l))
			content.WriteString("\n")
		}
	}
	return content.String()
}
