package calculator

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	mdwlog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/pascal/session"
)

func newModel(t *testing.T) Model {
	t.Helper()
	sess, err := session.New(session.Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	m := New(sess, Config{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// submit types line, presses Enter and feeds the evaluation result back
func submit(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	updated, cmd := m.Update(key(tea.KeyEnter))
	m = updated.(Model)
	if cmd == nil {
		t.Fatalf("Enter on %q returned no command", line)
	}
	msg, ok := cmd().(evalResultMsg)
	if !ok {
		t.Fatalf("command did not produce an evalResultMsg")
	}
	updated, cmd = m.Update(msg)
	return updated.(Model), cmd
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Prompt != "> " || cfg.MaxHistory != 100 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestModel_ViewBeforeReady(t *testing.T) {
	sess, _ := session.New(session.Options{Logger: mdwlog.Discard()})
	if got := New(sess, Config{}).View(); got != "Lade Pascal..." {
		t.Errorf("View() = %q", got)
	}
}

func TestModel_Evaluate(t *testing.T) {
	m := newModel(t)

	m, _ = submit(t, m, "r = 2")
	m, _ = submit(t, m, "r ** 3; q")

	if len(m.transcript) != 2 {
		t.Fatalf("len(transcript) = %d, want 2", len(m.transcript))
	}
	if got := m.transcript[1].result.Texts(); len(got) != 2 || got[0] != "8" || got[1] != "q not defined" {
		t.Errorf("second result = %v", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input not reset: %q", m.input.Value())
	}

	content := renderTranscript(m.transcript, "> ")
	for _, want := range []string{"r = 2", "r ** 3; q", "8", "q not defined"} {
		if !strings.Contains(content, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
	if !strings.Contains(m.View(), "Pascal") {
		t.Error("View() should contain the logo")
	}
}

func TestModel_EmptyInputIgnored(t *testing.T) {
	m := newModel(t)
	m.input.SetValue("   ")

	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Error("empty input should not be evaluated")
	}
}

func TestModel_EnterIgnoredWhileEvaluating(t *testing.T) {
	m := newModel(t)

	m.input.SetValue("a = 1")
	updated, first := m.Update(key(tea.KeyEnter))
	m = updated.(Model)
	if first == nil {
		t.Fatal("first Enter returned no command")
	}

	m.input.SetValue("a + 1")
	updated, second := m.Update(key(tea.KeyEnter))
	m = updated.(Model)
	if second != nil {
		t.Fatal("Enter while evaluating should not start another evaluation")
	}
	if m.input.Value() != "a + 1" {
		t.Errorf("pending input lost: %q", m.input.Value())
	}

	updated, _ = m.Update(first())
	m = updated.(Model)
	m, _ = submit(t, m, "a + 1")

	if len(m.transcript) != 2 {
		t.Fatalf("len(transcript) = %d, want 2", len(m.transcript))
	}
	if m.transcript[0].input != "a = 1" || m.transcript[1].input != "a + 1" {
		t.Errorf("transcript order = %q, %q", m.transcript[0].input, m.transcript[1].input)
	}
	if got := m.transcript[1].result.Texts(); len(got) != 1 || got[0] != "2" {
		t.Errorf("second result = %v", got)
	}
}

func TestModel_History(t *testing.T) {
	m := newModel(t)
	m, _ = submit(t, m, "1 + 1")
	m, _ = submit(t, m, "2 + 2")
	m, _ = submit(t, m, "2 + 2")

	if len(m.history) != 2 {
		t.Fatalf("history = %v, want duplicates collapsed", m.history)
	}

	m.input.SetValue("draft")
	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "2 + 2"},
		{tea.KeyUp, "1 + 1"},
		{tea.KeyUp, "1 + 1"},
		{tea.KeyDown, "2 + 2"},
		{tea.KeyDown, "draft"},
		{tea.KeyDown, "draft"},
	}
	for i, s := range steps {
		updated, _ := m.Update(key(s.key))
		m = updated.(Model)
		if got := m.input.Value(); got != s.want {
			t.Errorf("step %d: input = %q, want %q", i, got, s.want)
		}
	}
}

func TestModel_HistoryLimit(t *testing.T) {
	sess, _ := session.New(session.Options{Logger: mdwlog.Discard()})
	m := New(sess, Config{MaxHistory: 2})
	for _, line := range []string{"1", "2", "3"} {
		m.pushHistory(line)
	}
	if len(m.history) != 2 || m.history[0] != "2" {
		t.Errorf("history = %v", m.history)
	}
}

func TestModel_ClearTranscript(t *testing.T) {
	m := newModel(t)
	m, _ = submit(t, m, "a = 1")

	updated, _ := m.Update(key(tea.KeyCtrlL))
	m = updated.(Model)
	if len(m.transcript) != 0 {
		t.Errorf("transcript not cleared: %d entries", len(m.transcript))
	}
	if v, ok := m.session.Environment().Get("a"); !ok || v != 1 {
		t.Error("clearing the transcript must keep variables")
	}
}

func TestModel_QuitStatement(t *testing.T) {
	m := newModel(t)
	m, cmd := submit(t, m, "quit")

	if !m.quitting {
		t.Error("quitting = false after quit")
	}
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command is not tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty while quitting")
	}
}

func TestModel_EscQuits(t *testing.T) {
	m := newModel(t)
	updated, cmd := m.Update(key(tea.KeyEsc))
	if !updated.(Model).quitting || cmd == nil {
		t.Error("Esc should quit")
	}
}
