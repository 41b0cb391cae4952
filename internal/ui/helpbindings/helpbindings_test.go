package helpbindings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/reelcheck/internal/ui/action"
)

func newTestHelpPopup(height int) *Model {
	m := New()
	m.SetSize(80, height)
	return &m
}

func sendKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func assertClosed(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	actionMsg, ok := cmd().(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", cmd())
	}
	if _, ok := actionMsg.Action.(Close); !ok {
		t.Fatalf("expected Close, got %T", actionMsg.Action)
	}
}

func TestHelpBindings_Close(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"escape", tea.KeyMsg{Type: tea.KeyEscape}},
		{"q", runes("q")},
		{"question mark", runes("?")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestHelpPopup(40)
			assertClosed(t, sendKey(m, tt.key))
		})
	}
}

func TestHelpBindings_ListsEveryContext(t *testing.T) {
	m := newTestHelpPopup(200)

	view := ansi.Strip(m.View())

	for _, label := range []string{"Global", "Playback", "Frames", "Versions"} {
		if !strings.Contains(view, label) {
			t.Errorf("view missing %q section", label)
		}
	}
	for _, want := range []string{"space", "Next frame", "Jump to frame", "1-9"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "j/k scroll") {
		t.Error("footer should not offer scrolling when everything fits")
	}
}

func TestHelpBindings_Scroll(t *testing.T) {
	m := newTestHelpPopup(15)
	if m.maxScroll() == 0 {
		t.Fatal("expected content taller than the popup")
	}

	sendKey(m, runes("k"))
	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d after scrolling up at top, want 0", m.scrollOffset)
	}

	sendKey(m, runes("j"))
	sendKey(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.scrollOffset != 2 {
		t.Errorf("scrollOffset = %d, want 2", m.scrollOffset)
	}

	for range 100 {
		sendKey(m, runes("j"))
	}
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scrollOffset = %d, want clamped to %d", m.scrollOffset, m.maxScroll())
	}
	if !strings.Contains(ansi.Strip(m.View()), "j/k scroll") {
		t.Error("footer should offer scrolling")
	}
}

func TestHelpBindings_EmptyWithoutSize(t *testing.T) {
	m := New()
	if m.View() != "" {
		t.Error("View() should be empty before SetSize")
	}
}
