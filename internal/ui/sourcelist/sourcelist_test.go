package sourcelist

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/reelcheck/internal/playback"
)

func sources(n int) []playback.Source {
	out := make([]playback.Source, n)
	for i := range out {
		out[i] = playback.Source{Name: fmt.Sprintf("v%02d", i+1), URL: fmt.Sprintf("shot_v%02d.mp4", i+1)}
	}
	return out
}

func TestView_MarksCurrent(t *testing.T) {
	m := New()
	m.SetSize(30, 10)
	m.SetSources(sources(3))
	m.SetCurrent(1)

	view := ansi.Strip(m.View())

	if !strings.Contains(view, "▸ v02") {
		t.Errorf("current version not marked:\n%s", view)
	}
	if strings.Contains(view, "▸ v01") {
		t.Errorf("only the current version should be marked:\n%s", view)
	}
	if !strings.Contains(view, "3") || !strings.Contains(view, "v03") {
		t.Errorf("missing third row:\n%s", view)
	}
}

func TestView_Empty(t *testing.T) {
	m := New()
	m.SetSize(30, 6)

	if view := ansi.Strip(m.View()); !strings.Contains(view, "none configured") {
		t.Errorf("empty list should say so:\n%s", view)
	}
}

func TestView_FixedSize(t *testing.T) {
	m := New()
	m.SetSize(24, 8)
	m.SetSources([]playback.Source{{URL: strings.Repeat("long_name_", 8) + "_v12.mp4"}})
	m.SetCurrent(0)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 8 {
		t.Errorf("height = %d, want 8", len(lines))
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w != 24 {
			t.Errorf("line width = %d, want 24: %q", w, ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(m.View()), ".mp4") {
		t.Error("middle truncation should keep the extension")
	}
}

func TestSetCurrent_ScrollsIntoView(t *testing.T) {
	m := New()
	m.SetSize(30, 7) // 4 rows
	m.SetSources(sources(20))

	m.SetCurrent(15)

	if !strings.Contains(ansi.Strip(m.View()), "▸ v16") {
		t.Errorf("current row should be visible:\n%s", ansi.Strip(m.View()))
	}

	m.SetCurrent(0)
	if !strings.Contains(ansi.Strip(m.View()), "▸ v01") {
		t.Errorf("scrolling back up failed:\n%s", ansi.Strip(m.View()))
	}
}

func TestSetCurrent_OutOfRange(t *testing.T) {
	m := New()
	m.SetSources(sources(2))

	m.SetCurrent(5)

	if m.Current() != -1 {
		t.Errorf("Current() = %d, want -1", m.Current())
	}
}

func TestHandleMouse(t *testing.T) {
	m := New()
	m.SetSize(30, 10)
	m.SetSources(sources(3))

	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	tests := []struct {
		name   string
		msg    tea.MouseMsg
		x, y   int
		want   int
		wantOK bool
	}{
		{"first row", click, 5, 2, 0, true},
		{"third row", click, 5, 4, 2, true},
		{"title", click, 5, 1, -1, false},
		{"below last", click, 5, 6, -1, false},
		{"outside", click, 40, 2, -1, false},
		{"right button", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, 5, 2, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.HandleMouse(tt.msg, tt.x, tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("HandleMouse = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
