// Package helpbindings provides a scrollable popup listing key bindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/llehouerou/reelcheck/internal/keymap"
	"github.com/llehouerou/reelcheck/internal/ui"
	"github.com/llehouerou/reelcheck/internal/ui/action"
	"github.com/llehouerou/reelcheck/internal/ui/popup"
	"github.com/llehouerou/reelcheck/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"frames":   "Frames",
	"sources":  "Versions",
}

// keyLabels shortens key names for display.
var keyLabels = map[string]string{
	" ":           "space",
	"shift+right": "S-right",
	"shift+left":  "S-left",
	"shift+tab":   "S-tab",
}

// Close asks the owner to dismiss the help popup.
type Close struct{}

func (Close) ActionType() string { return "helpbindings.close" }

// ActionMsg wraps a helpbindings action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "helpbindings", Action: a}
}

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	lines        []string
	scrollOffset int
}

// New creates a help popup listing every binding in keymap.Contexts order.
func New() Model {
	return Model{lines: buildLines(keymap.All)}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
	case "k", "up":
		m.scrollOffset = max(m.scrollOffset-1, 0)
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.Fits(1, 1) {
		return ""
	}

	end := min(m.scrollOffset+m.visibleHeight(), len(m.lines))
	visible := m.lines[m.scrollOffset:end]

	footer := "?/esc close"
	if m.maxScroll() > 0 {
		footer = "j/k scroll · ?/esc close"
	}

	s := styles.T().S()
	var b strings.Builder
	b.WriteString(s.Title.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(visible, "\n"))
	b.WriteString("\n\n")
	b.WriteString(s.Subtle.Render(footer))
	return b.String()
}

func buildLines(bindings []keymap.Binding) []string {
	s := styles.T().S()
	header := lipgloss.NewStyle().Foreground(styles.T().Secondary).Bold(true)

	keyStr := func(b keymap.Binding) string {
		keys := lo.Map(b.Keys, func(k string, _ int) string {
			if label, ok := keyLabels[k]; ok {
				return label
			}
			return k
		})
		if b.Action == keymap.ActionSelectSource {
			return "1-9"
		}
		return strings.Join(keys, ", ")
	}
	keyWidth := lo.Max(lo.Map(bindings, func(b keymap.Binding, _ int) int {
		return lipgloss.Width(keyStr(b))
	}))

	var lines []string
	for _, ctx := range keymap.Contexts {
		group := lo.Filter(bindings, func(b keymap.Binding, _ int) bool { return b.Context == ctx })
		if len(group) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			header.Render(categoryLabels[ctx]),
			s.Subtle.Render(strings.Repeat("─", keyWidth+20)),
		)
		for _, b := range group {
			k := keyStr(b)
			lines = append(lines,
				s.Key.Render(k+strings.Repeat(" ", keyWidth-lipgloss.Width(k)))+"  "+s.Base.Render(b.Description))
		}
	}
	return lines
}

func (m Model) visibleHeight() int {
	// Leave room for popup chrome (title, footer, borders, padding)
	return max(m.Height()-10, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}
