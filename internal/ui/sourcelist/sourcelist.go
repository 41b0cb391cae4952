// Package sourcelist renders the panel of reviewable versions.
package sourcelist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reelcheck/internal/playback"
	"github.com/llehouerou/reelcheck/internal/ui"
	"github.com/llehouerou/reelcheck/internal/ui/render"
	"github.com/llehouerou/reelcheck/internal/ui/styles"
)

// scrollMargin keeps this many rows visible around the current version.
const scrollMargin = 1

// Model is the version list panel. It has no keyboard handling of its own:
// the current row follows the playback service.
type Model struct {
	ui.Base
	sources []playback.Source
	current int // -1 when the source is not in the list
	offset  int
}

// New creates an empty list.
func New() Model {
	return Model{current: -1}
}

// SetSources replaces the listed versions.
func (m *Model) SetSources(sources []playback.Source) {
	m.sources = sources
	if m.current >= len(sources) {
		m.current = -1
	}
	m.ensureVisible()
}

// SetCurrent marks index as the version on screen.
func (m *Model) SetCurrent(index int) {
	if index < 0 || index >= len(m.sources) {
		index = -1
	}
	m.current = index
	m.ensureVisible()
}

// Current returns the marked index, or -1.
func (m Model) Current() int {
	return m.current
}

// SetSize implements the ui size contract and rescrolls.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.ensureVisible()
}

// rows is the number of list rows inside the panel.
func (m Model) rows() int {
	return max(m.Height()-ui.BorderHeight-1, 0) // border and title
}

func (m *Model) ensureVisible() {
	height := m.rows()
	if height <= 0 || len(m.sources) == 0 {
		m.offset = 0
		return
	}
	if m.current >= 0 {
		if m.current < m.offset+scrollMargin {
			m.offset = m.current - scrollMargin
		}
		if m.current >= m.offset+height-scrollMargin {
			m.offset = m.current - height + scrollMargin + 1
		}
	}
	m.offset = min(max(m.offset, 0), max(len(m.sources)-height, 0))
}

// RowAt returns the version index under a click at panel-relative row y.
func (m Model) RowAt(y int) (int, bool) {
	idx := m.offset + y - 2 // top border and title
	if y < 2 || y-2 >= m.rows() || idx >= len(m.sources) {
		return -1, false
	}
	return idx, true
}

// HandleMouse maps a left click inside the panel to a version index. x and
// y are relative to the panel's top-left corner.
func (m Model) HandleMouse(msg tea.MouseMsg, x, y int) (int, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return -1, false
	}
	if x < 0 || x >= m.Width() {
		return -1, false
	}
	return m.RowAt(y)
}

// View renders the bordered panel.
func (m Model) View() string {
	if !m.Fits(ui.BorderWidth+2, ui.BorderHeight+1) {
		return ""
	}
	inner, innerHeight := m.Inner()
	s := styles.T().S()

	lines := []string{s.Title.Render(render.TruncateAndPad("Versions", inner))}
	if len(m.sources) == 0 {
		lines = append(lines, s.Muted.Render(render.TruncateAndPad("none configured", inner)))
	}

	end := min(m.offset+m.rows(), len(m.sources))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, inner))
	}
	for len(lines) < innerHeight {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	return s.Panel.Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(i, width int) string {
	s := styles.T().S()

	key := " "
	if i < 9 {
		key = fmt.Sprintf("%d", i+1)
	}
	marker := "  "
	style := s.Base
	if i == m.current {
		marker = "▸ "
		style = s.Current
	}

	prefix := key + " " + marker
	name := render.TruncateMiddle(m.sources[i].Label(), max(width-lipgloss.Width(prefix), 0))
	return s.Key.Render(key) + " " + style.Render(render.Pad(marker+name, width-2))
}
