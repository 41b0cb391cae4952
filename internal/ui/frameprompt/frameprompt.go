// Package frameprompt provides the jump-to-frame input popup.
package frameprompt

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/llehouerou/reelcheck/internal/ui"
	"github.com/llehouerou/reelcheck/internal/ui/action"
	"github.com/llehouerou/reelcheck/internal/ui/popup"
	"github.com/llehouerou/reelcheck/internal/ui/render"
	"github.com/llehouerou/reelcheck/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Result is sent when the prompt closes.
type Result struct {
	Frame    int  // clamped to the clip
	Canceled bool // True if user pressed Escape
}

// ActionType implements action.Action.
func (r Result) ActionType() string { return "frameprompt.result" }

// ActionMsg creates an action.Msg for a frameprompt action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "frameprompt", Action: a}
}

// Model is the frame jump prompt.
type Model struct {
	ui.Base
	input      textinput.Model
	current    int
	frameCount int
	frameRate  float64
	err        error
}

// New creates a prompt positioned at current in a clip of frameCount frames.
func New(current, frameCount int, frameRate float64) Model {
	ti := textinput.New()
	ti.Placeholder = "frame, +/-offset or HH:MM:SS:FF"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 32

	return Model{
		input:      ti,
		current:    current,
		frameCount: frameCount,
		frameRate:  frameRate,
	}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return ActionMsg(Result{Canceled: true}) }
		case "enter":
			frame, err := ParseTarget(m.input.Value(), m.current, m.frameRate)
			if err != nil {
				m.err = err
				return m, nil
			}
			frame = lo.Clamp(frame, 0, max(m.frameCount, 0))
			return m, func() tea.Msg { return ActionMsg(Result{Frame: frame}) }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	s := styles.T().S()

	title := s.Title.Render("Jump to frame")
	info := s.Muted.Render(fmt.Sprintf("at %s of %s  (%s)",
		humanize.Comma(int64(m.current)),
		humanize.Comma(int64(m.frameCount)),
		render.Timecode(m.current, m.frameRate)))

	hint := s.Subtle.Render("Enter: jump, Esc: cancel")
	if m.err != nil {
		hint = s.Error.Render(m.err.Error())
	}

	return title + "\n" + info + "\n\n" + m.input.View() + "\n\n" + hint
}
