// Package popupctl tracks the modal popups of the review screen.
package popupctl

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reelcheck/internal/ui/frameprompt"
	"github.com/llehouerou/reelcheck/internal/ui/helpbindings"
	"github.com/llehouerou/reelcheck/internal/ui/popup"
	"github.com/llehouerou/reelcheck/internal/ui/styles"
)

// Type identifies a popup.
type Type int

const (
	None Type = iota
	Help
	FramePrompt
	Error
)

// Priority orders popups for input, first wins.
var Priority = []Type{Error, Help, FramePrompt}

// RenderOrder draws popups bottom to top.
var RenderOrder = []Type{FramePrompt, Help, Error}

// Manager manages all modal popups and overlays.
type Manager struct {
	popups   map[Type]popup.Popup
	errorMsg string
	width    int
	height   int
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{popups: make(map[Type]popup.Popup)}
}

// SetSize updates the dimensions for popup rendering.
func (p *Manager) SetSize(width, height int) {
	p.width = width
	p.height = height
	for _, pop := range p.popups {
		pop.SetSize(width, height)
	}
}

// IsVisible returns true if the specified popup type is visible.
func (p *Manager) IsVisible(t Type) bool {
	switch t {
	case None:
		return false
	case Error:
		return p.errorMsg != ""
	case Help, FramePrompt:
		return p.popups[t] != nil
	}
	return false
}

// ActivePopup returns which popup is currently active (highest priority).
func (p *Manager) ActivePopup() Type {
	for _, t := range Priority {
		if p.IsVisible(t) {
			return t
		}
	}
	return None
}

// Show displays a popup of the given type.
func (p *Manager) Show(t Type, pop popup.Popup) tea.Cmd {
	pop.SetSize(p.width, p.height)
	p.popups[t] = pop
	return pop.Init()
}

// Hide hides the specified popup type.
func (p *Manager) Hide(t Type) {
	switch t {
	case None:
	case Error:
		p.errorMsg = ""
	case Help, FramePrompt:
		delete(p.popups, t)
	}
}

// ShowHelp displays the key bindings popup.
func (p *Manager) ShowHelp() tea.Cmd {
	help := helpbindings.New()
	return p.Show(Help, &help)
}

// ShowFramePrompt displays the jump-to-frame prompt.
func (p *Manager) ShowFramePrompt(current, frameCount int, frameRate float64) tea.Cmd {
	prompt := frameprompt.New(current, frameCount, frameRate)
	return p.Show(FramePrompt, &prompt)
}

// ShowError displays an error message popup.
func (p *Manager) ShowError(msg string) {
	p.errorMsg = msg
}

// ErrorMsg returns the current error message.
func (p *Manager) ErrorMsg() string {
	return p.errorMsg
}

// HandleMsg routes a message to the active popup.
// Returns (handled, cmd) where handled is true if a popup consumed it.
func (p *Manager) HandleMsg(msg tea.Msg) (bool, tea.Cmd) {
	_, isKey := msg.(tea.KeyMsg)

	// Error popup: dismiss on any key
	if p.errorMsg != "" {
		if isKey {
			p.errorMsg = ""
		}
		return isKey, nil
	}

	active := p.ActivePopup()
	pop := p.popups[active]
	if pop == nil {
		return false, nil
	}

	updated, cmd := pop.Update(msg)
	p.popups[active] = updated
	return isKey, cmd
}

// RenderOverlay renders active popup(s) on top of the base view.
func (p *Manager) RenderOverlay(base string) string {
	for _, t := range RenderOrder {
		if !p.IsVisible(t) {
			continue
		}

		var content string
		if t == Error {
			content = p.renderError()
		} else {
			content = p.popups[t].View()
		}
		if content == "" {
			continue
		}
		base = popup.Compose(base, popup.RenderBordered(content, p.width, p.height), p.width)
	}
	return base
}

func (p *Manager) renderError() string {
	s := styles.T().S()
	var b strings.Builder
	b.WriteString(s.Error.Bold(true).Render("Error"))
	b.WriteString("\n\n")
	b.WriteString(s.Base.Render(p.errorMsg))
	b.WriteString("\n\n")
	b.WriteString(s.Subtle.Render("Press any key to dismiss"))
	return b.String()
}
