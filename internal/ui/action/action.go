// Package action defines how popups report results to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a result reported by a popup. ActionType names it in logs.
type Action interface {
	ActionType() string
}

// Msg wraps an Action with the name of the popup that produced it.
type Msg struct {
	Source string // "helpbindings", "frameprompt"
	Action Action
}

// String implements fmt.Stringer for debug logging.
func (m Msg) String() string {
	if m.Action == nil {
		return m.Source
	}
	return m.Source + ":" + m.Action.ActionType()
}

var _ tea.Msg = Msg{}
