package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/app/handler"
	"github.com/llehouerou/reelcheck/internal/app/popupctl"
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/keymap"
	"github.com/llehouerou/reelcheck/internal/notify"
	"github.com/llehouerou/reelcheck/internal/playback"
	"github.com/llehouerou/reelcheck/internal/ui/action"
	"github.com/llehouerou/reelcheck/internal/ui/frameprompt"
	"github.com/llehouerou/reelcheck/internal/ui/headerbar"
	"github.com/llehouerou/reelcheck/internal/ui/helpbindings"
	"github.com/llehouerou/reelcheck/internal/ui/layout"
	"github.com/llehouerou/reelcheck/internal/ui/playerbar"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ResizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case action.Msg:
		return m.handleAction(msg)

	case ServiceStateChangedMsg:
		return m, m.WatchServiceEvents()

	case ServiceSourceChangedMsg:
		return m.handleSourceChanged(msg)

	case ServicePositionMsg:
		return m, m.WatchServiceEvents()

	case ServiceMetadataMsg:
		return m, m.WatchServiceEvents()

	case ServiceStillMsg:
		return m, m.WatchServiceEvents()

	case ServiceStallMsg:
		m.Log.WithFields(logrus.Fields{
			"source":  msg.Source,
			"elapsed": msg.Elapsed,
		}).Warn("showing source before it became playable")
		cmd := m.setStatus("gave up waiting for "+msg.Source+" after "+msg.Elapsed.String(), StatusWarning)
		m.alert(notify.Stalled(msg.Source, msg.Elapsed))
		return m, tea.Batch(cmd, m.WatchServiceEvents())

	case ServiceErrorMsg:
		text := playback.ErrorEvent(msg).Message()
		m.Popups.ShowError(text)
		m.alert(notify.Failed(text))
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, nil

	case StatusClearMsg:
		if msg.Version == m.statusVersion {
			m.Status = ""
		}
		return m, nil
	}

	// Anything else (cursor blink) belongs to the active popup.
	_, cmd := m.Popups.HandleMsg(msg)
	return m, cmd
}

// ResizeComponents propagates the window size to child components.
func (m *Model) ResizeComponents() {
	narrow := layout.IsNarrowMode(m.Width)
	content := layout.ContentHeight(m.Height, layout.ContentOpts{
		HeaderHeight:    headerbar.Height,
		PlayerBarHeight: playerbar.Height,
	})
	m.Sources.SetSize(
		layout.SourceListWidth(m.Width, narrow),
		layout.SourceListHeight(content, len(m.Service.Sources()), narrow),
	)
	m.Popups.SetSize(m.Width, m.Height)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ctrl+c quits even while a popup owns the keyboard.
	if key != "ctrl+c" {
		if handled, cmd := m.Popups.HandleMsg(msg); handled {
			return m, cmd
		}
	}

	act := m.Keys.Resolve(key)
	if act == keymap.ActionQuit {
		return m, tea.Quit
	}

	_, cmd := handler.Chain(act, key,
		m.handleGlobalKeys,
		m.handlePlaybackKeys,
		m.handleFrameKeys,
		m.handleSourceKeys,
	)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Popups.ActivePopup() != popupctl.None {
		return m, nil
	}
	onBar := msg.Y+1 >= layout.PlayerBarRow(m.Height, playerbar.Height)
	if onBar && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.report(errmsg.OpPlaybackStart, m.Service.Toggle())
		return m, nil
	}
	idx, ok := m.Sources.HandleMouse(msg, msg.X, msg.Y-headerbar.Height)
	if !ok {
		return m, nil
	}
	m.report(errmsg.OpSourceSwitch, m.Service.SelectSource(idx))
	return m, nil
}

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	m.Log.WithField("action", msg.String()).Debug("popup action")

	switch a := msg.Action.(type) {
	case helpbindings.Close:
		m.Popups.Hide(popupctl.Help)
	case frameprompt.Result:
		m.Popups.Hide(popupctl.FramePrompt)
		if a.Canceled {
			return m, nil
		}
		applied, err := m.Service.JumpToFrame(a.Frame)
		if err != nil {
			m.report(errmsg.OpFrameJump, err)
			return m, nil
		}
		if !applied {
			return m, m.setStatus("duration not known yet, jump dropped", StatusWarning)
		}
	}
	return m, nil
}

func (m Model) handleSourceChanged(msg ServiceSourceChangedMsg) (tea.Model, tea.Cmd) {
	m.Sources.SetCurrent(msg.Index)
	m.saveSession(msg.Current.URL)
	return m, m.WatchServiceEvents()
}
