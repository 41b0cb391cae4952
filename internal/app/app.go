// Package app is the review TUI: a version list, a viewer panel and the
// transport bar, driven by a playback service.
package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/app/popupctl"
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/keymap"
	"github.com/llehouerou/reelcheck/internal/notify"
	"github.com/llehouerou/reelcheck/internal/playback"
	"github.com/llehouerou/reelcheck/internal/state"
	"github.com/llehouerou/reelcheck/internal/ui/sourcelist"
)

// Model is the root application model containing all state.
type Model struct {
	Service  playback.Service
	StateMgr state.Interface
	Keys     *keymap.Resolver
	Popups   *popupctl.Manager
	Sources  sourcelist.Model
	Log      logrus.FieldLogger
	Alerts   *notify.Alerts

	playbackSub *playback.Subscription

	// Overlay shows the frame/timecode readout in the viewer.
	Overlay bool

	Status        string
	StatusLevel   StatusLevel
	statusVersion int

	Width  int
	Height int
}

// Options configures New.
type Options struct {
	Service  playback.Service
	StateMgr state.Interface
	Log      logrus.FieldLogger
	// Alerts receives stall and error notifications. Nil drops them.
	Alerts *notify.Alerts

	// Restore reopens the last reviewed source at its saved frame when no
	// source was given on the command line.
	Restore bool
}

// New creates the model, applies saved preferences and, if requested,
// restores the last session.
func New(opts Options) Model {
	m := Model{
		Service:  opts.Service,
		StateMgr: opts.StateMgr,
		Keys:     keymap.NewResolver(keymap.All),
		Popups:   popupctl.New(),
		Sources:  sourcelist.New(),
		Log:      opts.Log,
		Alerts:   notify.NewAlerts(nil),
		Overlay:  true,
	}
	if opts.Alerts != nil {
		m.Alerts = opts.Alerts
	}
	m.Sources.SetSources(opts.Service.Sources())
	m.playbackSub = opts.Service.Subscribe()

	m.applyPrefs()
	if opts.Restore {
		m.restoreSession()
	}
	return m
}

func (m *Model) applyPrefs() {
	prefs, err := m.StateMgr.GetPrefs()
	if err != nil {
		m.Log.WithError(err).Warn("prefs unavailable, using defaults")
		m.setStatus(errmsg.Format(errmsg.OpPrefsLoad, err), StatusError)
		prefs = state.DefaultPrefs
	}
	m.Overlay = prefs.Overlay
	if prefs.Loop {
		m.report(errmsg.OpPrefsLoad, m.Service.SetLoop(true))
	}
	if prefs.Muted {
		m.report(errmsg.OpPrefsLoad, m.Service.SetMuted(true))
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.WatchServiceEvents()}
	if m.Status != "" {
		cmds = append(cmds, StatusClearCmd(m.statusVersion))
	}
	return tea.Batch(cmds...)
}

// setStatus shows msg on the status line and returns the command that
// clears it.
func (m *Model) setStatus(msg string, level StatusLevel) tea.Cmd {
	m.statusVersion++
	m.Status = msg
	m.StatusLevel = level
	return StatusClearCmd(m.statusVersion)
}

// report shows a failed command in the error popup. Commands failing
// because the service is shutting down are ignored.
func (m *Model) report(op errmsg.Op, err error) {
	if err == nil || errors.Is(err, playback.ErrClosed) {
		return
	}
	m.Log.WithError(err).Warn(string(op))
	m.Popups.ShowError(errmsg.Format(op, err))
}

// alert shows a desktop notification. Failures only reach the log.
func (m *Model) alert(n notify.Notification) {
	if err := m.Alerts.Send(n); err != nil {
		m.Log.WithError(err).Debug("desktop notification failed")
	}
}
