package app

import (
	"errors"

	"github.com/llehouerou/reelcheck/internal/app/handler"
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/keymap"
	"github.com/llehouerou/reelcheck/internal/playback"
)

// handleGlobalKeys handles help.
func (m *Model) handleGlobalKeys(a keymap.Action, _ string) handler.Result {
	if a != keymap.ActionHelp {
		return handler.NotHandled
	}
	return handler.Handled(m.Popups.ShowHelp())
}

// handlePlaybackKeys handles play/pause and the review toggles.
func (m *Model) handlePlaybackKeys(a keymap.Action, _ string) handler.Result {
	switch a { //nolint:exhaustive // only handling playback actions
	case keymap.ActionPlayPause:
		m.report(errmsg.OpPlaybackStart, m.Service.Toggle())
		return handler.HandledNoCmd
	case keymap.ActionToggleLoop:
		on := !m.Service.Loop()
		if err := m.Service.SetLoop(on); err != nil {
			m.report(errmsg.OpPrefsSave, err)
			return handler.HandledNoCmd
		}
		m.SavePrefs()
		return handler.Handled(m.setStatus("loop "+onOff(on), StatusInfo))
	case keymap.ActionToggleMute:
		on := !m.Service.Muted()
		if err := m.Service.SetMuted(on); err != nil {
			m.report(errmsg.OpPrefsSave, err)
			return handler.HandledNoCmd
		}
		m.SavePrefs()
		return handler.Handled(m.setStatus("mute "+onOff(on), StatusInfo))
	case keymap.ActionToggleOverlay:
		m.Overlay = !m.Overlay
		m.SavePrefs()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// handleFrameKeys handles stepping, scrubbing to the ends and the jump prompt.
func (m *Model) handleFrameKeys(a keymap.Action, _ string) handler.Result {
	switch a { //nolint:exhaustive // only handling frame actions
	case keymap.ActionStepForward:
		m.report(errmsg.OpPlaybackSeek, m.Service.StepFrame(1))
	case keymap.ActionStepBack:
		m.report(errmsg.OpPlaybackSeek, m.Service.StepFrame(-1))
	case keymap.ActionStepForwardLong:
		m.report(errmsg.OpPlaybackSeek, m.Service.StepFrame(keymap.StepLong))
	case keymap.ActionStepBackLong:
		m.report(errmsg.OpPlaybackSeek, m.Service.StepFrame(-keymap.StepLong))
	case keymap.ActionFirstFrame:
		m.report(errmsg.OpPlaybackSeek, m.Service.Scrub(0))
	case keymap.ActionLastFrame:
		pos := m.Service.Position()
		if !pos.Known() {
			return handler.Handled(m.setStatus("duration not known yet", StatusWarning))
		}
		m.report(errmsg.OpPlaybackSeek, m.Service.Scrub(pos.FrameCount()))
	case keymap.ActionJumpToFrame:
		pos := m.Service.Position()
		if !pos.Known() {
			return handler.Handled(m.setStatus("duration not known yet", StatusWarning))
		}
		return handler.Handled(m.Popups.ShowFramePrompt(pos.CurrentFrame(), pos.FrameCount(), pos.FrameRate))
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

// handleSourceKeys handles version switching.
func (m *Model) handleSourceKeys(a keymap.Action, key string) handler.Result {
	var err error
	switch a { //nolint:exhaustive // only handling source actions
	case keymap.ActionNextSource:
		err = m.Service.NextSource()
	case keymap.ActionPrevSource:
		err = m.Service.PreviousSource()
	case keymap.ActionSelectSource:
		index, ok := m.Keys.SourceIndex(key)
		if !ok {
			return handler.NotHandled
		}
		err = m.Service.SelectSource(index)
	default:
		return handler.NotHandled
	}

	if errors.Is(err, playback.ErrSourceIndex) {
		return handler.Handled(m.setStatus("no such version", StatusWarning))
	}
	m.report(errmsg.OpSourceSwitch, err)
	return handler.HandledNoCmd
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
