package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 4 * time.Second

// WatchServiceEvents returns a command that waits for playback service events.
// It listens on all subscription channels and converts events to tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	sub := m.playbackSub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg{Previous: e.Previous, Current: e.Current}
		case e := <-sub.SourceChanged:
			return ServiceSourceChangedMsg{Current: e.Current, Index: e.Index}
		case e := <-sub.PositionChanged:
			return ServicePositionMsg{
				Frame:      e.Position.CurrentFrame(),
				FrameCount: e.Position.FrameCount(),
				Playing:    e.Position.IsPlaying,
			}
		case e := <-sub.MetadataLoaded:
			return ServiceMetadataMsg(e)
		case e := <-sub.StillChanged:
			return ServiceStillMsg{ShowStill: e.ShowStill}
		case e := <-sub.Stalled:
			return ServiceStallMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// StatusClearCmd returns a command that sends StatusClearMsg after the
// status timeout.
func StatusClearCmd(version int) tea.Cmd {
	return tea.Tick(statusTimeout, func(_ time.Time) tea.Msg {
		return StatusClearMsg{Version: version}
	})
}
