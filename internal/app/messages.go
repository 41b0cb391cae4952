package app

import "github.com/llehouerou/reelcheck/internal/playback"

// ServiceStateChangedMsg is sent when playback state changes.
type ServiceStateChangedMsg struct {
	Previous playback.State
	Current  playback.State
}

// ServiceSourceChangedMsg is sent when a different source is requested.
type ServiceSourceChangedMsg struct {
	Current playback.Source
	Index   int
}

// ServicePositionMsg is sent for each reported position.
type ServicePositionMsg struct {
	Frame      int
	FrameCount int
	Playing    bool
}

// ServiceMetadataMsg is sent when the requested source's metadata loads.
type ServiceMetadataMsg playback.MetadataChange

// ServiceStillMsg is sent when the frozen frame is shown or hidden.
type ServiceStillMsg struct {
	ShowStill bool
}

// ServiceStallMsg is sent when a source never became playable.
type ServiceStallMsg playback.StallEvent

// ServiceErrorMsg is sent when the service reports an error.
type ServiceErrorMsg playback.ErrorEvent

// ServiceClosedMsg is sent when the service subscription ends.
type ServiceClosedMsg struct{}

// StatusClearMsg clears the status line if Version is still current.
type StatusClearMsg struct {
	Version int
}

// StatusLevel selects the status line color.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusWarning
	StatusError
)
