//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"math"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/playback"
)

const noTrackObjectPath = "/org/mpris/MediaPlayer2/TrackList/NoTrack"

var (
	_ types.OrgMprisMediaPlayer2Adapter                 = (*rootAdapter)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapter           = (*playerAdapter)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapterLoopStatus = (*playerAdapter)(nil)
)

// Adapter connects playback.Service to MPRIS over D-Bus.
type Adapter struct {
	service playback.Service
	server  *server.Server
	events  *events.EventHandler
	sub     *playback.Subscription
	log     logrus.FieldLogger
	done    chan struct{}
	failed  atomic.Bool // no D-Bus connection
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service, log logrus.FieldLogger) (*Adapter, error) {
	a := &Adapter{
		service: service,
		log:     log,
		done:    make(chan struct{}),
	}

	a.server = server.NewServer("reelcheck", &rootAdapter{}, &playerAdapter{service: service})
	a.events = events.NewEventHandler(a.server)
	a.sub = service.Subscribe()

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			a.failed.Store(true)
			a.log.WithError(err).Warn("mpris unavailable")
		}
	}()
	go a.watch()

	return a, nil
}

// watch forwards service events as D-Bus property changes.
func (a *Adapter) watch() {
	for {
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case <-a.sub.StateChanged:
			if !a.failed.Load() {
				a.events.Player.OnPlayPause()
			}
		case <-a.sub.SourceChanged:
			if !a.failed.Load() {
				a.events.Player.OnTitle()
			}
		case <-a.sub.MetadataLoaded:
			if !a.failed.Load() {
				a.events.Player.OnTitle()
			}
		case <-a.sub.PositionChanged:
		case <-a.sub.StillChanged:
		case <-a.sub.Stalled:
		case <-a.sub.Error:
		}
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Reelcheck", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4", "video/quicktime", "video/webm", "video/x-matroska"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	return p.service.NextSource()
}

func (p *playerAdapter) Previous() error {
	return p.service.PreviousSource()
}

func (p *playerAdapter) Pause() error {
	return p.service.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.service.Toggle()
}

// Stop pauses; a review session has no stopped state to return to.
func (p *playerAdapter) Stop() error {
	return p.service.Pause()
}

func (p *playerAdapter) Play() error {
	return p.service.Play()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	current := seconds(p.service.Position().CurrentTime)
	return p.service.SeekTo(current + time.Duration(offset)*time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.service.SeekTo(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(uri string) error {
	return p.service.SetSource(uri)
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.service.State()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	src := p.service.CurrentSource()
	if src.URL == "" {
		return types.Metadata{TrackId: dbus.ObjectPath(noTrackObjectPath)}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(src.URL)),
		Title:   src.Label(),
	}
	if md, ok := p.service.Metadata(); ok {
		meta.Length = types.Microseconds(seconds(md.Duration).Microseconds())
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	if p.service.Muted() {
		return 0, nil
	}
	return 1.0, nil
}

// SetVolume maps zero to mute and anything else to unmute.
func (p *playerAdapter) SetVolume(v float64) error {
	return p.service.SetMuted(v <= 0)
}

func (p *playerAdapter) Position() (int64, error) {
	return seconds(p.service.Position().CurrentTime).Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.service.Sources()) > 1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return len(p.service.Sources()) > 1, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.CurrentSource().URL != "", nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.service.Loop() {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Playlist looping has no meaning for a single clip and maps to Track.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	return p.service.SetLoop(status != types.LoopStatusNone)
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateStopped:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

// seconds converts media time to a Duration. Unknown durations are zero.
func seconds(s float64) time.Duration {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

func formatTrackID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("/org/reelcheck/Source/%x", h.Sum64())
}
