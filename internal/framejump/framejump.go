// Package framejump applies one-shot "go to frame N" commands issued from
// outside the player, such as a frame reference clicked elsewhere in the app.
package framejump

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/position"
	"github.com/llehouerou/reelcheck/internal/seek"
)

// Channel holds at most one outstanding jump command.
type Channel struct {
	seek    *seek.Coordinator
	tracker *position.Tracker
	log     logrus.FieldLogger
	cmd     mo.Option[int]
}

// New creates an empty channel.
func New(sc *seek.Coordinator, tracker *position.Tracker, log logrus.FieldLogger) *Channel {
	return &Channel{
		seek:    sc,
		tracker: tracker,
		log:     log,
		cmd:     mo.None[int](),
	}
}

// Submit replaces the outstanding command with frame and evaluates it.
func (c *Channel) Submit(frame int) bool {
	c.cmd = mo.Some(frame)
	return c.Evaluate()
}

// Pending returns the outstanding command, if any.
func (c *Channel) Pending() mo.Option[int] {
	return c.cmd
}

// Evaluate applies the outstanding command and clears it. A command that
// arrives before frame rate and duration are known is dropped, not queued.
// Reports whether a jump was applied.
func (c *Channel) Evaluate() bool {
	frame, ok := c.cmd.Get()
	if !ok {
		return false
	}
	c.cmd = mo.None[int]()

	pos := c.tracker.Position()
	if !pos.Known() {
		c.log.WithField("frame", frame).Debug("dropping frame jump, duration unknown")
		return false
	}

	frame = lo.Clamp(frame, 0, pos.FrameCount())
	t := position.FrameTime(frame, pos.FrameRate)
	c.tracker.SetCurrentTime(t)
	c.seek.SeekToTime(t)
	return true
}
