// Package position keeps frame-granular playback position in sync with the engine.
package position

import "math"

// Position is a snapshot of playback position.
type Position struct {
	CurrentTime float64 // seconds
	Duration    float64 // seconds, NaN until known
	FrameRate   float64 // frames per second
	IsPlaying   bool
}

// CurrentFrame returns round(CurrentTime × FrameRate).
func (p Position) CurrentFrame() int {
	return FrameAt(p.CurrentTime, p.FrameRate)
}

// FrameCount returns round(Duration × FrameRate), or 0 while unknown.
func (p Position) FrameCount() int {
	if !p.Known() {
		return 0
	}
	return FrameAt(p.Duration, p.FrameRate)
}

// Known reports whether both frame rate and duration are available.
func (p Position) Known() bool {
	return p.FrameRate > 0 && ValidDuration(p.Duration)
}

// FrameAt converts seconds to the nearest frame index.
func FrameAt(t, frameRate float64) int {
	if frameRate <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return int(math.Round(t * frameRate))
}

// FrameTime converts a frame index to seconds.
func FrameTime(frame int, frameRate float64) float64 {
	if frameRate <= 0 {
		return 0
	}
	return float64(frame) / frameRate
}

// Snap rounds t to the nearest frame boundary.
func Snap(t, frameRate float64) float64 {
	if frameRate <= 0 {
		return t
	}
	return math.Round(t*frameRate) / frameRate
}

// ValidDuration reports whether d is a usable, finite, positive duration.
func ValidDuration(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d > 0
}

func sameTime(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}
