package render

import (
	"fmt"
	"math"
)

// Timecode formats frame as HH:MM:SS:FF at the nominal (rounded) rate.
func Timecode(frame int, frameRate float64) string {
	fps := int(math.Round(frameRate))
	if fps <= 0 || frame < 0 {
		return "--:--:--:--"
	}
	f := frame % fps
	s := frame / fps
	return fmt.Sprintf("%02d:%02d:%02d:%02d", s/3600, s/60%60, s%60, f)
}
