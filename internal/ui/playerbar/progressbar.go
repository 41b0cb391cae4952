package playerbar

import "strings"

// RenderProgressBar renders frame/frameCount as a width-cell bar.
// An unknown frame count renders an empty bar.
func RenderProgressBar(frame, frameCount, width int) string {
	if width <= 0 {
		return ""
	}
	var ratio float64
	if frameCount > 0 {
		ratio = float64(frame) / float64(frameCount)
	}
	filled := min(max(int(float64(width)*ratio), 0), width)

	return progressBarFilled().Render(strings.Repeat("━", filled)) +
		progressBarEmpty().Render(strings.Repeat("─", width-filled))
}
