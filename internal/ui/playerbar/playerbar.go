// Package playerbar renders the review transport bar.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/reelcheck/internal/playback"
	"github.com/llehouerou/reelcheck/internal/ui"
	"github.com/llehouerou/reelcheck/internal/ui/render"
)

// Height is the total height of the bar: top border, content, bottom border.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Active     bool // a source has been requested
	Playing    bool
	Source     string
	Frame      int
	FrameCount int // 0 while the duration is unknown
	FrameRate  float64
	ShowStill  bool // frozen frame on screen during a switch
	Loop       bool
	Muted      bool
}

// NewState snapshots svc.
func NewState(svc playback.Service) State {
	pos := svc.Position()
	return State{
		Active:     svc.State().HasSource(),
		Playing:    svc.IsPlaying(),
		Source:     svc.CurrentSource().Label(),
		Frame:      pos.CurrentFrame(),
		FrameCount: pos.FrameCount(),
		FrameRate:  pos.FrameRate,
		ShowStill:  svc.ShowStill(),
		Loop:       svc.Loop(),
		Muted:      svc.Muted(),
	}
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0) // border and padding

	if !s.Active {
		content := mutedStyle().Render("no source: press tab or 1-9 to pick a version")
		return barStyle().Padding(0, 2).Width(max(width-2, 0)).Render(render.Truncate(content, innerWidth))
	}

	status := pauseSymbol
	if s.Playing {
		status = playSymbol
	}

	counter := humanize.Comma(int64(s.Frame))
	if s.FrameCount > 0 {
		counter += " / " + humanize.Comma(int64(s.FrameCount))
	} else {
		counter += " / ?"
	}
	timecode := render.Timecode(s.Frame, s.FrameRate)
	flags := renderFlags(s)

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	fixed := lipgloss.Width(status+"  ") + lipgloss.Width(counter) + lipgloss.Width(timecode) + sepWidth*3
	if flags != "" {
		fixed += lipgloss.Width(flags) + sepWidth
	}

	// The source name gets up to a third of what is left, the bar the rest.
	available := max(innerWidth-fixed, 0)
	nameWidth := min(lipgloss.Width(s.Source), max(available/3, 8))
	barWidth := available - nameWidth
	if barWidth < ui.MinProgressBarWidth {
		barWidth = 0
		nameWidth = available
	}

	var content strings.Builder
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(titleStyle().Render(render.TruncateMiddle(s.Source, nameWidth)))
	if barWidth > 0 {
		content.WriteString(separator)
		content.WriteString(RenderProgressBar(s.Frame, s.FrameCount, barWidth))
	}
	content.WriteString(separator)
	content.WriteString(metaStyle().Render(counter))
	content.WriteString(separator)
	content.WriteString(progressTimeStyle().Render(timecode))
	if flags != "" {
		content.WriteString(separator)
		content.WriteString(flags)
	}

	return barStyle().Padding(0, 2).Width(max(width-2, 0)).Render(content.String())
}

func renderFlags(s State) string {
	var parts []string
	if s.ShowStill {
		parts = append(parts, stillStyle().Render("STILL"))
	}
	if s.Loop {
		parts = append(parts, flagStyle().Render("LOOP"))
	}
	if s.Muted {
		parts = append(parts, flagStyle().Render("MUTE"))
	}
	return strings.Join(parts, " ")
}

// FrameLabel formats "frame N of M" for status lines.
func FrameLabel(frame, frameCount int) string {
	if frameCount <= 0 {
		return fmt.Sprintf("frame %s", humanize.Comma(int64(frame)))
	}
	return fmt.Sprintf("frame %s of %s", humanize.Comma(int64(frame)), humanize.Comma(int64(frameCount)))
}
