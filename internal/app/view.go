package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/ui"
	"github.com/llehouerou/reelcheck/internal/ui/headerbar"
	"github.com/llehouerou/reelcheck/internal/ui/layout"
	"github.com/llehouerou/reelcheck/internal/ui/playerbar"
	"github.com/llehouerou/reelcheck/internal/ui/render"
	"github.com/llehouerou/reelcheck/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	header := headerbar.Render(m.Service.CurrentSource().Label(), m.Width)
	bar := playerbar.Render(playerbar.NewState(m.Service), m.Width)
	view := header + "\n" + m.renderBody() + "\n" + bar

	return m.Popups.RenderOverlay(view)
}

func (m Model) renderBody() string {
	narrow := layout.IsNarrowMode(m.Width)
	content := layout.ContentHeight(m.Height, layout.ContentOpts{
		HeaderHeight:    headerbar.Height,
		PlayerBarHeight: playerbar.Height,
	})
	n := len(m.Service.Sources())

	viewer := m.renderViewer(
		layout.ViewerWidth(m.Width, narrow),
		layout.ViewerHeight(content, n, narrow),
	)
	list := m.Sources.View()

	if narrow {
		return lipgloss.JoinVertical(lipgloss.Left, list, viewer)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, viewer)
}

// renderViewer draws the panel describing what is on screen.
func (m Model) renderViewer(width, height int) string {
	if width < 4 || height < ui.BorderHeight+1 {
		return ""
	}
	inner := width - 2
	rows := height - ui.BorderHeight
	s := styles.T().S()

	line := func(style lipgloss.Style, text string) string {
		return style.Render(render.TruncateAndPad(text, inner))
	}

	var lines []string
	src := m.Service.CurrentSource()
	if src.URL == "" {
		lines = append(lines, line(s.Muted, "No version selected"))
	} else {
		lines = append(lines, line(s.Title, src.Label()))
		if src.Name != "" {
			lines = append(lines, line(s.Subtle, src.URL))
		}
	}

	if m.Service.ShowStill() {
		lines = append(lines, "", line(s.Warning.Bold(true), "■ holding last frame while the next version loads"))
	}

	if md, ok := m.Service.Metadata(); ok {
		pos := m.Service.Position()
		lines = append(lines, "", line(s.Base, describeSize(md.Dimensions, md.ActualDimensions)))
		if pos.Known() {
			lines = append(lines, line(s.Muted, fmt.Sprintf("%s frames @ %s fps · %ss",
				humanize.Comma(int64(pos.FrameCount())),
				humanize.FtoaWithDigits(pos.FrameRate, 3),
				humanize.FtoaWithDigits(pos.Duration, 3))))
		}
	}

	if m.Overlay && src.URL != "" {
		pos := m.Service.Position()
		frame := pos.CurrentFrame()
		lines = append(lines, "",
			line(s.Timecode, render.Timecode(frame, pos.FrameRate)),
			line(s.Base, playerbar.FrameLabel(frame, pos.FrameCount())))
	}

	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	if m.Status != "" {
		lines[rows-1] = line(m.statusStyle(), m.Status)
	}
	for i, l := range lines {
		if l == "" {
			lines[i] = strings.Repeat(" ", inner)
		}
	}

	return s.Panel.Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) statusStyle() lipgloss.Style {
	s := styles.T().S()
	switch m.StatusLevel {
	case StatusWarning:
		return s.Warning
	case StatusError:
		return s.Error
	default:
		return s.Success
	}
}

func describeSize(video, display engine.Dimensions) string {
	if video.Width == 0 || video.Height == 0 {
		return "size unknown"
	}
	out := fmt.Sprintf("%d×%d", video.Width, video.Height)
	if display != video && display.Width > 0 && display.Height > 0 {
		out += fmt.Sprintf(" (displayed %d×%d)", display.Width, display.Height)
	}
	return out
}
