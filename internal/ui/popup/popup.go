// Package popup provides modal overlays for the review screen.
package popup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/reelcheck/internal/ui/styles"
)

// Popup is a modal component drawn over the review screen. View returns the
// content only; RenderBordered adds the frame.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// RenderBordered wraps content in a rounded border and centers it on a
// screenW x screenH canvas.
func RenderBordered(content string, screenW, screenH int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(1, 2).
		MaxWidth(max(screenW, 0)).
		Render(content)
	return Center(box, screenW, screenH)
}

// Center places box in the middle of a termWidth x termHeight canvas. Lines
// above the box are blank so Compose leaves the base visible there.
func Center(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range lines {
		boxWidth = max(boxWidth, lipgloss.Width(line))
	}

	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := strings.Repeat(" ", max((termWidth-boxWidth)/2, 0))

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(padLeft)
		b.WriteString(line)
	}
	return b.String()
}

// Compose overlays popupView on base. On each overlay line, the span between
// the first and last visible character replaces the same columns of base.
// ANSI-aware.
func Compose(base, popupView string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, overlayLine := range strings.Split(popupView, "\n") {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(overlayLine)
		trimmed := strings.TrimLeft(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		startCol := len(plain) - len(trimmed) // leading spaces are one column each
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		prefix := ansi.Truncate(baseLine, startCol, "")
		if w := ansi.StringWidth(prefix); w < startCol {
			// A wide character straddled startCol.
			prefix += strings.Repeat(" ", startCol-w)
		}

		line := prefix + ansi.Cut(overlayLine, startCol, endCol)
		if endCol < width {
			suffix := ansi.TruncateLeft(baseLine, endCol, "")
			if w := ansi.StringWidth(suffix); w < width-endCol {
				// A wide character straddled endCol.
				suffix = strings.Repeat(" ", width-endCol-w) + suffix
			}
			line += suffix
		}
		baseLines[i] = line
	}

	return strings.Join(baseLines, "\n")
}
