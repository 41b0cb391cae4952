// Package headerbar renders the single-line title bar.
package headerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reelcheck/internal/ui/render"
	"github.com/llehouerou/reelcheck/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const title = "reelcheck"

// Render returns the header for the given width: the app title, the version
// on screen, and a help hint on the right.
func Render(source string, width int) string {
	if width < 20 {
		return ""
	}
	s := styles.T().S()

	left := styles.ApplyGradient(title, styles.T().Primary, styles.T().Secondary)
	right := s.Subtle.Render("? help")

	if source != "" {
		room := width - lipgloss.Width(left) - lipgloss.Width(right) - 5
		if room > 3 {
			left += s.Muted.Render(" │ ") + s.Base.Render(render.TruncateMiddle(source, room))
		}
	}

	return render.Row(left, right, width)
}
