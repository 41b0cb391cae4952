// Package layout provides pure functions for UI dimension calculations.
package layout

import "github.com/llehouerou/reelcheck/internal/ui"

// NarrowThreshold is the terminal width below which the version list is
// stacked above the viewer instead of beside it.
const NarrowThreshold = 80

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight    int
	PlayerBarHeight int
}

// ContentHeight calculates the height left for the version list and viewer.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	return max(windowHeight-opts.HeaderHeight-opts.PlayerBarHeight, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// SourceListWidth returns the version list width: a fixed share of the
// window side by side, the full width when stacked.
func SourceListWidth(windowWidth int, narrowMode bool) int {
	if narrowMode {
		return windowWidth
	}
	w := max(windowWidth/ui.SourceListWidthDivisor, ui.MinSourceListWidth)
	return min(w, windowWidth)
}

// ViewerWidth returns the width left for the viewer panel.
func ViewerWidth(windowWidth int, narrowMode bool) int {
	if narrowMode {
		return windowWidth
	}
	return windowWidth - SourceListWidth(windowWidth, narrowMode)
}

// SourceListHeight returns the version list height. When stacked it fits
// the sources (plus border and title) up to half of the content height.
func SourceListHeight(contentHeight, sourceCount int, narrowMode bool) int {
	if !narrowMode {
		return contentHeight
	}
	want := max(sourceCount, 1) + ui.BorderHeight + 1
	return min(want, contentHeight/2)
}

// ViewerHeight returns the viewer panel height.
func ViewerHeight(contentHeight, sourceCount int, narrowMode bool) int {
	if !narrowMode {
		return contentHeight
	}
	return contentHeight - SourceListHeight(contentHeight, sourceCount, narrowMode)
}

// PlayerBarRow calculates the 1-based row number where the player bar starts.
func PlayerBarRow(windowHeight, playerBarHeight int) int {
	return windowHeight - playerBarHeight + 1
}
