package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reelcheck/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

func barStyle() lipgloss.Style {
	return styles.T().S().Panel
}

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func mutedStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func metaStyle() lipgloss.Style {
	return styles.T().S().Base
}

func progressTimeStyle() lipgloss.Style {
	return styles.T().S().Timecode
}

func progressBarFilled() lipgloss.Style {
	return styles.T().S().Filled
}

func progressBarEmpty() lipgloss.Style {
	return styles.T().S().Empty
}

func stillStyle() lipgloss.Style {
	return styles.T().S().Warning.Bold(true)
}

func flagStyle() lipgloss.Style {
	return styles.T().S().Flag
}
