// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// BorderWidth is the horizontal space consumed by a standard panel border.
	BorderWidth = 2

	// HeaderHeight is the title line above the panels.
	HeaderHeight = 1

	// SourceListWidthDivisor gives the version list 1/SourceListWidthDivisor
	// of the screen width.
	SourceListWidthDivisor = 3

	// MinSourceListWidth keeps version names readable on narrow terminals.
	MinSourceListWidth = 24

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5
)
