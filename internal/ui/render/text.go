// Package render provides text rendering utilities for TUI components.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (except tab) and invalid UTF-8 bytes.
// Source names come from config files and URLs and are shown verbatim.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			i++
			continue
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// needsSanitize returns true if the string contains bytes that need sanitizing.
func needsSanitize(s string) bool {
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' {
			return true
		}
		if b == 0x7f || b >= 0x80 {
			// Non-ASCII: let Sanitize decide.
			return !utf8.ValidString(s) || strings.ContainsFunc(s, func(r rune) bool {
				return r == '\u00a0' || (r != '\t' && unicode.IsControl(r))
			})
		}
	}
	return false
}

// Truncate shortens a string to fit within maxWidth, adding "..." if truncated.
// Uses runewidth for proper handling of wide characters.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateMiddle keeps both ends of s and elides the middle, so that version
// suffixes and extensions stay visible: "shot010_comp…_v12.mp4".
func TruncateMiddle(s string, maxWidth int) string {
	s = Sanitize(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	tail := (maxWidth - 1) / 2
	head := maxWidth - 1 - tail

	runes := []rune(s)
	var end []rune
	w := 0
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > tail {
			break
		}
		w += rw
		end = append([]rune{runes[i]}, end...)
	}
	return runewidth.Truncate(s, head, "") + "…" + string(end)
}

// TruncateEllipsis truncates a string with a single-cell ellipsis.
func TruncateEllipsis(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// Pad fills a string with spaces to reach the specified width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad truncates a string if necessary, then pads to the exact width.
func TruncateAndPad(s string, width int) string {
	return Pad(TruncateEllipsis(s, width), width)
}

// Row creates a row with left and right aligned content separated by spaces.
// Styled input is measured by its visible width.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
