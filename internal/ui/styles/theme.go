package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the review screen palette and its derived styles.
type Theme struct {
	Primary   lipgloss.Color // current version, progress, keys
	Secondary lipgloss.Color // flags and section headers

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color // viewer frame while a version is shown

	Playing lipgloss.Color
	Still   lipgloss.Color // held frame while the next version loads
	Error   lipgloss.Color

	styles *Styles
}

// Styles are built once per theme.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Current lipgloss.Style // version on screen
	Key     lipgloss.Style // key names in help
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Panel   lipgloss.Style // rounded border panel

	Timecode lipgloss.Style // frame overlay and transport readout
	Flag     lipgloss.Style // STILL / LOOP / MUTE markers
	Filled   lipgloss.Style // elapsed part of the progress bar
	Empty    lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Playing: lipgloss.Color("#42b883"),
	Still:   lipgloss.Color("#f1a208"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	accent := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Current: accent,
		Key:     accent,
		Success: lipgloss.NewStyle().Foreground(t.Playing),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Still),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Timecode: base.Bold(true),
		Flag:     lipgloss.NewStyle().Foreground(t.Secondary),
		Filled:   lipgloss.NewStyle().Foreground(t.Primary),
		Empty:    lipgloss.NewStyle().Foreground(t.FgSubtle),
	}
}
