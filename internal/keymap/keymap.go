// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding for documentation.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "frames", "sources"
}

// StepLong is how many frames the long step actions move.
const StepLong = 10

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionToggleLoop, []string{"r"}, "Toggle loop", "playback"},
	{ActionToggleMute, []string{"m"}, "Toggle mute", "playback"},
	{ActionToggleOverlay, []string{"o"}, "Toggle frame overlay", "playback"},

	// Frames
	{ActionStepForward, []string{"right", "l"}, "Next frame", "frames"},
	{ActionStepBack, []string{"left", "h"}, "Previous frame", "frames"},
	{ActionStepForwardLong, []string{"shift+right", "L"}, "Forward 10 frames", "frames"},
	{ActionStepBackLong, []string{"shift+left", "H"}, "Back 10 frames", "frames"},
	{ActionFirstFrame, []string{"home", "0"}, "First frame", "frames"},
	{ActionLastFrame, []string{"end", "$"}, "Last frame", "frames"},
	{ActionJumpToFrame, []string{"g", ":"}, "Jump to frame", "frames"},

	// Sources
	{ActionNextSource, []string{"tab", "j", "down"}, "Next version", "sources"},
	{ActionPrevSource, []string{"shift+tab", "k", "up"}, "Previous version", "sources"},
	{ActionSelectSource, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Select version", "sources"},
}

// Contexts lists binding contexts in help order.
var Contexts = []string{"global", "playback", "frames", "sources"}
