package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/reelcheck/internal/controller"
	"github.com/llehouerou/reelcheck/internal/seek"
	"github.com/llehouerou/reelcheck/internal/transition"
)

const appName = "reelcheck"

// Engine names.
const (
	EngineSim = "sim"
	EngineMpv = "mpv"
)

var (
	ErrInvalidFrameRate = errors.New("frame_rate must be positive")
	ErrInvalidEngine    = errors.New(`engine must be "sim" or "mpv"`)
	ErrInvalidSource    = errors.New("source url is required")
)

type Config struct {
	FrameRate float64 `koanf:"frame_rate"` // frames per second of the reviewed clip
	Engine    string  `koanf:"engine"`     // "sim" or "mpv"
	Mpris     bool    `koanf:"mpris"`      // expose the player over MPRIS
	Notify    bool    `koanf:"notify"`     // desktop notifications for stalls and errors

	Transition TransitionConfig `koanf:"transition"`
	Seek       SeekConfig       `koanf:"seek"`
	Mpv        MpvConfig        `koanf:"mpv"`
	Log        LogConfig        `koanf:"log"`

	Sources []SourceConfig `koanf:"sources"`
}

// TransitionConfig holds source transition timing, in milliseconds.
type TransitionConfig struct {
	DebounceMS int `koanf:"debounce_ms"` // default: 150
	TimeoutMS  int `koanf:"timeout_ms"`  // default: 3000
}

// SeekConfig holds seek tuning, in milliseconds.
type SeekConfig struct {
	EndEpsilonMS   int `koanf:"end_epsilon_ms"`   // default: 1
	PauseRecheckMS int `koanf:"pause_recheck_ms"` // default: 10
}

// MpvConfig holds libmpv engine settings.
type MpvConfig struct {
	Window      *bool   `koanf:"window"`       // open a video window (default: true)
	RefreshRate float64 `koanf:"refresh_rate"` // presented-frame sampling rate (default: 60)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level name (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/reelcheck/reelcheck.log
	JSON  bool   `koanf:"json"`
}

// SourceConfig is one reviewable version of the clip.
type SourceConfig struct {
	Name     string  `koanf:"name"`
	URL      string  `koanf:"url"`
	Duration float64 `koanf:"duration"` // seconds, sim engine only
	Width    int     `koanf:"width"`    // sim engine only
	Height   int     `koanf:"height"`   // sim engine only
	Hung     bool    `koanf:"hung"`     // sim engine only: never becomes playable
}

// Load reads the config files, then the explicit path if not empty.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg := &Config{
		FrameRate: 24,
		Engine:    EngineSim,
		Mpris:     true,
		Notify:    true,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, src := range cfg.Sources {
		cfg.Sources[i].URL = expandPath(src.URL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFrameRate, c.FrameRate)
	}
	switch c.Engine {
	case EngineSim, EngineMpv:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEngine, c.Engine)
	}
	for i, src := range c.Sources {
		if src.URL == "" {
			return fmt.Errorf("sources[%d]: %w", i, ErrInvalidSource)
		}
	}
	return nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/reelcheck/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ControllerConfig returns controller settings with defaults applied.
func (c *Config) ControllerConfig() controller.Config {
	return controller.Config{
		FrameRate: c.FrameRate,
		Transition: transition.Config{
			Debounce: millis(c.Transition.DebounceMS, transition.DefaultDebounce),
			Timeout:  millis(c.Transition.TimeoutMS, transition.DefaultTimeout),
		},
		Seek: seek.Config{
			EndEpsilon:   millis(c.Seek.EndEpsilonMS, seek.DefaultEndEpsilon),
			PauseRecheck: millis(c.Seek.PauseRecheckMS, seek.DefaultPauseRecheck),
		},
	}
}

// MpvWindow reports whether the mpv engine should open a window.
func (c *Config) MpvWindow() bool {
	return c.Mpv.Window == nil || *c.Mpv.Window
}

// LogFile returns the log file path with the default applied.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return expandPath(c.Log.File)
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func millis(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
