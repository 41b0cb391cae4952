package main

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/llehouerou/reelcheck/internal/config"
	"github.com/llehouerou/reelcheck/internal/engine/sim"
	"github.com/llehouerou/reelcheck/internal/playback"
)

// Virtual clip defaults for sources without sim settings.
const (
	defaultSimDuration = 10.0
	defaultSimWidth    = 1920
	defaultSimHeight   = 1080
)

// playbackSources converts configured sources. Unnamed sources are named
// after their file.
func playbackSources(cfg *config.Config) []playback.Source {
	return lo.Map(cfg.Sources, func(s config.SourceConfig, _ int) playback.Source {
		name := s.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(s.URL), filepath.Ext(s.URL))
		}
		return playback.Source{Name: name, URL: s.URL}
	})
}

// simClips turns configured sources into virtual clips.
func simClips(cfg *config.Config) []sim.Clip {
	return lo.Map(cfg.Sources, func(s config.SourceConfig, _ int) sim.Clip {
		c := sim.Clip{
			URL:      s.URL,
			Duration: s.Duration,
			Width:    s.Width,
			Height:   s.Height,
			Hung:     s.Hung,
		}
		if c.Duration <= 0 {
			c.Duration = defaultSimDuration
		}
		if c.Width <= 0 || c.Height <= 0 {
			c.Width, c.Height = defaultSimWidth, defaultSimHeight
		}
		return c
	})
}
