package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/app"
	"github.com/llehouerou/reelcheck/internal/config"
	"github.com/llehouerou/reelcheck/internal/engine"
	"github.com/llehouerou/reelcheck/internal/engine/mpv"
	"github.com/llehouerou/reelcheck/internal/engine/sim"
	"github.com/llehouerou/reelcheck/internal/errmsg"
	"github.com/llehouerou/reelcheck/internal/logging"
	"github.com/llehouerou/reelcheck/internal/loop"
	"github.com/llehouerou/reelcheck/internal/mpris"
	"github.com/llehouerou/reelcheck/internal/notify"
	"github.com/llehouerou/reelcheck/internal/playback"
	"github.com/llehouerou/reelcheck/internal/state"
	"github.com/llehouerou/reelcheck/internal/stderr"
)

// Flags are the command-line overrides of the config file.
type Flags struct {
	ConfigPath string
	Engine     string
	FrameRate  float64
	NoMpris    bool
	Sources    []string
}

// loadConfig reads the config files and applies flags on top.
func loadConfig(flags Flags) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	if flags.Engine != "" {
		cfg.Engine = flags.Engine
	}
	if flags.FrameRate != 0 {
		cfg.FrameRate = flags.FrameRate
	}
	if flags.NoMpris {
		cfg.Mpris = false
	}
	if len(flags.Sources) > 0 {
		cfg.Sources = lo.Map(flags.Sources, func(url string, _ int) config.SourceConfig {
			return config.SourceConfig{URL: url}
		})
	}
	if err := cfg.Validate(); err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	return cfg, nil
}

func run(ctx context.Context, flags Flags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log, logFile, err := logging.Setup(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.WithFields(logrus.Fields{
		"engine":     cfg.Engine,
		"frame_rate": cfg.FrameRate,
		"sources":    len(cfg.Sources),
	}).Info("starting")

	stateMgr, err := state.Open()
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	defer stateMgr.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	l := loop.New()
	go func() { _ = l.Run(ctx) }()
	defer l.Stop()

	eng, closeEngine, err := newEngine(ctx, cfg, l, log)
	if err != nil {
		return errmsg.Wrap(errmsg.OpEngineInit, err)
	}
	defer closeEngine()

	svc, err := playback.New(l, eng, cfg.ControllerConfig(), playbackSources(cfg), log)
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	defer svc.Close()

	if cfg.Mpris {
		adapter, err := mpris.New(svc, log)
		if err != nil {
			log.WithError(err).Warn("mpris unavailable")
		} else {
			defer adapter.Close()
		}
	}

	var alerts *notify.Alerts
	if cfg.Notify {
		notifier, _ := notify.New()
		alerts = notify.NewAlerts(notifier)
		defer func() { _ = alerts.Dismiss() }()
	}

	// Sources on the command line start a fresh review at the first one.
	restore := len(flags.Sources) == 0
	if !restore {
		if err := svc.SelectSource(0); err != nil {
			return errmsg.Wrap(errmsg.OpSourceLoad, err)
		}
	}

	model := app.New(app.Options{
		Service:  svc,
		StateMgr: stateMgr,
		Log:      log,
		Alerts:   alerts,
		Restore:  restore,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	log.Info("exiting")
	return nil
}

// newEngine builds the configured engine. The returned func releases it on
// the loop.
func newEngine(ctx context.Context, cfg *config.Config, l *loop.Loop, log *logrus.Logger) (engine.Engine, func(), error) {
	engineLog := log.WithField("engine", cfg.Engine)

	switch cfg.Engine {
	case config.EngineMpv:
		// libmpv writes to fd 2 behind the TUI.
		if err := stderr.Start(log); err != nil {
			log.WithError(err).Warn("stderr capture unavailable")
		}
		m, err := mpv.New(l, mpv.Config{
			RefreshRate: cfg.Mpv.RefreshRate,
			Window:      cfg.MpvWindow(),
		}, engineLog)
		if err != nil {
			stderr.Stop()
			return nil, nil, err
		}
		m.Start(ctx)
		return m, func() {
			_ = l.Do(m.Close)
			stderr.Stop()
		}, nil
	default:
		return sim.New(l, sim.Config{Clips: simClips(cfg)}, engineLog), func() {}, nil
	}
}
