// Command simcheck switches between two simulated versions of a clip and
// checks that the reviewed frame survives the transition.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reelcheck/internal/controller"
	"github.com/llehouerou/reelcheck/internal/engine/sim"
	"github.com/llehouerou/reelcheck/internal/loop"
	"github.com/llehouerou/reelcheck/internal/playback"
	"github.com/llehouerou/reelcheck/internal/seek"
	"github.com/llehouerou/reelcheck/internal/transition"
)

const stallGrace = 50 * time.Millisecond

var (
	errFrameLost = errors.New("frame changed across the switch")
	errStalled   = errors.New("next version never became playable")
	errTimeout   = errors.New("timed out waiting for the player")
)

// Options describe one check run.
type Options struct {
	FrameRate float64
	Duration  float64 // seconds, both versions
	Frame     int
	Hung      bool // the second version never becomes playable
	Timeout   time.Duration
}

// Report is the outcome of a check run.
type Report struct {
	Before  int
	After   int
	Reveal  time.Duration
	Stalled bool
}

func (r Report) String() string {
	return fmt.Sprintf("frame %s -> %s, revealed in %s",
		humanize.Comma(int64(r.Before)), humanize.Comma(int64(r.After)), r.Reveal.Round(time.Millisecond))
}

var rootCmd = &cobra.Command{
	Use:          "simcheck",
	Short:        "Check that a version switch keeps the reviewed frame",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logrus.New()
		if lo.Must(cmd.Flags().GetBool("verbose")) {
			log.SetLevel(logrus.DebugLevel)
		}
		opts := Options{
			FrameRate: lo.Must(cmd.Flags().GetFloat64("frame-rate")),
			Duration:  lo.Must(cmd.Flags().GetFloat64("duration")),
			Frame:     lo.Must(cmd.Flags().GetInt("frame")),
			Hung:      lo.Must(cmd.Flags().GetBool("hung")),
			Timeout:   lo.Must(cmd.Flags().GetDuration("timeout")),
		}
		report, err := Check(cmd.Context(), opts, log)
		if err != nil {
			return err
		}
		log.Info(report.String())
		return nil
	},
}

func init() {
	rootCmd.Flags().Float64P("frame-rate", "r", 24, "Frame rate of both versions")
	rootCmd.Flags().Float64P("duration", "d", 10, "Duration of both versions in seconds")
	rootCmd.Flags().IntP("frame", "f", 120, "Frame to review before switching")
	rootCmd.Flags().Bool("hung", false, "Make the second version never become playable")
	rootCmd.Flags().Duration("timeout", 5*time.Second, "Give up after this long")
	rootCmd.Flags().BoolP("verbose", "v", false, "Log engine and controller events")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Check loads the first version, scrubs to opts.Frame, switches to the second
// version and waits for it to be revealed.
func Check(ctx context.Context, opts Options, log logrus.FieldLogger) (Report, error) {
	l := loop.New()
	go func() { _ = l.Run(ctx) }()
	defer l.Stop()

	waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	eng := sim.New(l, sim.Config{Clips: []sim.Clip{
		{URL: "v1", Duration: opts.Duration, Width: 1920, Height: 1080},
		{URL: "v2", Duration: opts.Duration, Width: 1920, Height: 1080, Hung: opts.Hung},
	}}, log.WithField("engine", "sim"))

	cfg := controller.Config{
		FrameRate: opts.FrameRate,
		Transition: transition.Config{
			Debounce: transition.DefaultDebounce,
			Timeout:  transition.DefaultTimeout,
		},
		Seek: seek.Config{
			EndEpsilon:   seek.DefaultEndEpsilon,
			PauseRecheck: seek.DefaultPauseRecheck,
		},
	}
	svc, err := playback.New(l, eng, cfg, []playback.Source{
		{Name: "version 1", URL: "v1"},
		{Name: "version 2", URL: "v2"},
	}, log)
	if err != nil {
		return Report{}, err
	}
	defer svc.Close()
	sub := svc.Subscribe()

	if err := svc.SelectSource(0); err != nil {
		return Report{}, err
	}
	if _, err := waitRevealed(waitCtx, sub); err != nil {
		return Report{}, fmt.Errorf("load first version: %w", err)
	}
	if err := svc.Scrub(opts.Frame); err != nil {
		return Report{}, err
	}
	report := Report{Before: svc.Position().CurrentFrame()}

	start := time.Now()
	if err := svc.SelectSource(1); err != nil {
		return Report{}, err
	}
	stalled, err := waitRevealed(waitCtx, sub)
	if err != nil {
		return report, fmt.Errorf("switch version: %w", err)
	}
	report.Reveal = time.Since(start)
	report.After = svc.Position().CurrentFrame()
	report.Stalled = stalled

	switch {
	case stalled:
		return report, errStalled
	case report.After != report.Before:
		return report, fmt.Errorf("%w: %s", errFrameLost, report)
	}
	return report, nil
}

// waitRevealed drains sub until the held still is released. Reports whether
// the release came from a stall.
func waitRevealed(ctx context.Context, sub *playback.Subscription) (bool, error) {
	loaded := false
	for {
		select {
		case <-ctx.Done():
			return false, errTimeout
		case <-sub.Done:
			return false, playback.ErrClosed
		case e := <-sub.Error:
			return false, e.Err
		case <-sub.MetadataLoaded:
			loaded = true
		case <-sub.Stalled:
			return true, nil
		case e := <-sub.StillChanged:
			if e.ShowStill || !loaded {
				continue
			}
			// A stall is reported right after the forced release.
			select {
			case <-sub.Stalled:
				return true, nil
			case <-time.After(stallGrace):
				return false, nil
			}
		case <-sub.StateChanged:
		case <-sub.SourceChanged:
		case <-sub.PositionChanged:
		}
	}
}
