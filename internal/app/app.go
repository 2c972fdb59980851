package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/tailpane/internal/config"
	"github.com/five82/tailpane/internal/eventloop"
	"github.com/five82/tailpane/internal/ingest"
	"github.com/five82/tailpane/internal/logging"
	"github.com/five82/tailpane/internal/pane"
	"github.com/five82/tailpane/internal/prefs"
	"github.com/five82/tailpane/internal/state"
	"github.com/five82/tailpane/internal/ui"
)

// Options configure a tailpane session. Zero values defer to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tailpane/prefs.toml
	FollowFile string
	Producers  int // negative uses the config value
	Interval   time.Duration

	Headless    bool
	Duration    time.Duration // headless run time; zero runs until cancelled
	Width       int           // headless pane width in cells
	Rows        int           // headless pane height in rows
	ReportEvery time.Duration // headless stats cadence
	Out         io.Writer     // headless report destination
}

// session is the state shared by the interactive and headless hosts.
type session struct {
	cfg   config.Config
	prefs prefs.Prefs
	log   *logrus.Logger
	pane  *pane.Pane
	store *state.Store
}

func newSession(opts Options, sched eventloop.Scheduler) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Producers >= 0 {
		cfg.Producers = opts.Producers
	}
	if opts.Interval > 0 {
		cfg.Interval = opts.Interval
	}
	if opts.FollowFile != "" {
		cfg.FollowFile = opts.FollowFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return nil, fmt.Errorf("load prefs: %w", err)
	}

	// Entries reach the screen through the pane, never the terminal directly.
	logger, err := logging.New(io.Discard, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	p, err := pane.New(sched, pane.Config{
		Policy:    cfg.Policy(),
		RowHeight: cfg.RowHeight,
		TopInset:  cfg.TopInset,
		Tracking:  userPrefs.TrackingOr(cfg.Tracking),
	}, pane.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("init pane: %w", err)
	}
	logger.AddHook(ingest.NewHook(p.Bridge()))

	return &session{cfg: cfg, prefs: userPrefs, log: logger, pane: p, store: &state.Store{}}, nil
}

// start launches the sources feeding the pane.
func (s *session) start(ctx context.Context) (*Producers, error) {
	s.log.Info("Let's start logging")
	if err := StartFollower(ctx, s.log, s.pane, s.store, s.cfg.FollowFile, s.cfg.BackfillLines); err != nil {
		return nil, err
	}
	producers := StartProducers(ctx, s.log, s.cfg.Producers, s.cfg.Interval)
	s.log.WithFields(logrus.Fields{
		"producers":    producers.Count(),
		"interval":     producers.Interval(),
		"height_limit": s.cfg.HeightLimit,
		"new_height":   s.cfg.NewHeight,
	}).Info("sources started")
	return producers, nil
}

// Run boots the tailpane TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Headless {
		return RunHeadless(ctx, opts)
	}

	loop := eventloop.New()
	s, err := newSession(opts, loop)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	producers, err := s.start(ctx)
	if err != nil {
		return err
	}
	defer producers.Wait()
	defer cancel()

	return ui.Run(ctx, ui.Options{
		Loop:      loop,
		Pane:      s.pane,
		Store:     s.store,
		Pacer:     producers,
		Logger:    s.log,
		ThemeName: s.prefs.Theme,
		Prefs:     s.prefs,
		PrefsPath: opts.PrefsPath,
	})
}
