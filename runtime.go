package grin

import (
	"context"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Runtime holds the services shared by every show of one engine: the image
// registry, the setup scheduler, logging, and metrics. Build it with
// NewRuntime, call Start before playing, and Close when done.
type Runtime struct {
	Config  Config
	Logger  *slog.Logger
	Metrics *Metrics
	Images  *ImageRegistry
	Setup   *SetupScheduler

	cancel context.CancelFunc
	group  *errgroup.Group
}

// RuntimeOptions customizes NewRuntime. The zero value logs to stderr,
// reads assets from the configured search path, and keeps metrics
// unregistered.
type RuntimeOptions struct {
	Logger     *slog.Logger
	Registerer prometheus.Registerer
	Source     AssetSource
}

// NewLogger returns the default text logger on stderr.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String("component", "grin"))
}

// NewRuntime builds a runtime for cfg. It does not start the setup worker.
func NewRuntime(cfg Config, opts RuntimeOptions) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(cfg.Engine.Debug)
	}
	source := opts.Source
	if source == nil {
		source = DirSource(cfg.Assets.SearchPath)
	}
	metrics := NewMetrics(opts.Registerer)
	if cfg.Engine.Debug {
		SetDebugMode(true)
	}
	return &Runtime{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Images:  NewImageRegistry(source, logger, metrics),
		Setup:   NewSetupScheduler(cfg.Setup.QueueCapacity, logger, metrics),
	}, nil
}

// Start launches the setup worker. It stops when ctx is done or Close is
// called.
func (r *Runtime) Start(ctx context.Context) error {
	if r.group != nil {
		return errors.New("grin: runtime already started")
	}
	ctx, r.cancel = context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.Setup.Run(ctx)
	})
	r.group = g
	return nil
}

// Close stops the setup worker and waits for it to exit.
func (r *Runtime) Close() error {
	if r.group == nil {
		return nil
	}
	r.cancel()
	err := r.group.Wait()
	r.group = nil
	return err
}
