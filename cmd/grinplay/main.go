// Command grinplay plays the built-in grin demo show, optionally driven by a
// TOML playback script, and validates engine config files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/phanxgames/grin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type playT struct {
	Root *cobra.Command

	config      string
	script      string
	screenshots string
	metricsAddr string
	debug       bool
}

func newPlay() *playT {
	p := &playT{}
	p.Root = &cobra.Command{
		Use:   "play",
		Short: "play the demo show in a window",
		Args:  cobra.NoArgs,
		RunE:  p.run,
	}
	p.Root.Flags().StringVar(&p.config, "config", "", "TOML engine config (defaults are used when empty)")
	p.Root.Flags().StringVar(&p.script, "script", "", "TOML playback script to drive the show")
	p.Root.Flags().StringVar(&p.screenshots, "screenshots", "screenshots", "directory for script screenshots")
	p.Root.Flags().StringVar(&p.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	p.Root.Flags().BoolVar(&p.debug, "debug", false, "enable contract checks and the stats overlay")
	return p
}

func loadConfig(path string) (grin.Config, error) {
	if path == "" {
		cfg := grin.DefaultConfig()
		cfg.Screen.Width, cfg.Screen.Height = 640, 480
		return cfg, nil
	}
	return grin.LoadConfig(path)
}

func (p *playT) run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(p.config)
	if err != nil {
		return err
	}
	if p.debug {
		cfg.Engine.Debug = true
	}

	reg := prometheus.NewRegistry()
	rt, err := grin.NewRuntime(cfg, grin.RuntimeOptions{Registerer: reg})
	if err != nil {
		return err
	}
	if p.metricsAddr != "" {
		srv := &http.Server{Addr: p.metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				rt.Logger.Error("metrics server", slog.Any("error", err))
			}
		}()
		defer srv.Close()
	}

	if err := rt.Start(context.Background()); err != nil {
		return err
	}
	defer rt.Close()

	d := buildDemo(rt)
	e := grin.NewEngine(rt, d.show)
	e.ScreenshotDir = p.screenshots
	e.OnUpdate(d.handleKeys)

	if p.script != "" {
		data, err := os.ReadFile(p.script)
		if err != nil {
			return errors.Wrapf(err, "read script %s", p.script)
		}
		runner, err := grin.LoadTestScript(data)
		if err != nil {
			return errors.Wrapf(err, "%s", p.script)
		}
		e.SetTestRunner(runner)
	}

	d.show.Initialize()
	d.show.RunCommand(grin.ActivateSegmentCommand{Segment: segIntro})
	return grin.RunGame(e, "grin demo")
}

func newCheck() *cobra.Command {
	return &cobra.Command{
		Use:   "check <config>",
		Short: "validate an engine config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := grin.LoadConfig(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d at %d tps, %d draw targets\n",
				args[0], cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.TicksPerSecond, len(cfg.Engine.DrawTargets))
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "grinplay [command] (flags)",
		Short:         "grin demo player",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPlay().Root, newCheck())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "grinplay: %v\n", err)
		os.Exit(1)
	}
}
