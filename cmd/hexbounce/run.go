package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-hexbounce/pkg/health"
	"github.com/opd-ai/go-hexbounce/pkg/render"
	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

const (
	rendererNull     = "null"
	rendererTerminal = "terminal"

	shutdownTimeout = 5 * time.Second
	maxHeapMB       = 256
)

type runOptions struct {
	ticks      uint64
	renderer   string
	trace      bool
	fast       bool
	healthAddr string
	width      int
	height     int
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation in the terminal or headless",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&opts.ticks, "ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	flags.StringVar(&opts.renderer, "renderer", rendererNull, "frame output: terminal or null")
	flags.BoolVar(&opts.trace, "trace", false, "log body state on every tick")
	flags.BoolVar(&opts.fast, "fast", false, "step without a clock; requires --ticks")
	flags.StringVar(&opts.healthAddr, "health-addr", "", "serve /health and /ready on this address")
	flags.IntVar(&opts.width, "width", 72, "terminal renderer columns")
	flags.IntVar(&opts.height, "height", 30, "terminal renderer rows")
	return cmd
}

func (a *app) run(cmd *cobra.Command, opts *runOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := a.loadConfig(ctx, a.configPath)
	if err != nil {
		return err
	}
	if opts.ticks > 0 {
		cfg.Loop.MaxTicks = opts.ticks
	}

	var renderer render.Renderer
	switch opts.renderer {
	case rendererNull:
		renderer = render.NewNullRenderer(a.logger)
	case rendererTerminal:
		term := render.NewTerminalRenderer(cmd.OutOrStdout(), opts.width, opts.height, 1, cfg.Loop.RenderFPS)
		term.Fit(cfg.Hexagon.Pose().Center(), cfg.Hexagon.Radius)
		renderer = term
	default:
		return fmt.Errorf("unknown renderer %q", opts.renderer)
	}

	sim := simulation.New(cfg, nil, a.logger)
	onTick := func(state simulation.State) {
		if opts.trace {
			a.logger.Info(ctx, "tick",
				"tick", state.Tick,
				"x", state.Body.Position.X,
				"y", state.Body.Position.Y,
				"vx", state.Body.Velocity.X,
				"vy", state.Body.Velocity.Y,
			)
		}
		if err := render.Draw(renderer, state); err != nil {
			a.logger.Warn(ctx, "Failed to draw frame", "error", err.Error())
		}
	}

	if opts.fast {
		if opts.ticks == 0 {
			return errors.New("--fast requires --ticks")
		}
		var final simulation.State
		for i := uint64(0); i < opts.ticks; i++ {
			final = sim.RunHeadless(1)
			onTick(final)
		}
		return printSummary(cmd, final)
	}

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		return sim.Run(runCtx, onTick)
	})

	if opts.healthAddr != "" {
		checker := health.NewHealthChecker()
		checker.AddCheck(health.NewLoopHealthCheck(sim, time.Second))
		checker.AddCheck(health.NewContainmentHealthCheck(sim))
		checker.AddCheck(health.NewMemoryHealthCheck(maxHeapMB, nil))

		server := &http.Server{
			Addr:         opts.healthAddr,
			Handler:      checker.Handler(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			a.logger.Info(ctx, "Starting health check server", "address", opts.healthAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-runCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return printSummary(cmd, sim.Snapshot())
}

func printSummary(cmd *cobra.Command, state simulation.State) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(),
		"ticks=%d contacts=%d position=(%.3f, %.3f) velocity=(%.3f, %.3f)\n",
		state.Tick, state.Contacts,
		state.Body.Position.X, state.Body.Position.Y,
		state.Body.Velocity.X, state.Body.Velocity.Y,
	)
	return err
}
