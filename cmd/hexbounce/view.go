package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ebitenrender "github.com/opd-ai/go-hexbounce/pkg/render/ebiten"
	engorender "github.com/opd-ai/go-hexbounce/pkg/render/engo"
	"github.com/opd-ai/go-hexbounce/pkg/simulation"
)

const (
	backendEngo   = "engo"
	backendEbiten = "ebiten"
)

type viewOptions struct {
	backend    string
	width      int
	height     int
	fullscreen bool
}

func newViewCmd(a *app) *cobra.Command {
	opts := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the simulation in a window (R reset, Space pause, Up/Down spin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.backend != backendEngo && opts.backend != backendEbiten {
				return fmt.Errorf("unknown backend %q", opts.backend)
			}
			cfg, err := a.loadConfig(cmd.Context(), a.configPath)
			if err != nil {
				return err
			}
			sim := simulation.New(cfg, nil, a.logger)

			if opts.backend == backendEbiten {
				return ebitenrender.Run(sim, a.logger, ebitenrender.Options{
					Title:      "Hexbounce",
					Width:      opts.width,
					Height:     opts.height,
					Fullscreen: opts.fullscreen,
				})
			}
			engorender.Run(sim, a.logger, engorender.Options{
				Title:      "Hexbounce",
				Width:      opts.width,
				Height:     opts.height,
				Fullscreen: opts.fullscreen,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.backend, "backend", backendEngo, "window backend: engo or ebiten")
	cmd.Flags().IntVar(&opts.width, "width", 800, "window width")
	cmd.Flags().IntVar(&opts.height, "height", 600, "window height")
	cmd.Flags().BoolVar(&opts.fullscreen, "fullscreen", false, "run in fullscreen mode")
	return cmd
}
