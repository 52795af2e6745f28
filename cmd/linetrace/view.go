package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"linetrace/render"
	"linetrace/terminal"
)

func newViewCmd() *cobra.Command {
	var (
		opts  sceneOpts
		scale float64
	)

	cmd := &cobra.Command{
		Use:   "view [scene]",
		Short: "Route a scene and show it in the terminal",
		Long:  "Route a scene and show it full-screen. Arrows or hjkl pan, c marks obstacle corners, q or Esc quits.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			r, err := routeScene(ctx, args[0], cfg)
			if err != nil {
				return err
			}
			if r.err != nil {
				loggerFromContext(ctx).Warn("showing partial routing", "err", r.err)
			}

			ascii := render.DefaultASCIIOptions()
			ascii.Scale = scale
			ascii.Color = true
			return terminal.Show(ctx, r.drawing, ascii, filepath.Base(args[0]))
		},
	}

	opts.register(cmd)
	cmd.Flags().Float64Var(&scale, "scale", render.DefaultASCIIOptions().Scale, "drawing units per character cell")
	return cmd
}
