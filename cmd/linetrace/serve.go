package main

import (
	"github.com/spf13/cobra"

	"linetrace/server"
)

func newServeCmd() *cobra.Command {
	var (
		opts sceneOpts
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve routing over HTTP and websockets",
		Long: `Serve routing over HTTP:

  POST /route   scene JSON in, routes JSON out (?strategy= overrides the config)
  GET  /ws      websocket; every text message is a scene, every reply its routes
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return server.New(cfg, loggerFromContext(cmd.Context())).Run(cmd.Context(), addr)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
