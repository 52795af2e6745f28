// Command linetrace routes connectors around rectangular obstacles.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// errValidation is returned when --validate finds problems; it exits with 2.
var errValidation = errors.New("validation failed")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			os.Exit(130)
		case errors.Is(err, errValidation):
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "linetrace",
		Short:        "Route connectors around rectangular obstacles",
		Long:         `linetrace routes connector polylines between anchor points in a scene of rectangular shapes, keeping clear of the shapes and of earlier connectors, and renders the result as text, JSON, PNG, or SVG.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRouteCmd())
	root.AddCommand(newFindCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newViewCmd())
	return root
}
