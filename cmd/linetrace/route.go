package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"linetrace/config"
	"linetrace/pathfinding"
	"linetrace/render"
	"linetrace/scene"
	"linetrace/validation"
)

// sceneOpts are the flags shared by commands that read a scene.
type sceneOpts struct {
	configPath string
	strategy   string
}

func (o *sceneOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "TOML config file (defaults apply when unset)")
	cmd.Flags().StringVarP(&o.strategy, "strategy", "s", "", "routing strategy: orthogonal, grid, astar")
}

func (o *sceneOpts) config() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if o.strategy != "" {
		cfg.Routing.Strategy = config.Strategy(o.strategy)
	}
	return cfg, nil
}

// routed is a scene after routing.
type routed struct {
	drawing render.Drawing
	session *pathfinding.Session
	err     error // First routing failure; drawing holds the routes before it
}

// routeScene loads and routes the scene at path. Links naming unknown
// anchors are skipped with a warning.
func routeScene(ctx context.Context, path string, cfg config.Config) (*routed, error) {
	logger := loggerFromContext(ctx)

	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	conns, err := sc.Connections()
	if err != nil {
		logger.Warn("skipping links", "err", err)
	}

	session, err := pathfinding.NewSession(cfg, sc.Shapes, pathfinding.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	routes, routeErr := session.RouteAll(conns)
	logger.Debug("routed scene", "session", session.ID, "routes", len(routes), "occupancy", session.Occupancy())

	labels := make([]render.Label, 0, len(sc.Anchors))
	for _, a := range sc.Anchors {
		labels = append(labels, render.Label{Text: a.Name, At: a.Position()})
	}
	return &routed{
		drawing: render.Drawing{
			Session:   session.ID,
			Obstacles: session.Obstacles().Obstacles(),
			Routes:    routes,
			Labels:    labels,
			LineWidth: cfg.Render.LineWidth,
		},
		session: session,
		err:     routeErr,
	}, nil
}

type routeOpts struct {
	sceneOpts
	format       string
	output       string
	validate     bool
	debugCorners bool
	color        bool
	scale        float64
	labels       bool
}

func newRouteCmd() *cobra.Command {
	opts := routeOpts{format: "ascii", scale: render.DefaultASCIIOptions().Scale}

	cmd := &cobra.Command{
		Use:   "route [scene]",
		Short: "Route every link of a scene and render the result",
		Long: `Route every link of a JSON or TOML scene in declaration order and render
the result. Later connectors avoid the corridors of earlier ones.

When --output is set and --format is not, the format follows the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && !cmd.Flags().Changed("format") {
				if ext := strings.TrimPrefix(filepath.Ext(opts.output), "."); ext != "" {
					opts.format = ext
				}
			}
			return runRoute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: ascii, json, png, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "check routes against obstacles and each other; exit 2 on findings")
	cmd.Flags().BoolVar(&opts.debugCorners, "debug-corners", false, "mark obstacle corners")
	cmd.Flags().BoolVar(&opts.color, "color", false, "colour routes in ascii output")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "drawing units per character cell in ascii output")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw anchor names")
	return cmd
}

func (o *routeOpts) registry() *render.Registry {
	ascii := render.DefaultASCIIOptions()
	ascii.Scale = o.scale
	ascii.Color = o.color
	ascii.DebugCorners = o.debugCorners

	png := render.DefaultPNGOptions()
	png.DebugCorners = o.debugCorners

	reg := render.DefaultRegistry()
	reg.Register(render.ASCIIRenderer{Options: ascii})
	reg.Register(render.PNGRenderer{Options: png})
	return reg
}

func runRoute(ctx context.Context, stdout, stderr io.Writer, path string, opts *routeOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := opts.config()
	if err != nil {
		return err
	}
	reg := opts.registry()
	if _, err := reg.Get(opts.format); err != nil {
		return err
	}

	r, err := routeScene(ctx, path, cfg)
	if err != nil {
		return err
	}
	if r.err != nil {
		logger.Error("routing stopped", "err", r.err, "routed", len(r.drawing.Routes))
	}
	if !opts.labels {
		r.drawing.Labels = nil
	}

	w := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := reg.Render(ctx, opts.format, w, r.drawing); err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}
	if opts.output != "" {
		logger.Info("wrote output", "file", opts.output, "format", opts.format)
	}

	var issues []validation.ValidationError
	if opts.validate {
		v := validation.NewRouteValidator(r.session.Obstacles(), cfg.Routing.OccupancyBuffer)
		issues = v.Validate(r.drawing.Routes)
	}
	if opts.validate || opts.output != "" {
		printSummary(stderr, r.drawing.Session, r.drawing.Routes, issues)
	}

	if r.err != nil {
		return r.err
	}
	if len(issues) > 0 {
		return fmt.Errorf("%w: %d findings", errValidation, len(issues))
	}
	return nil
}
