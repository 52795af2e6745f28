package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"linetrace/config"
	"linetrace/diagram"
	"linetrace/pathfinding"
)

// parsePoint reads "x,y".
func parsePoint(s string) (diagram.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return diagram.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return diagram.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return diagram.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return diagram.Point{X: x, Y: y}, nil
}

func newFindCmd() *cobra.Command {
	var (
		from, to      string
		blocks        []string
		step          float64
		maxExpansions int
	)
	defaults := config.Default().Routing

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Run the A* grid search between two points",
		Example: `  linetrace find --from 0,0 --to 50,0 --block 20,0 --block 20,10
  linetrace find --from 0,0 --to 500,500 --max-expansions 5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			start, err := parsePoint(from)
			if err != nil {
				return err
			}
			goal, err := parsePoint(to)
			if err != nil {
				return err
			}
			blocked := make([]diagram.Point, 0, len(blocks))
			for _, b := range blocks {
				p, err := parsePoint(b)
				if err != nil {
					return err
				}
				blocked = append(blocked, p)
			}

			cfg := defaults
			cfg.SearchStepSize = step
			cfg.MaxSearchExpansions = maxExpansions
			if step <= 0 || maxExpansions <= 0 {
				return fmt.Errorf("%w: step and max-expansions must be positive", config.ErrInvalid)
			}

			res, err := pathfinding.NewAStar(cfg).Search(start, goal, pathfinding.PointSet(blocked))
			if err != nil {
				return err
			}
			logger.Info("found path", "points", len(res.Path.Points), "cost", res.Path.Cost, "expansions", res.Expansions)
			for _, p := range res.Path.Points {
				fmt.Fprintf(cmd.OutOrStdout(), "%g,%g\n", p.X, p.Y)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start point as x,y")
	cmd.Flags().StringVar(&to, "to", "", "goal point as x,y")
	cmd.Flags().StringArrayVar(&blocks, "block", nil, "blocked point as x,y (repeatable)")
	cmd.Flags().Float64Var(&step, "step", defaults.SearchStepSize, "grid pitch")
	cmd.Flags().IntVar(&maxExpansions, "max-expansions", defaults.MaxSearchExpansions, "frontier pops before giving up")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}
