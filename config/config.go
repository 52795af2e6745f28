// Package config holds the tunable constants of the routers.
//
// Every value has a documented default; a TOML file may override any subset:
//
//	[routing]
//	clearance_padding = 20
//	occupancy_buffer = 5
//
//	[render]
//	palette = ["#016373", "#08A2A5"]
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Strategy names a routing algorithm.
type Strategy string

const (
	StrategyOrthogonal Strategy = "orthogonal" // Step tracer with source clearance
	StrategyGrid       Strategy = "grid"       // Walks toward nearest obstacle corners
	StrategyAStar      Strategy = "astar"      // 8-connected grid search
)

// Routing configures the routers.
type Routing struct {
	// ClearancePadding is the distance a path keeps from its source obstacle
	// before turning, and the offset applied around occupied corridors.
	ClearancePadding float64 `toml:"clearance_padding"`

	// OccupancyBuffer is the tolerance on the static axis when testing a
	// point against a recorded segment.
	OccupancyBuffer float64 `toml:"occupancy_buffer"`

	// MaxOrthogonalSteps bounds the orthogonal router's unit steps.
	MaxOrthogonalSteps int `toml:"max_orthogonal_steps"`

	// MaxSearchExpansions bounds the nodes A* pops from its frontier.
	MaxSearchExpansions int `toml:"max_search_expansions"`

	// SearchStepSize is the A* grid pitch.
	SearchStepSize float64 `toml:"search_step_size"`

	// GridSize is the step of the grid corner router.
	GridSize float64 `toml:"grid_size"`

	// GridRounding is the multiple grid corner points are rounded to.
	GridRounding float64 `toml:"grid_rounding"`

	// Strategy selects the router used by a session.
	Strategy Strategy `toml:"strategy"`

	// FallbackToOrthogonal retries with the orthogonal router when A* finds no path.
	FallbackToOrthogonal bool `toml:"fallback_to_orthogonal"`
}

// Render configures stroke appearance.
type Render struct {
	// LineWidth is the stroke width of routed connections.
	LineWidth float64 `toml:"line_width"`

	// Palette lists the colours assigned to connections, as #rrggbb.
	Palette []string `toml:"palette"`

	// Seed drives colour selection; equal seeds give equal colours.
	Seed uint64 `toml:"seed"`
}

// Config is the complete configuration.
type Config struct {
	Routing Routing `toml:"routing"`
	Render  Render  `toml:"render"`
}

// DefaultPalette is the connection colour set.
var DefaultPalette = []string{"#016373", "#08A2A5", "#E8891E", "#B25A20", "#D33C52", "#6C5A9A"}

// Default returns the configuration with every documented default.
func Default() Config {
	return Config{
		Routing: Routing{
			ClearancePadding:     20,
			OccupancyBuffer:      5,
			MaxOrthogonalSteps:   2000,
			MaxSearchExpansions:  100,
			SearchStepSize:       10,
			GridSize:             10,
			GridRounding:         10,
			Strategy:             StrategyOrthogonal,
			FallbackToOrthogonal: true,
		},
		Render: Render{
			LineWidth: 3,
			Palette:   append([]string(nil), DefaultPalette...),
			Seed:      1,
		},
	}
}

// Load reads a TOML file on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	r := c.Routing
	switch {
	case r.ClearancePadding < 0:
		return fmt.Errorf("%w: clearance_padding must not be negative", ErrInvalid)
	case r.OccupancyBuffer < 0:
		return fmt.Errorf("%w: occupancy_buffer must not be negative", ErrInvalid)
	case r.MaxOrthogonalSteps <= 0:
		return fmt.Errorf("%w: max_orthogonal_steps must be positive", ErrInvalid)
	case r.MaxSearchExpansions <= 0:
		return fmt.Errorf("%w: max_search_expansions must be positive", ErrInvalid)
	case r.SearchStepSize <= 0:
		return fmt.Errorf("%w: search_step_size must be positive", ErrInvalid)
	case r.GridSize <= 0:
		return fmt.Errorf("%w: grid_size must be positive", ErrInvalid)
	case r.GridRounding < 0:
		return fmt.Errorf("%w: grid_rounding must not be negative", ErrInvalid)
	}

	switch r.Strategy {
	case StrategyOrthogonal, StrategyGrid, StrategyAStar:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalid, r.Strategy)
	}

	if c.Render.LineWidth <= 0 {
		return fmt.Errorf("%w: line_width must be positive", ErrInvalid)
	}
	for _, hex := range c.Render.Palette {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: palette colour %q: %v", ErrInvalid, hex, err)
		}
	}
	return nil
}
