package pathfinding

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"linetrace/config"
	"linetrace/diagram"
	"linetrace/obstacles"
	"linetrace/occupancy"
	"linetrace/palette"
)

// Route is one routed connection.
type Route struct {
	Index      int                `json:"index"`
	Connection diagram.Connection `json:"connection"`
	Points     []diagram.Point    `json:"points"`
	Color      string             `json:"color"`
	Strategy   config.Strategy    `json:"strategy"`
	Truncated  bool               `json:"truncated,omitempty"`
}

// Path returns the route's polyline.
func (r Route) Path() diagram.Path {
	return diagram.Path{Points: r.Points}
}

// ConnectionError reports which connection of a session failed to route.
type ConnectionError struct {
	Index      int
	Connection diagram.Connection
	Err        error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %d %v -> %v: %v", e.Index, e.Connection.Start, e.Connection.End, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.ID = id
	}
}

// Session routes the connections of one drawing. It owns the obstacle index,
// the occupancy cache that makes later routes avoid earlier ones, and the
// colour picker. A Session is not safe for concurrent use; separate drawings
// use separate sessions.
type Session struct {
	ID string

	cfg        config.Config
	index      *obstacles.Index
	cache      *occupancy.Cache
	colors     *palette.Picker
	orthogonal *OrthogonalRouter
	grid       *GridRouter
	astar      *AStar
	logger     *log.Logger
	routed     int
}

// NewSession validates cfg and prepares a session over the given shapes.
func NewSession(cfg config.Config, shapes []diagram.Shape, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	colors, err := palette.Parse(cfg.Render.Palette)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	idx := obstacles.Build(shapes)
	cache := occupancy.New(cfg.Routing.OccupancyBuffer)
	s := &Session{
		ID:         uuid.NewString(),
		cfg:        cfg,
		index:      idx,
		cache:      cache,
		colors:     palette.NewPicker(colors, cfg.Render.Seed),
		orthogonal: NewOrthogonalRouter(idx, cache, cfg.Routing),
		grid:       NewGridRouter(idx, cfg.Routing),
		astar:      NewAStar(cfg.Routing),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Obstacles returns the session's obstacle index.
func (s *Session) Obstacles() *obstacles.Index {
	return s.index
}

// Occupancy returns the session's occupancy cache.
func (s *Session) Occupancy() *occupancy.Cache {
	return s.cache
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Route routes one connection with the configured strategy. Failures are
// returned as *ConnectionError.
func (s *Session) Route(conn diagram.Connection) (Route, error) {
	index := s.routed
	s.routed++

	strategy := s.cfg.Routing.Strategy
	route := Route{Index: index, Connection: conn, Strategy: strategy}

	var err error
	switch strategy {
	case config.StrategyGrid:
		route.Points = s.grid.Route(conn.Start, conn.End).Points
	case config.StrategyAStar:
		var res SearchResult
		res, err = s.astar.Search(conn.Start, conn.End, s.forbiddenCorners(conn))
		route.Points = res.Path.Points
		if errors.Is(err, ErrNoPath) && s.cfg.Routing.FallbackToOrthogonal {
			s.logger.Warn("search failed, falling back", "session", s.ID, "index", index, "expansions", res.Expansions)
			route.Strategy = config.StrategyOrthogonal
			err = s.routeOrthogonal(conn, &route)
		}
	default:
		err = s.routeOrthogonal(conn, &route)
	}

	if err != nil {
		s.logger.Warn("route failed", "session", s.ID, "index", index, "err", err)
		return Route{}, &ConnectionError{Index: index, Connection: conn, Err: err}
	}

	route.Color = s.colors.Next()
	s.logger.Debug("routed connection",
		"session", s.ID, "index", index, "strategy", route.Strategy,
		"points", len(route.Points), "truncated", route.Truncated)
	return route, nil
}

// RouteAll routes conns in order. A connection that fails with ErrNoPath is
// skipped and routing carries on; ErrNoSourceObstacle stops the session. The
// returned error joins every *ConnectionError met along the way.
func (s *Session) RouteAll(conns []diagram.Connection) ([]Route, error) {
	routes := make([]Route, 0, len(conns))
	var errs []error
	for _, conn := range conns {
		route, err := s.Route(conn)
		if err != nil {
			errs = append(errs, err)
			if errors.Is(err, ErrNoSourceObstacle) {
				break
			}
			continue
		}
		routes = append(routes, route)
	}
	return routes, errors.Join(errs...)
}

func (s *Session) routeOrthogonal(conn diagram.Connection, route *Route) error {
	trace, err := s.orthogonal.Route(conn)
	if err != nil {
		return err
	}
	route.Points = trace.Path.Points
	route.Truncated = trace.Truncated
	if trace.Truncated {
		s.logger.Warn("step cap reached", "session", s.ID, "index", route.Index, "steps", trace.Steps)
	}
	return nil
}

// forbiddenCorners blocks the top-left corner of every obstacle that holds
// neither endpoint of conn.
func (s *Session) forbiddenCorners(conn diagram.Connection) func(diagram.Point) bool {
	var corners []diagram.Point
	for _, o := range s.index.Obstacles() {
		if o.Box.Contains(conn.Start, 0) || o.Box.Contains(conn.End, 0) {
			continue
		}
		corners = append(corners, o.Corners.TopLeft())
	}
	return PointSet(corners)
}
