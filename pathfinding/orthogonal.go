package pathfinding

import (
	"fmt"
	"math"

	"linetrace/config"
	"linetrace/diagram"
	"linetrace/geometry"
	"linetrace/obstacles"
	"linetrace/occupancy"
)

// traceState is the phase of an orthogonal trace.
type traceState int

const (
	stateLaunching   traceState = iota // Moving horizontally away from the source
	stateDescending                    // Moving vertically toward end.Y
	stateApproaching                   // Moving horizontally toward end.X
	stateDone
)

func (s traceState) String() string {
	switch s {
	case stateLaunching:
		return "launching"
	case stateDescending:
		return "descending"
	case stateApproaching:
		return "approaching"
	default:
		return "done"
	}
}

func (s traceState) axis() diagram.Axis {
	if s == stateDescending {
		return diagram.Vertical
	}
	return diagram.Horizontal
}

// Trace is the outcome of one orthogonal route.
type Trace struct {
	Path      diagram.Path
	Steps     int  // Unit steps taken
	Truncated bool // The step cap stopped the trace before it reached the end
}

// OrthogonalRouter traces Manhattan paths one unit at a time. It leaves the
// start horizontally in the connection's direction, clears the obstacle
// nearest the start before turning toward the end, and steps around segments
// already recorded in the occupancy cache. Every completed segment is recorded
// so that later routes in the same session avoid it.
type OrthogonalRouter struct {
	obstacles *obstacles.Index
	cache     *occupancy.Cache
	padding   float64
	maxSteps  int
}

// NewOrthogonalRouter creates a router over a session's index and cache.
func NewOrthogonalRouter(idx *obstacles.Index, cache *occupancy.Cache, cfg config.Routing) *OrthogonalRouter {
	return &OrthogonalRouter{
		obstacles: idx,
		cache:     cache,
		padding:   cfg.ClearancePadding,
		maxSteps:  cfg.MaxOrthogonalSteps,
	}
}

// Route traces a path for conn. It fails only when no obstacle exists near the
// start. Reaching the step cap is not an error: the partial path is returned
// with Truncated set.
func (r *OrthogonalRouter) Route(conn diagram.Connection) (Trace, error) {
	source, ok := r.obstacles.FindClosest(conn.Start, diagram.DirNone)
	if !ok {
		return Trace{}, fmt.Errorf("%w %v", ErrNoSourceObstacle, conn.Start)
	}

	dir := conn.Direction
	if dir == diagram.DirNone {
		dir = diagram.Left
	}
	launch := -1.0
	if dir == diagram.Right {
		launch = 1
	}
	vertical := geometry.Sign(conn.End.Y - conn.Start.Y)
	if vertical == 0 {
		vertical = 1
	}

	t := &tracer{
		router:   r,
		start:    conn.Start,
		end:      conn.End,
		source:   source.Box,
		launch:   launch,
		vertical: vertical,
		state:    stateLaunching,
		cur:      conn.Start,
		turn:     conn.Start,
		points:   []diagram.Point{conn.Start},
	}

	steps := 0
	for t.state != stateDone && steps < r.maxSteps {
		steps++
		t.step()
		t.settle()
	}

	path := SimplifyPath(diagram.Path{Points: t.points})
	path.Cost = geometry.PathLength(path.Points)
	return Trace{Path: path, Steps: steps, Truncated: t.state != stateDone}, nil
}

// tracer holds the per-connection state of one orthogonal trace.
type tracer struct {
	router     *OrthogonalRouter
	start, end diagram.Point
	source     diagram.BoundingBox
	launch     float64 // -1 left, +1 right
	vertical   float64 // -1 up, +1 down
	state      traceState
	cleared    bool // Latched once the trace is past the source obstacle
	cur        diagram.Point
	turn       diagram.Point // Where the current segment began
	points     []diagram.Point
}

// step advances one unit along the active axis, offset around occupied corridors.
func (t *tracer) step() {
	next := t.cur
	switch t.state {
	case stateLaunching:
		next.X += t.launch
	case stateApproaching:
		next.X += geometry.Sign(t.end.X - t.cur.X)
	case stateDescending:
		next.Y += geometry.Sign(t.end.Y - t.cur.Y)
	}

	pad := t.router.padding
	axis := t.state.axis()
	if t.router.cache.IsOccupied(axis, next.X, next.Y) {
		if axis == diagram.Vertical {
			next.X += pad
		} else {
			next.Y += pad
		}
	}

	t.moveTo(next)
}

// moveTo appends next, inserting a perpendicular jog first when an offset
// moved it off the active axis.
func (t *tracer) moveTo(next diagram.Point) {
	if next.X != t.cur.X && next.Y != t.cur.Y {
		jog := diagram.Point{X: t.cur.X, Y: next.Y}
		if t.state.axis() == diagram.Vertical {
			jog = diagram.Point{X: next.X, Y: t.cur.Y}
		}
		t.points = append(t.points, jog)
	}
	t.points = append(t.points, next)
	t.cur = next
}

// pastSource reports whether the trace is clear of the source obstacle on
// the vertical axis, by the padding.
func (t *tracer) pastSource() bool {
	pad := t.router.padding
	if t.vertical > 0 {
		return t.cur.Y > t.source.MaxY+pad
	}
	return t.cur.Y < t.source.MinY-pad
}

// settle applies every transition the current position allows.
func (t *tracer) settle() {
	for {
		prev := t.state
		switch t.state {
		case stateLaunching:
			// Reaching end.X ends the launch early; the rest is vertical.
			if t.cur.X == t.end.X || math.Abs(t.cur.X-t.start.X) > t.router.padding {
				t.turnTo(stateDescending)
			}
		case stateDescending:
			if !t.cleared && t.pastSource() {
				t.cleared = true
				if t.cur.X != t.end.X {
					t.turnTo(stateApproaching)
					break
				}
			}
			if t.cur.Y == t.end.Y {
				t.cleared = true
				if t.cur.X == t.end.X {
					t.turnTo(stateDone)
				} else {
					t.turnTo(stateApproaching)
				}
			}
		case stateApproaching:
			if t.cur.X == t.end.X {
				if t.cur.Y == t.end.Y {
					t.turnTo(stateDone)
				} else {
					t.turnTo(stateDescending)
				}
			}
		}
		if t.state == prev {
			return
		}
	}
}

// turnTo switches state, recording the segment just completed.
func (t *tracer) turnTo(next traceState) {
	if next != stateDone && next.axis() == t.state.axis() {
		t.state = next
		return
	}
	if t.turn != t.cur {
		t.router.cache.RecordSegment(t.state.axis(), t.turn, t.cur)
	}
	t.turn = t.cur
	t.state = next
}
