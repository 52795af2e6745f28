// Package validation checks routed connections against the obstacles and
// against each other.
package validation

import (
	"fmt"

	"linetrace/config"
	"linetrace/diagram"
	"linetrace/geometry"
	"linetrace/obstacles"
	"linetrace/pathfinding"
)

// Kind classifies a validation finding.
type Kind string

const (
	KindEndpoint   Kind = "endpoint"   // Path does not start or end where requested
	KindDiagonal   Kind = "diagonal"   // Orthogonal route with a diagonal segment
	KindIntrusion  Kind = "intrusion"  // Segment passes through an obstacle interior
	KindOverlap    Kind = "overlap"    // Segment runs alongside another route's segment
	KindTruncated  Kind = "truncated"  // Route stopped at the step cap
	KindDegenerate Kind = "degenerate" // Fewer than two points
)

// ValidationError represents a finding with location information.
type ValidationError struct {
	Route   int // Route index
	Segment int // Segment index within the route, -1 for whole-route findings
	Kind    Kind
	Message string
}

func (e ValidationError) Error() string {
	if e.Segment < 0 {
		return fmt.Sprintf("route %d: %s: %s", e.Route, e.Kind, e.Message)
	}
	return fmt.Sprintf("route %d segment %d: %s: %s", e.Route, e.Segment, e.Kind, e.Message)
}

// RouteValidator validates routed connections.
type RouteValidator struct {
	obstacles *obstacles.Index
	buffer    float64
	errors    []ValidationError
}

// NewRouteValidator creates a validator over the session's obstacles. Two
// parallel segments closer than buffer are reported as overlapping.
func NewRouteValidator(idx *obstacles.Index, buffer float64) *RouteValidator {
	return &RouteValidator{obstacles: idx, buffer: buffer}
}

// Validate checks every route and every pair of routes.
func (v *RouteValidator) Validate(routes []pathfinding.Route) []ValidationError {
	v.errors = nil

	for _, r := range routes {
		v.checkRoute(r)
	}
	for i := range routes {
		for j := i + 1; j < len(routes); j++ {
			v.checkOverlap(routes[i], routes[j])
		}
	}
	return v.errors
}

func (v *RouteValidator) addError(route, segment int, kind Kind, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		Route:   route,
		Segment: segment,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *RouteValidator) checkRoute(r pathfinding.Route) {
	pts := r.Points
	if len(pts) < 2 {
		v.addError(r.Index, -1, KindDegenerate, "%d points", len(pts))
		return
	}

	if !geometry.ApproxEqual(pts[0], r.Connection.Start) {
		v.addError(r.Index, -1, KindEndpoint, "starts at %v, want %v", pts[0], r.Connection.Start)
	}
	if r.Truncated {
		v.addError(r.Index, -1, KindTruncated, "stopped at %v short of %v", pts[len(pts)-1], r.Connection.End)
	} else if !geometry.ApproxEqual(pts[len(pts)-1], r.Connection.End) {
		v.addError(r.Index, -1, KindEndpoint, "ends at %v, want %v", pts[len(pts)-1], r.Connection.End)
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if r.Strategy == config.StrategyOrthogonal && a != b && classify(a, b) == geometry.SegmentNone {
			v.addError(r.Index, i-1, KindDiagonal, "%v -> %v", a, b)
		}
		for _, o := range v.obstacles.Obstacles() {
			// The obstacles holding the endpoints are where the route attaches.
			if o.Box.Contains(r.Connection.Start, 0) || o.Box.Contains(r.Connection.End, 0) {
				continue
			}
			if crossesInterior(a, b, o.Box) {
				v.addError(r.Index, i-1, KindIntrusion, "%v -> %v enters obstacle %v", a, b, o.Corners.TopLeft())
			}
		}
	}
}

// crossesInterior reports whether the segment a→b has a point strictly inside box.
func crossesInterior(a, b diagram.Point, box diagram.BoundingBox) bool {
	switch {
	case a.Y == b.Y:
		lo, hi := min(a.X, b.X), max(a.X, b.X)
		return a.Y > box.MinY && a.Y < box.MaxY && lo < box.MaxX && hi > box.MinX
	case a.X == b.X:
		lo, hi := min(a.Y, b.Y), max(a.Y, b.Y)
		return a.X > box.MinX && a.X < box.MaxX && lo < box.MaxY && hi > box.MinY
	}

	// Diagonal segments are sampled at unit spacing.
	n := int(geometry.Distance(a, b)) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		p := diagram.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		if box.ContainsStrict(p) {
			return true
		}
	}
	return false
}

type segment struct {
	index  int
	axis   diagram.Axis
	static float64
	lo, hi float64
}

// classify reports whether a→b runs vertically, horizontally, or neither.
func classify(a, b diagram.Point) geometry.SegmentKind {
	lo := diagram.Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)}
	hi := diagram.Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
	return geometry.PathDirection(lo, hi, a)
}

// segments returns the axis-aligned segments of pts with positive length.
func segments(pts []diagram.Point) []segment {
	var out []segment
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if a == b {
			continue
		}
		switch classify(a, b) {
		case geometry.SegmentVertical:
			out = append(out, segment{i - 1, diagram.Vertical, a.X, min(a.Y, b.Y), max(a.Y, b.Y)})
		case geometry.SegmentHorizontal:
			out = append(out, segment{i - 1, diagram.Horizontal, a.Y, min(a.X, b.X), max(a.X, b.X)})
		}
	}
	return out
}

// checkOverlap reports parallel segments of two routes that lie within the
// buffer of each other over a stretch of positive length.
func (v *RouteValidator) checkOverlap(r1, r2 pathfinding.Route) {
	for _, s1 := range segments(r1.Points) {
		for _, s2 := range segments(r2.Points) {
			if s1.axis != s2.axis || !geometry.Near(s2.static, s1.static, v.buffer) {
				continue
			}
			if s1.lo < s2.hi && s2.lo < s1.hi {
				v.addError(r2.Index, s2.index, KindOverlap, "%s segment at %g runs alongside route %d at %g",
					s2.axis, s2.static, r1.Index, s1.static)
			}
		}
	}
}
