package pathfinding

import (
	"math"

	"linetrace/config"
	"linetrace/diagram"
	"linetrace/geometry"
	"linetrace/obstacles"
)

// GridRouter walks toward obstacle corners in fixed steps. Each leg targets
// the not yet visited obstacle whose top-left corner is nearest, heads for
// that obstacle's nearest corner horizontally then vertically, and stops a
// leg at the first step that would land inside any obstacle. When no
// obstacle remains the end point is appended.
//
// The result is best effort: a leg cut short by a collision is not retried,
// so the polyline may not be orthogonal between the last leg and the end.
type GridRouter struct {
	obstacles *obstacles.Index
	gridSize  float64
	rounding  float64
}

// NewGridRouter creates a grid router over an obstacle index.
func NewGridRouter(idx *obstacles.Index, cfg config.Routing) *GridRouter {
	return &GridRouter{obstacles: idx, gridSize: cfg.GridSize, rounding: cfg.GridRounding}
}

// Route returns the polyline from start through the corner legs to end.
func (g *GridRouter) Route(start, end diagram.Point) diagram.Path {
	points := []diagram.Point{start}
	visited := make([]bool, g.obstacles.Len())
	skip := func(i int) bool { return visited[i] }

	curr := start
	for {
		next, ok := g.obstacles.NearestByOrigin(curr, skip)
		if !ok {
			points = append(points, end)
			break
		}
		visited[next] = true

		leg := g.Leg(curr, g.obstacles.Obstacles()[next])
		points = append(points, leg...)
		if len(leg) > 0 {
			curr = leg[len(leg)-1]
		}
	}

	return diagram.Path{Points: points, Cost: geometry.PathLength(points)}
}

// Leg steps from start toward the corner of o nearest to it, first along X
// and then along Y. The returned points exclude start and are rounded to the
// configured multiple.
func (g *GridRouter) Leg(start diagram.Point, o diagram.Obstacle) []diagram.Point {
	target := nearestCorner(start, o.Corners)

	var leg []diagram.Point
	curr := start

	dx := target.X - start.X
	for i := 1; i <= g.steps(dx); i++ {
		p := diagram.Point{X: start.X + float64(i)*g.gridSize*geometry.Sign(dx), Y: curr.Y}
		if g.obstacles.Collides(p) {
			break
		}
		leg = append(leg, p)
		curr = p
	}

	dy := target.Y - start.Y
	for i := 1; i <= g.steps(dy); i++ {
		p := diagram.Point{X: curr.X, Y: start.Y + float64(i)*g.gridSize*geometry.Sign(dy)}
		if g.obstacles.Collides(p) {
			break
		}
		leg = append(leg, p)
		curr = p
	}

	for i := range leg {
		leg[i] = geometry.RoundPoint(leg[i], g.rounding)
	}
	return leg
}

func (g *GridRouter) steps(delta float64) int {
	if g.gridSize <= 0 {
		return 0
	}
	return int(math.Ceil(math.Abs(delta) / g.gridSize))
}

// nearestCorner returns the corner closest to p; ties keep the earlier corner.
func nearestCorner(p diagram.Point, corners diagram.Corners) diagram.Point {
	best := corners[0]
	bestDist := geometry.Distance(p, best)
	for _, c := range corners[1:] {
		if d := geometry.Distance(p, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
