// Package pathfinding computes connector polylines between points on a plane
// strewn with rectangular obstacles.
//
// Three strategies are provided: the OrthogonalRouter traces a Manhattan path
// one unit at a time and avoids corridors already drawn in the session, the
// GridRouter walks in fixed steps toward the nearest obstacle corners, and
// AStar searches an 8-connected grid with point obstacles. A Session ties
// them to one obstacle index and one occupancy cache.
package pathfinding

import (
	"errors"

	"linetrace/diagram"
	"linetrace/geometry"
)

var (
	// ErrNoSourceObstacle means no obstacle could be found near a connection's
	// start, so the orthogonal router has no clearance reference. It is a
	// caller bug and aborts the session.
	ErrNoSourceObstacle = errors.New("no source obstacle near start")

	// ErrNoPath means A* exhausted its frontier or its expansion bound.
	ErrNoPath = errors.New("no path found")
)

// PointSet returns an obstacle function blocking exactly the given points.
func PointSet(points []diagram.Point) func(diagram.Point) bool {
	set := make(map[diagram.Point]struct{}, len(points))
	for _, p := range points {
		set[p] = struct{}{}
	}
	return func(p diagram.Point) bool {
		_, ok := set[p]
		return ok
	}
}

// GetNeighbors returns the 8-connected neighbours of p at distance step,
// column by column from the lowest X and, within a column, from the lowest Y.
func GetNeighbors(p diagram.Point, step float64) []diagram.Point {
	neighbors := make([]diagram.Point, 0, 8)
	for dx := -1.0; dx <= 1; dx++ {
		for dy := -1.0; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			neighbors = append(neighbors, diagram.Point{X: p.X + dx*step, Y: p.Y + dy*step})
		}
	}
	return neighbors
}

// SimplifyPath removes waypoints that lie on a straight line between their
// neighbours, keeping the first and last point. A point where the path
// doubles back on itself is kept.
func SimplifyPath(path diagram.Path) diagram.Path {
	if len(path.Points) <= 2 {
		return path
	}

	simplified := []diagram.Point{path.Points[0]}
	for i := 1; i < len(path.Points)-1; i++ {
		if !passesThrough(simplified[len(simplified)-1], path.Points[i], path.Points[i+1]) {
			simplified = append(simplified, path.Points[i])
		}
	}
	simplified = append(simplified, path.Points[len(path.Points)-1])

	return diagram.Path{Points: simplified, Cost: path.Cost}
}

// passesThrough reports whether p2 lies on the straight run from p1 to p3.
func passesThrough(p1, p2, p3 diagram.Point) bool {
	if !geometry.IsAligned(p1, p2, p3) {
		return false
	}
	return (p2.X-p1.X)*(p3.X-p2.X) >= 0 && (p2.Y-p1.Y)*(p3.Y-p2.Y) >= 0
}

// IsOrthogonal reports whether every segment of the path is horizontal or vertical.
func IsOrthogonal(path diagram.Path) bool {
	for i := 1; i < len(path.Points); i++ {
		a, b := path.Points[i-1], path.Points[i]
		if a.X != b.X && a.Y != b.Y {
			return false
		}
	}
	return true
}
