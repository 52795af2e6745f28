// Package obstacles turns layout rectangles into obstacle records and answers
// nearest-obstacle and containment queries against them.
package obstacles

import (
	"math"

	"linetrace/diagram"
	"linetrace/geometry"
)

// Index is the obstacle set of one routing session. It is built once from the
// current layout and never mutated afterwards.
type Index struct {
	obstacles []diagram.Obstacle
}

// Build computes the corners and bounding box of every shape, in input order.
func Build(shapes []diagram.Shape) *Index {
	obstacles := make([]diagram.Obstacle, len(shapes))
	for i, s := range shapes {
		obstacles[i] = diagram.NewObstacle(s.Corners(), s)
	}
	return &Index{obstacles: obstacles}
}

// FromObstacles wraps obstacles that were built elsewhere.
func FromObstacles(obstacles []diagram.Obstacle) *Index {
	return &Index{obstacles: append([]diagram.Obstacle(nil), obstacles...)}
}

// Obstacles returns the obstacles in index order.
func (idx *Index) Obstacles() []diagram.Obstacle {
	return idx.obstacles
}

// Len returns the number of obstacles.
func (idx *Index) Len() int {
	return len(idx.obstacles)
}

// Eligible reports whether o may be returned by FindClosest for a query at p
// in direction dir. Left admits obstacles entirely left of p, Right those
// entirely right of it, DirNone admits everything.
func Eligible(o diagram.Obstacle, p diagram.Point, dir diagram.Direction) bool {
	switch dir {
	case diagram.Left:
		return o.Box.MaxX < p.X
	case diagram.Right:
		return o.Box.MinX > p.X
	default:
		return true
	}
}

// FindClosest returns the eligible obstacle owning the corner nearest to p.
// Every obstacle is scanned before answering; ties keep the earlier obstacle.
func (idx *Index) FindClosest(p diagram.Point, dir diagram.Direction) (diagram.Obstacle, bool) {
	best := -1
	bestDist := math.Inf(1)

	for i, o := range idx.obstacles {
		if !Eligible(o, p, dir) {
			continue
		}
		for _, c := range o.Corners {
			if d := geometry.Distance(p, c); d < bestDist {
				best = i
				bestDist = d
			}
		}
	}

	if best < 0 {
		return diagram.Obstacle{}, false
	}
	return idx.obstacles[best], true
}

// NearestByOrigin returns the obstacle whose top-left corner is nearest to p,
// skipping obstacles for which skip returns true. A nil skip admits all.
func (idx *Index) NearestByOrigin(p diagram.Point, skip func(int) bool) (int, bool) {
	best := -1
	bestDist := math.Inf(1)

	for i, o := range idx.obstacles {
		if skip != nil && skip(i) {
			continue
		}
		if d := geometry.Distance(p, o.Corners.TopLeft()); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}

// Contains reports whether p lies within the box of o grown by padding.
func Contains(o diagram.Obstacle, p diagram.Point, padding float64) bool {
	return o.Box.Contains(p, padding)
}

// ContainsPoint reports whether p lies within padding of any obstacle.
func (idx *Index) ContainsPoint(p diagram.Point, padding float64) bool {
	for _, o := range idx.obstacles {
		if o.Box.Contains(p, padding) {
			return true
		}
	}
	return false
}

// Collides reports whether p touches any obstacle's box, edges included.
func (idx *Index) Collides(p diagram.Point) bool {
	return idx.ContainsPoint(p, 0)
}

// Checker returns an obstacle function for path finders.
func (idx *Index) Checker(padding float64) func(diagram.Point) bool {
	return func(p diagram.Point) bool {
		return idx.ContainsPoint(p, padding)
	}
}
