// Package diagram contains the fundamental geometry types shared by the routers,
// the obstacle index, and the renderers.
package diagram

import (
	"fmt"
	"strings"
)

// Point represents a coordinate on the drawing plane, in pixels.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// String returns the point formatted as (x,y).
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Direction is the preferred departure direction of a connection.
type Direction int

const (
	DirNone Direction = iota // No preference; used by nearest-obstacle queries
	Left
	Right
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection parses "left", "right" or "none". An empty string yields
// Left, the default departure direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return DirNone, nil
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return DirNone, fmt.Errorf("unknown direction %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Axis identifies the axis a segment runs along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the name of the axis.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// BoundingBox is the axis-aligned extent of an obstacle.
type BoundingBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether p lies in the box grown by padding on every side.
// Edges are inclusive.
func (b BoundingBox) Contains(p Point, padding float64) bool {
	return p.X >= b.MinX-padding && p.X <= b.MaxX+padding &&
		p.Y >= b.MinY-padding && p.Y <= b.MaxY+padding
}

// ContainsStrict reports whether p lies strictly inside the box.
func (b BoundingBox) ContainsStrict(p Point) bool {
	return p.X > b.MinX && p.X < b.MaxX && p.Y > b.MinY && p.Y < b.MaxY
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Corners holds the four corners of an axis-aligned rectangle in
// top-left, top-right, bottom-right, bottom-left order.
type Corners [4]Point

// TopLeft returns the first corner.
func (c Corners) TopLeft() Point { return c[0] }

// BottomRight returns the third corner.
func (c Corners) BottomRight() Point { return c[2] }

// Box derives the bounding box from the corners.
func (c Corners) Box() BoundingBox {
	b := BoundingBox{MinX: c[0].X, MaxX: c[0].X, MinY: c[0].Y, MaxY: c[0].Y}
	for _, p := range c[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Shape is a rectangle supplied by the layout collaborator.
type Shape struct {
	ID     string  `json:"id,omitempty" toml:"id"`
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Corners returns the four corners of the shape.
func (s Shape) Corners() Corners {
	return Corners{
		{X: s.X, Y: s.Y},
		{X: s.X + s.Width, Y: s.Y},
		{X: s.X + s.Width, Y: s.Y + s.Height},
		{X: s.X, Y: s.Y + s.Height},
	}
}

// Center returns the centre point of the shape.
func (s Shape) Center() Point {
	return Point{X: s.X + s.Width/2, Y: s.Y + s.Height/2}
}

// Obstacle is a rectangle a routed path must not cross. Obstacles are built
// once per routing session and never mutated.
type Obstacle struct {
	Corners Corners
	Box     BoundingBox
	Source  any // Opaque reference back to the originating shape
}

// NewObstacle builds an obstacle whose bounding box agrees with its corners.
func NewObstacle(c Corners, source any) Obstacle {
	return Obstacle{Corners: c, Box: c.Box(), Source: source}
}

// Connection asks for a path from Start to End departing in Direction.
type Connection struct {
	Start     Point     `json:"start"`
	End       Point     `json:"end"`
	Direction Direction `json:"direction"`
}

// OccupancyEntry describes a drawn segment. For a vertical segment the range
// is the Y span and Static is its X; for a horizontal segment, vice versa.
type OccupancyEntry struct {
	Axis       Axis
	RangeStart float64
	RangeEnd   float64
	Static     float64
}

// Normalized returns the entry with RangeStart <= RangeEnd.
func (e OccupancyEntry) Normalized() OccupancyEntry {
	if e.RangeStart > e.RangeEnd {
		e.RangeStart, e.RangeEnd = e.RangeEnd, e.RangeStart
	}
	return e
}

// Path represents an ordered polyline.
type Path struct {
	Points []Point
	Cost   float64 // Sum of segment lengths where the producer computes it
}

// Length returns the number of points in the path.
func (p Path) Length() int {
	return len(p.Points)
}

// IsEmpty returns true if the path has no points.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// First returns the first point of a non-empty path.
func (p Path) First() Point {
	return p.Points[0]
}

// Last returns the last point of a non-empty path.
func (p Path) Last() Point {
	return p.Points[len(p.Points)-1]
}

// String returns a compact representation for debugging.
func (p Path) String() string {
	if p.IsEmpty() {
		return "empty path"
	}
	parts := make([]string, len(p.Points))
	for i, pt := range p.Points {
		parts[i] = pt.String()
	}
	return strings.Join(parts, " -> ")
}
