package geometry

import (
	"math"

	"linetrace/diagram"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b diagram.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// RoundTo rounds v to the nearest multiple of m. A non-positive m returns v.
func RoundTo(v, m float64) float64 {
	if m <= 0 {
		return v
	}
	return math.Round(v/m) * m
}

// RoundPoint rounds both coordinates of p to the nearest multiple of m.
func RoundPoint(p diagram.Point, m float64) diagram.Point {
	return diagram.Point{X: RoundTo(p.X, m), Y: RoundTo(p.Y, m)}
}

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// InRange reports whether v lies in [lo, hi].
func InRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// Near reports whether v lies within tolerance of target.
func Near(v, target, tolerance float64) bool {
	return v >= target-tolerance && v <= target+tolerance
}

// ApproxEqual reports whether two points coincide within a small epsilon.
func ApproxEqual(a, b diagram.Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// PathLength returns the sum of segment lengths of a polyline.
func PathLength(points []diagram.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// IsAligned checks if three points are aligned horizontally or vertically.
func IsAligned(p1, p2, p3 diagram.Point) bool {
	if p1.Y == p2.Y && p2.Y == p3.Y {
		return true
	}
	return p1.X == p2.X && p2.X == p3.X
}

// SegmentKind classifies the segment from start to end as it relates to p.
type SegmentKind int

const (
	SegmentNone SegmentKind = iota
	SegmentVertical
	SegmentHorizontal
)

// PathDirection reports whether p lies within the span of the segment
// start→end and, if so, whether that segment is vertical or horizontal.
// Points outside the span, and diagonal segments, yield SegmentNone.
func PathDirection(start, end, p diagram.Point) SegmentKind {
	withinX := p.X >= start.X && p.X <= end.X
	withinY := p.Y >= start.Y && p.Y <= end.Y
	if !withinX || !withinY {
		return SegmentNone
	}
	switch {
	case start.X == end.X:
		return SegmentVertical
	case start.Y == end.Y:
		return SegmentHorizontal
	default:
		return SegmentNone
	}
}
