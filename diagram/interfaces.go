package diagram

// PathFinder finds paths between points.
type PathFinder interface {
	// FindPath returns a path from start to end.
	// The obstacles parameter provides a function to check if a point is blocked.
	FindPath(start, end Point, obstacles func(Point) bool) (Path, error)
}

// Stroker is the drawing surface a renderer adapter strokes polylines onto.
type Stroker interface {
	// SetStrokeColor sets the colour of subsequent strokes, as #rrggbb.
	SetStrokeColor(hex string)

	// SetLineWidth sets the width of subsequent strokes.
	SetLineWidth(width float64)

	// MoveTo starts a new polyline at (x, y).
	MoveTo(x, y float64)

	// LineTo extends the current polyline to (x, y).
	LineTo(x, y float64)

	// Stroke draws the current polyline and clears it.
	Stroke() error
}
