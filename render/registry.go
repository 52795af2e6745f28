// Package render turns routed scenes into text, images, and data.
package render

import (
	"context"
	"fmt"
	"io"
	"slices"

	"linetrace/diagram"
	"linetrace/pathfinding"
)

// Label is text placed at a point, such as an anchor name.
type Label struct {
	Text string
	At   diagram.Point
}

// Drawing is everything a renderer needs.
type Drawing struct {
	Session   string
	Obstacles []diagram.Obstacle
	Routes    []pathfinding.Route
	Labels    []Label
	LineWidth float64
}

// Bounds returns the box enclosing every obstacle, route point, and label.
// An empty drawing yields the zero box.
func (d Drawing) Bounds() diagram.BoundingBox {
	var pts []diagram.Point
	for _, o := range d.Obstacles {
		pts = append(pts, o.Corners[:]...)
	}
	for _, r := range d.Routes {
		pts = append(pts, r.Points...)
	}
	for _, l := range d.Labels {
		pts = append(pts, l.At)
	}
	if len(pts) == 0 {
		return diagram.BoundingBox{}
	}

	b := diagram.BoundingBox{MinX: pts[0].X, MaxX: pts[0].X, MinY: pts[0].Y, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Renderer writes a drawing in one output format.
type Renderer interface {
	Format() string
	Render(ctx context.Context, w io.Writer, d Drawing) error
}

// Registry manages renderers by format name.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// DefaultRegistry returns a registry holding every built-in renderer.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ASCIIRenderer{Options: DefaultASCIIOptions()})
	r.Register(JSONRenderer{})
	r.Register(PNGRenderer{Options: DefaultPNGOptions()})
	r.Register(SVGRenderer{})
	return r
}

// Register adds a renderer, replacing any with the same format.
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Format()] = renderer
}

// Get returns the renderer for format.
func (r *Registry) Get(format string) (Renderer, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("no renderer for format %q (have %v)", format, r.Formats())
	}
	return renderer, nil
}

// Formats lists the registered formats in sorted order.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// Render renders d in the given format.
func (r *Registry) Render(ctx context.Context, format string, w io.Writer, d Drawing) error {
	renderer, err := r.Get(format)
	if err != nil {
		return err
	}
	return renderer.Render(ctx, w, d)
}

// Draw strokes one route onto s in its colour. Routes with fewer than two
// points draw nothing.
func Draw(s diagram.Stroker, route pathfinding.Route, width float64) error {
	if len(route.Points) < 2 {
		return nil
	}
	s.SetStrokeColor(route.Color)
	s.SetLineWidth(width)
	s.MoveTo(route.Points[0].X, route.Points[0].Y)
	for _, p := range route.Points[1:] {
		s.LineTo(p.X, p.Y)
	}
	return s.Stroke()
}
