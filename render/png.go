package render

import (
	"context"
	"io"
	"math"

	"github.com/gogpu/gg"

	"linetrace/diagram"
)

// PNGOptions configures the raster renderer.
type PNGOptions struct {
	Margin       float64 // Pixels around the drawing
	Background   string  // #rrggbb
	ObstacleFill string  // #rrggbb
	DebugCorners bool    // Mark every obstacle corner
}

// DefaultPNGOptions returns a white background with light grey obstacles.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Margin: 20, Background: "#ffffff", ObstacleFill: "#e6e6e6"}
}

// PNGRenderer rasterises a drawing with gg.
type PNGRenderer struct {
	Options PNGOptions
}

func (PNGRenderer) Format() string { return "png" }

func (r PNGRenderer) Render(_ context.Context, w io.Writer, d Drawing) error {
	dc, err := RenderPNG(d, r.Options)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// Stroker adapts a gg context to diagram.Stroker, shifting every point by
// an offset so that drawings with negative coordinates stay on the image.
type Stroker struct {
	dc     *gg.Context
	dx, dy float64
}

// NewStroker wraps dc.
func NewStroker(dc *gg.Context, dx, dy float64) *Stroker {
	return &Stroker{dc: dc, dx: dx, dy: dy}
}

func (s *Stroker) SetStrokeColor(hex string) { s.dc.SetHexColor(hex) }
func (s *Stroker) SetLineWidth(width float64) { s.dc.SetLineWidth(width) }
func (s *Stroker) MoveTo(x, y float64) { s.dc.MoveTo(x+s.dx, y+s.dy) }
func (s *Stroker) LineTo(x, y float64) { s.dc.LineTo(x+s.dx, y+s.dy) }
func (s *Stroker) Stroke() error { return s.dc.Stroke() }

// RenderPNG draws d onto a new context sized to fit it. The caller closes
// the returned context.
func RenderPNG(d Drawing, opts PNGOptions) (*gg.Context, error) {
	bounds := d.Bounds()
	width := int(math.Ceil(bounds.Width() + 2*opts.Margin))
	height := int(math.Ceil(bounds.Height() + 2*opts.Margin))
	dx, dy := opts.Margin-bounds.MinX, opts.Margin-bounds.MinY

	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetHexColor(opts.Background)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, err
	}

	for _, o := range d.Obstacles {
		dc.DrawRectangle(o.Box.MinX+dx, o.Box.MinY+dy, o.Box.Width(), o.Box.Height())
		dc.SetHexColor(opts.ObstacleFill)
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, err
		}
	}

	lineWidth := d.LineWidth
	if lineWidth <= 0 {
		lineWidth = 1
	}
	s := NewStroker(dc, dx, dy)
	for _, r := range d.Routes {
		if err := Draw(s, r, lineWidth); err != nil {
			dc.Close()
			return nil, err
		}
	}

	if opts.DebugCorners {
		dc.SetHexColor("#d33c52")
		for _, o := range d.Obstacles {
			for _, c := range o.Corners {
				dc.DrawCircle(c.X+dx, c.Y+dy, 3)
				if err := dc.Fill(); err != nil {
					dc.Close()
					return nil, err
				}
			}
		}
	}

	return dc, nil
}

var _ diagram.Stroker = (*Stroker)(nil)
