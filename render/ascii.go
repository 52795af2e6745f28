package render

import (
	"context"
	"io"
	"math"

	"linetrace/canvas"
	"linetrace/diagram"
)

// ASCIIOptions configures the text renderer.
type ASCIIOptions struct {
	Scale        float64 // Drawing units per character cell
	Margin       int     // Blank cells around the drawing
	Color        bool    // Emit ANSI colour escapes for routes
	DebugCorners bool    // Mark every obstacle corner
}

// DefaultASCIIOptions returns ten units per cell with a one cell margin.
func DefaultASCIIOptions() ASCIIOptions {
	return ASCIIOptions{Scale: 10, Margin: 1}
}

// ASCIIRenderer draws obstacles as boxes and routes as box-drawing lines.
type ASCIIRenderer struct {
	Options ASCIIOptions
}

func (ASCIIRenderer) Format() string { return "ascii" }

func (r ASCIIRenderer) Render(_ context.Context, w io.Writer, d Drawing) error {
	m, err := RenderASCII(d, r.Options)
	if err != nil {
		return err
	}
	text := m.String()
	if r.Options.Color {
		text = m.ColoredString()
	}
	_, err = io.WriteString(w, text+"\n")
	return err
}

// cellMapper converts drawing coordinates to canvas cells.
type cellMapper struct {
	origin diagram.Point
	scale  float64
	margin int
}

func (c cellMapper) cell(p diagram.Point) canvas.Cell {
	return canvas.Cell{
		X: int(math.Round((p.X-c.origin.X)/c.scale)) + c.margin,
		Y: int(math.Round((p.Y-c.origin.Y)/c.scale)) + c.margin,
	}
}

// RenderASCII draws d onto a new canvas sized to fit it.
func RenderASCII(d Drawing, opts ASCIIOptions) (*canvas.Matrix, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	bounds := d.Bounds()
	mapper := cellMapper{origin: diagram.Point{X: bounds.MinX, Y: bounds.MinY}, scale: opts.Scale, margin: opts.Margin}

	far := mapper.cell(diagram.Point{X: bounds.MaxX, Y: bounds.MaxY})
	width, height := far.X+opts.Margin+1, far.Y+opts.Margin+1
	for _, l := range d.Labels {
		at := mapper.cell(l.At)
		width = max(width, at.X+1+canvas.MeasureText(l.Text)+opts.Margin)
	}

	m, err := canvas.New(width, height)
	if err != nil {
		return nil, err
	}

	for _, o := range d.Obstacles {
		tl, br := mapper.cell(o.Corners.TopLeft()), mapper.cell(o.Corners.BottomRight())
		m.DrawBox(tl.X, tl.Y, max(br.X-tl.X+1, 2), max(br.Y-tl.Y+1, 2))
	}

	for _, r := range d.Routes {
		if len(r.Points) < 2 {
			continue
		}
		cells := make([]canvas.Cell, len(r.Points))
		for i, p := range r.Points {
			cells[i] = mapper.cell(p)
		}
		color := ""
		if opts.Color {
			color = r.Color
		}
		if err := m.DrawPath(cells, color); err != nil {
			return nil, err
		}
	}

	if opts.DebugCorners {
		for _, o := range d.Obstacles {
			for _, c := range o.Corners {
				m.Set(mapper.cell(c), canvas.Marker)
			}
		}
	}

	for _, l := range d.Labels {
		at := mapper.cell(l.At)
		m.DrawText(at.X+1, at.Y, l.Text)
	}
	return m, nil
}
