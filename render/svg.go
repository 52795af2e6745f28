package render

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"

	"linetrace/diagram"
)

// SVGRenderer renders through Graphviz. Every obstacle and route point is
// a node pinned at its drawing position, so neato only draws, never lays out.
type SVGRenderer struct{}

func (SVGRenderer) Format() string { return "svg" }

func (SVGRenderer) Render(ctx context.Context, w io.Writer, d Drawing) error {
	svg, err := RenderSVG(ctx, ToDOT(d))
	if err != nil {
		return err
	}
	_, err = w.Write(svg)
	return err
}

// pointsPerInch converts drawing units, taken as points, to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a drawing to an undirected DOT graph with pinned positions.
// DOT's Y axis points up, so Y coordinates are negated.
func ToDOT(d Drawing) string {
	var buf bytes.Buffer
	buf.WriteString("graph routes {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  outputorder=nodesfirst;\n")
	buf.WriteString("  node [label=\"\", fixedsize=true];\n")
	buf.WriteString("\n")

	for i, o := range d.Obstacles {
		c := o.Box
		label := ""
		if s, ok := o.Source.(diagram.Shape); ok {
			label = s.ID
		}
		fmt.Fprintf(&buf, "  \"o%d\" [shape=box, style=filled, fillcolor=\"#e6e6e6\", color=\"#999999\", label=%q, pos=\"%g,%g!\", width=%g, height=%g];\n",
			i, label, (c.MinX+c.MaxX)/2, dotY((c.MinY+c.MaxY)/2), c.Width()/pointsPerInch, c.Height()/pointsPerInch)
	}

	width := d.LineWidth
	if width <= 0 {
		width = 1
	}
	for _, r := range d.Routes {
		buf.WriteString("\n")
		for j, p := range r.Points {
			fmt.Fprintf(&buf, "  \"r%dp%d\" [shape=point, width=0.01, pos=\"%g,%g!\"];\n", r.Index, j, p.X, dotY(p.Y))
		}
		for j := 1; j < len(r.Points); j++ {
			fmt.Fprintf(&buf, "  \"r%dp%d\" -- \"r%dp%d\" [color=%q, penwidth=%g];\n", r.Index, j-1, r.Index, j, r.Color, width)
		}
	}

	for i, l := range d.Labels {
		fmt.Fprintf(&buf, "  \"l%d\" [shape=plaintext, label=%q, pos=\"%g,%g!\"];\n", i, l.Text, l.At.X, dotY(l.At.Y))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotY flips y into DOT's upward axis. Subtracting from zero keeps 0 from
// printing as -0.
func dotY(y float64) float64 {
	return 0 - y
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
