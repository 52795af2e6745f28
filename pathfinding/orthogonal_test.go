package pathfinding

import (
	"errors"
	"testing"

	"linetrace/config"
	"linetrace/diagram"
	"linetrace/obstacles"
	"linetrace/occupancy"
)

// box is the obstacle spanning (80,100)-(180,150).
var box = diagram.Shape{ID: "box", X: 80, Y: 100, Width: 100, Height: 50}

func newOrthogonal(t *testing.T, shapes ...diagram.Shape) (*OrthogonalRouter, *occupancy.Cache) {
	t.Helper()
	cfg := config.Default().Routing
	cache := occupancy.New(cfg.OccupancyBuffer)
	return NewOrthogonalRouter(obstacles.Build(shapes), cache, cfg), cache
}

func TestOrthogonalRouter_Route(t *testing.T) {
	tests := []struct {
		name string
		conn diagram.Connection
		want []diagram.Point
	}{
		{
			name: "left launch clears source below",
			conn: diagram.Connection{Start: pt(100, 100), End: pt(100, 300), Direction: diagram.Left},
			want: []diagram.Point{pt(100, 100), pt(79, 100), pt(79, 171), pt(100, 171), pt(100, 300)},
		},
		{
			name: "right launch clears source below",
			conn: diagram.Connection{Start: pt(180, 100), End: pt(180, 300), Direction: diagram.Right},
			want: []diagram.Point{pt(180, 100), pt(201, 100), pt(201, 171), pt(180, 171), pt(180, 300)},
		},
		{
			name: "upward route clears source above",
			conn: diagram.Connection{Start: pt(100, 150), End: pt(100, 0), Direction: diagram.Left},
			want: []diagram.Point{pt(100, 150), pt(79, 150), pt(79, 79), pt(100, 79), pt(100, 0)},
		},
		{
			name: "launch stops at end.X inside the padding",
			conn: diagram.Connection{Start: pt(100, 100), End: pt(90, 300), Direction: diagram.Left},
			want: []diagram.Point{pt(100, 100), pt(90, 100), pt(90, 300)},
		},
		{
			name: "unset direction launches left",
			conn: diagram.Connection{Start: pt(100, 100), End: pt(100, 300)},
			want: []diagram.Point{pt(100, 100), pt(79, 100), pt(79, 171), pt(100, 171), pt(100, 300)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newOrthogonal(t, box)
			trace, err := router.Route(tt.conn)
			if err != nil {
				t.Fatalf("Route failed: %v", err)
			}
			if trace.Truncated {
				t.Fatal("route should not be truncated")
			}
			assertPoints(t, trace.Path.Points, tt.want)
		})
	}
}

func TestOrthogonalRouter_RecordsSegments(t *testing.T) {
	router, cache := newOrthogonal(t, box)
	if _, err := router.Route(diagram.Connection{Start: pt(100, 100), End: pt(100, 300), Direction: diagram.Left}); err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	want := []diagram.OccupancyEntry{
		{Axis: diagram.Horizontal, RangeStart: 79, RangeEnd: 100, Static: 100},
		{Axis: diagram.Vertical, RangeStart: 100, RangeEnd: 171, Static: 79},
		{Axis: diagram.Horizontal, RangeStart: 79, RangeEnd: 100, Static: 171},
		{Axis: diagram.Vertical, RangeStart: 171, RangeEnd: 300, Static: 100},
	}
	got := cache.Entries()
	if len(got) != len(want) {
		t.Fatalf("got %d entries %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestOrthogonalRouter_AvoidsEarlierSegments(t *testing.T) {
	router, _ := newOrthogonal(t, box)
	first, err := router.Route(diagram.Connection{Start: pt(100, 100), End: pt(100, 300), Direction: diagram.Left})
	if err != nil {
		t.Fatalf("first Route failed: %v", err)
	}

	conn := diagram.Connection{Start: pt(103, 100), End: pt(103, 300), Direction: diagram.Left}
	second, err := router.Route(conn)
	if err != nil {
		t.Fatalf("second Route failed: %v", err)
	}

	if second.Path.First() != conn.Start || second.Path.Last() != conn.End {
		t.Errorf("second path runs %v to %v, want %v to %v", second.Path.First(), second.Path.Last(), conn.Start, conn.End)
	}
	if !IsOrthogonal(second.Path) {
		t.Errorf("second path is not orthogonal: %v", second.Path)
	}

	buffer := config.Default().Routing.OccupancyBuffer
	for _, a := range verticalSegments(first.Path) {
		for _, b := range verticalSegments(second.Path) {
			near := b.x >= a.x-buffer && b.x <= a.x+buffer
			overlap := b.lo < a.hi && a.lo < b.hi
			if near && overlap {
				t.Errorf("vertical segment x=%g [%g,%g] runs alongside x=%g [%g,%g]", b.x, b.lo, b.hi, a.x, a.lo, a.hi)
			}
		}
	}

	alone, _ := newOrthogonal(t, box)
	solo, err := alone.Route(conn)
	if err != nil {
		t.Fatalf("solo Route failed: %v", err)
	}
	if solo.Path.String() == second.Path.String() {
		t.Error("occupied corridors should change the second route")
	}
}

func TestOrthogonalRouter_CrossesPerpendicularSegments(t *testing.T) {
	router, cache := newOrthogonal(t, box)
	cache.RecordSegment(diagram.Horizontal, pt(0, 200), pt(300, 200))

	trace, err := router.Route(diagram.Connection{Start: pt(100, 100), End: pt(100, 300), Direction: diagram.Left})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	// The vertical run crosses y=200 without jogging.
	assertPoints(t, trace.Path.Points, []diagram.Point{pt(100, 100), pt(79, 100), pt(79, 171), pt(100, 171), pt(100, 300)})
}

type vertical struct{ x, lo, hi float64 }

func verticalSegments(p diagram.Path) []vertical {
	var out []vertical
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		if a.X == b.X && a.Y != b.Y {
			out = append(out, vertical{x: a.X, lo: min(a.Y, b.Y), hi: max(a.Y, b.Y)})
		}
	}
	return out
}

func TestOrthogonalRouter_Deterministic(t *testing.T) {
	conns := []diagram.Connection{
		{Start: pt(100, 100), End: pt(100, 300), Direction: diagram.Left},
		{Start: pt(103, 100), End: pt(103, 300), Direction: diagram.Left},
	}

	run := func() []string {
		router, _ := newOrthogonal(t, box)
		var out []string
		for _, c := range conns {
			trace, err := router.Route(c)
			if err != nil {
				t.Fatalf("Route failed: %v", err)
			}
			out = append(out, trace.Path.String())
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("connection %d differs between runs:\n%s\n%s", i, a[i], b[i])
		}
	}
}

func TestOrthogonalRouter_NoSourceObstacle(t *testing.T) {
	router, _ := newOrthogonal(t)
	_, err := router.Route(diagram.Connection{Start: pt(0, 0), End: pt(0, 100), Direction: diagram.Left})
	if !errors.Is(err, ErrNoSourceObstacle) {
		t.Fatalf("got %v, want ErrNoSourceObstacle", err)
	}
}

func TestOrthogonalRouter_StepCap(t *testing.T) {
	cfg := config.Default().Routing
	cfg.MaxOrthogonalSteps = 10
	router := NewOrthogonalRouter(obstacles.Build([]diagram.Shape{box}), occupancy.New(cfg.OccupancyBuffer), cfg)

	trace, err := router.Route(diagram.Connection{Start: pt(100, 100), End: pt(100, 300), Direction: diagram.Left})
	if err != nil {
		t.Fatalf("step cap should not be an error, got %v", err)
	}
	if !trace.Truncated {
		t.Error("expected a truncated trace")
	}
	if trace.Steps != 10 {
		t.Errorf("got %d steps, want 10", trace.Steps)
	}
	assertPoints(t, trace.Path.Points, []diagram.Point{pt(100, 100), pt(90, 100)})
}
