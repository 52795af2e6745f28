package occupancy

import (
	"strings"
	"testing"

	"linetrace/diagram"
)

func TestCache_RecordNormalizes(t *testing.T) {
	c := New(5)
	c.Record(diagram.OccupancyEntry{Axis: diagram.Horizontal, RangeStart: 100, RangeEnd: 79, Static: 100})

	e := c.Entries()[0]
	if e.RangeStart != 79 || e.RangeEnd != 100 {
		t.Errorf("range = [%v,%v], want [79,100]", e.RangeStart, e.RangeEnd)
	}
}

func TestCache_IsOccupied(t *testing.T) {
	c := New(5)
	c.Record(diagram.OccupancyEntry{Axis: diagram.Vertical, RangeStart: 100, RangeEnd: 171, Static: 79})
	c.Record(diagram.OccupancyEntry{Axis: diagram.Horizontal, RangeStart: 79, RangeEnd: 100, Static: 171})

	tests := []struct {
		name string
		axis diagram.Axis
		x, y float64
		want bool
	}{
		{"exact vertical", diagram.Vertical, 79, 120, true},
		{"vertical within buffer", diagram.Vertical, 84, 120, true},
		{"vertical beyond buffer", diagram.Vertical, 85, 120, false},
		{"vertical range start", diagram.Vertical, 79, 100, true},
		{"vertical outside range", diagram.Vertical, 79, 172, false},
		{"exact horizontal", diagram.Horizontal, 90, 171, true},
		{"horizontal within buffer", diagram.Horizontal, 90, 166, true},
		{"horizontal outside range", diagram.Horizontal, 101, 171, false},
		{"axis must match", diagram.Horizontal, 79, 120, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsOccupied(tt.axis, tt.x, tt.y); got != tt.want {
				t.Errorf("IsOccupied(%v, %v, %v) = %v, want %v", tt.axis, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCache_Monotonic(t *testing.T) {
	c := New(5)
	segments := []struct {
		axis diagram.Axis
		a, b diagram.Point
	}{
		{diagram.Horizontal, diagram.Point{X: 100, Y: 100}, diagram.Point{X: 79, Y: 100}},
		{diagram.Vertical, diagram.Point{X: 79, Y: 100}, diagram.Point{X: 79, Y: 171}},
		{diagram.Horizontal, diagram.Point{X: 79, Y: 171}, diagram.Point{X: 100, Y: 171}},
		{diagram.Vertical, diagram.Point{X: 100, Y: 171}, diagram.Point{X: 100, Y: 300}},
	}

	for i, s := range segments {
		c.RecordSegment(s.axis, s.a, s.b)

		// Every segment recorded so far, including this one, stays occupied.
		for _, prev := range segments[:i+1] {
			for _, p := range []diagram.Point{prev.a, prev.b} {
				if !c.IsOccupied(prev.axis, p.X, p.Y) {
					t.Errorf("after %d records, endpoint %v of %v segment not occupied", i+1, p, prev.axis)
				}
			}
		}
	}

	if c.Len() != len(segments) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(segments))
	}
}

func TestCache_Stats(t *testing.T) {
	c := New(5)
	c.RecordSegment(diagram.Vertical, diagram.Point{X: 10, Y: 0}, diagram.Point{X: 10, Y: 50})

	c.IsOccupied(diagram.Vertical, 10, 25)
	c.IsOccupied(diagram.Vertical, 40, 25)

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d,%d,%d, want 1,1,1", hits, misses, size)
	}
	if !strings.Contains(c.String(), "hitRate=50.0%") {
		t.Errorf("String() = %q", c.String())
	}
}
