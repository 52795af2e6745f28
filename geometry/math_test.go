package geometry

import (
	"math"
	"testing"

	"linetrace/diagram"
)

func pt(x, y float64) diagram.Point {
	return diagram.Point{X: x, Y: y}
}

func TestRoundPoint(t *testing.T) {
	tests := []struct {
		in   diagram.Point
		m    float64
		want diagram.Point
	}{
		{pt(14, 15), 10, pt(10, 20)},
		{pt(-14, -16), 10, pt(-10, -20)},
		{pt(3.3, 4.4), 0, pt(3.3, 4.4)},
		{pt(20, 13), 7, pt(21, 14)},
	}
	for _, tt := range tests {
		if got := RoundPoint(tt.in, tt.m); got != tt.want {
			t.Errorf("RoundPoint(%v, %g) = %v, want %v", tt.in, tt.m, got, tt.want)
		}
	}
}

func TestPathLength(t *testing.T) {
	if got := PathLength([]diagram.Point{pt(0, 0), pt(3, 4), pt(3, 10)}); got != 11 {
		t.Errorf("got %g, want 11", got)
	}
	if got := PathLength([]diagram.Point{pt(1, 1)}); got != 0 {
		t.Errorf("single point: got %g, want 0", got)
	}
}

func TestPathDirection(t *testing.T) {
	tests := []struct {
		name       string
		start, end diagram.Point
		p          diagram.Point
		want       SegmentKind
	}{
		{"vertical", pt(5, 0), pt(5, 10), pt(5, 4), SegmentVertical},
		{"horizontal", pt(0, 5), pt(10, 5), pt(10, 5), SegmentHorizontal},
		{"outside span", pt(0, 5), pt(10, 5), pt(11, 5), SegmentNone},
		{"diagonal", pt(0, 0), pt(10, 10), pt(5, 5), SegmentNone},
		{"reversed span", pt(5, 10), pt(5, 0), pt(5, 4), SegmentNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathDirection(tt.start, tt.end, tt.p); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(2) != 1 {
		t.Error("Sign")
	}
	if !InRange(5, 5, 10) || InRange(11, 5, 10) {
		t.Error("InRange")
	}
	if !Near(104, 100, 5) || Near(106, 100, 5) {
		t.Error("Near")
	}
	if !ApproxEqual(pt(0.1+0.2, 1), pt(0.3, 1)) || ApproxEqual(pt(0, 0), pt(0, 1e-6)) {
		t.Error("ApproxEqual")
	}
	if !IsAligned(pt(0, 1), pt(5, 1), pt(9, 1)) || IsAligned(pt(0, 0), pt(1, 1), pt(2, 2)) {
		t.Error("IsAligned")
	}
	if d := Distance(pt(0, 0), pt(3, 4)); math.Abs(d-5) > 1e-12 {
		t.Errorf("Distance = %g", d)
	}
}
