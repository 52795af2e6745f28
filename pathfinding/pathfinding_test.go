package pathfinding

import (
	"strings"
	"testing"

	"linetrace/diagram"
)

// parseObstacleMap turns an ASCII map into an obstacle function. Each
// character is one grid cell of the given pitch; X marks a blocked point.
func parseObstacleMap(mapStr string, pitch float64) func(diagram.Point) bool {
	var blocked []diagram.Point
	lines := strings.Split(strings.TrimSpace(mapStr), "\n")
	for y, line := range lines {
		for x, ch := range strings.TrimSpace(line) {
			if ch == 'X' {
				blocked = append(blocked, diagram.Point{X: float64(x) * pitch, Y: float64(y) * pitch})
			}
		}
	}
	return PointSet(blocked)
}

func pt(x, y float64) diagram.Point {
	return diagram.Point{X: x, Y: y}
}

func assertPoints(t *testing.T, got, want []diagram.Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points %v, want %d points %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSimplifyPath(t *testing.T) {
	tests := []struct {
		name string
		in   []diagram.Point
		want []diagram.Point
	}{
		{
			name: "short path unchanged",
			in:   []diagram.Point{pt(0, 0), pt(5, 0)},
			want: []diagram.Point{pt(0, 0), pt(5, 0)},
		},
		{
			name: "collinear run collapses",
			in:   []diagram.Point{pt(0, 0), pt(1, 0), pt(2, 0), pt(3, 0)},
			want: []diagram.Point{pt(0, 0), pt(3, 0)},
		},
		{
			name: "corner kept",
			in:   []diagram.Point{pt(0, 0), pt(1, 0), pt(2, 0), pt(2, 1), pt(2, 2)},
			want: []diagram.Point{pt(0, 0), pt(2, 0), pt(2, 2)},
		},
		{
			name: "reversal kept",
			in:   []diagram.Point{pt(0, 0), pt(-1, 0), pt(-2, 0), pt(3, 0), pt(3, 1)},
			want: []diagram.Point{pt(0, 0), pt(-2, 0), pt(3, 0), pt(3, 1)},
		},
		{
			name: "duplicate dropped",
			in:   []diagram.Point{pt(0, 0), pt(0, 0), pt(0, 4)},
			want: []diagram.Point{pt(0, 0), pt(0, 4)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyPath(diagram.Path{Points: tt.in})
			assertPoints(t, got.Points, tt.want)
		})
	}
}

func TestIsOrthogonal(t *testing.T) {
	if !IsOrthogonal(diagram.Path{Points: []diagram.Point{pt(0, 0), pt(0, 5), pt(7, 5)}}) {
		t.Error("L-shaped path should be orthogonal")
	}
	if IsOrthogonal(diagram.Path{Points: []diagram.Point{pt(0, 0), pt(3, 4)}}) {
		t.Error("diagonal path should not be orthogonal")
	}
}

func TestGetNeighbors(t *testing.T) {
	got := GetNeighbors(pt(0, 0), 10)
	want := []diagram.Point{
		pt(-10, -10), pt(-10, 0), pt(-10, 10),
		pt(0, -10), pt(0, 10),
		pt(10, -10), pt(10, 0), pt(10, 10),
	}
	assertPoints(t, got, want)
}

func TestPointSet(t *testing.T) {
	blocked := PointSet([]diagram.Point{pt(10, 10)})
	if !blocked(pt(10, 10)) {
		t.Error("listed point should be blocked")
	}
	if blocked(pt(10, 11)) {
		t.Error("only exact matches are blocked")
	}
}
