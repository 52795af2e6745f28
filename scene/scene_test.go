package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"linetrace/diagram"
)

const sceneJSON = `{
  "shapes": [
    {"id": "db", "x": 80, "y": 100, "width": 100, "height": 50},
    {"id": "api", "x": 80, "y": 300, "width": 100, "height": 50}
  ],
  "anchors": [
    {"name": "db.out", "x": 95, "y": 95, "size": 10},
    {"name": "api.in", "x": 100, "y": 300}
  ],
  "links": [
    {"from": "db.out", "to": "api.in", "direction": "right"},
    {"from": "db", "to": "api"}
  ]
}`

const sceneTOML = `
[[shapes]]
id = "db"
x = 80
y = 100
width = 100
height = 50

[[shapes]]
id = "api"
x = 80
y = 300
width = 100
height = 50

[[anchors]]
name = "db.out"
x = 95
y = 95
size = 10

[[anchors]]
name = "api.in"
x = 100
y = 300

[[links]]
from = "db.out"
to = "api.in"
direction = "right"

[[links]]
from = "db"
to = "api"
`

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json", sceneJSON, FormatJSON},
		{"toml", sceneTOML, FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(s.Shapes) != 2 || len(s.Anchors) != 2 || len(s.Links) != 2 {
				t.Fatalf("unexpected scene %+v", s)
			}

			conns, err := s.Connections()
			if err != nil {
				t.Fatalf("Connections failed: %v", err)
			}
			want := []diagram.Connection{
				{Start: diagram.Point{X: 100, Y: 100}, End: diagram.Point{X: 100, Y: 300}, Direction: diagram.Right},
				{Start: diagram.Point{X: 130, Y: 125}, End: diagram.Point{X: 130, Y: 325}, Direction: diagram.DirNone},
			}
			if len(conns) != len(want) {
				t.Fatalf("got %d connections, want %d", len(conns), len(want))
			}
			for i := range want {
				if conns[i] != want[i] {
					t.Errorf("connection %d: got %+v, want %+v", i, conns[i], want[i])
				}
			}
		})
	}
}

func TestConnections_UnknownAnchor(t *testing.T) {
	s := &Scene{
		Anchors: []Anchor{{Name: "a", X: 0, Y: 0}, {Name: "b", X: 0, Y: 50}},
		Links: []Link{
			{From: "a", To: "missing"},
			{From: "a", To: "b"},
		},
	}

	conns, err := s.Connections()
	if !errors.Is(err, ErrUnknownAnchor) {
		t.Fatalf("got %v, want ErrUnknownAnchor", err)
	}
	if len(conns) != 1 || conns[0].End != (diagram.Point{X: 0, Y: 50}) {
		t.Errorf("the resolvable link should survive, got %+v", conns)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
	}{
		{"zero width shape", Scene{Shapes: []diagram.Shape{{ID: "a", Width: 0, Height: 10}}}},
		{"duplicate shape id", Scene{Shapes: []diagram.Shape{{ID: "a", Width: 1, Height: 1}, {ID: "a", Width: 1, Height: 1}}}},
		{"anchor shadows shape", Scene{Shapes: []diagram.Shape{{ID: "a", Width: 1, Height: 1}}, Anchors: []Anchor{{Name: "a"}}}},
		{"unnamed anchor", Scene{Anchors: []Anchor{{X: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.scene.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestParse_BadDirection(t *testing.T) {
	_, err := Parse([]byte(`{"links":[{"from":"a","to":"b","direction":"up"}]}`), FormatJSON)
	if err == nil {
		t.Fatal("expected an error for an unknown direction")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(sceneTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Links) != 2 {
		t.Errorf("got %d links, want 2", len(s.Links))
	}

	if _, err := Load(filepath.Join(dir, "scene.yaml")); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}
