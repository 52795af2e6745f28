// Package scene describes a drawing to route: the obstacle shapes, the named
// anchors connectors attach to, and the links between anchors.
//
// A scene is read from JSON or TOML:
//
//	[[shapes]]
//	id = "db"
//	x = 80
//	y = 100
//	width = 100
//	height = 50
//
//	[[anchors]]
//	name = "db.out"
//	x = 95
//	y = 95
//	size = 10
//
//	[[links]]
//	from = "db.out"
//	to = "api.in"
//	direction = "left"
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"linetrace/diagram"
)

// ErrUnknownAnchor is wrapped when a link names an anchor that does not exist.
var ErrUnknownAnchor = errors.New("unknown anchor")

// Anchor is a named attachment point. With a non-zero Size the anchor is a
// square handle and connects at its centre.
type Anchor struct {
	Name string  `json:"name" toml:"name"`
	X    float64 `json:"x" toml:"x"`
	Y    float64 `json:"y" toml:"y"`
	Size float64 `json:"size,omitempty" toml:"size"`
}

// Position returns the point a connector attaches to.
func (a Anchor) Position() diagram.Point {
	return diagram.Point{X: a.X + a.Size/2, Y: a.Y + a.Size/2}
}

// Link asks for a connector between two anchors.
type Link struct {
	From      string            `json:"from" toml:"from"`
	To        string            `json:"to" toml:"to"`
	Direction diagram.Direction `json:"direction,omitempty" toml:"direction"`
}

// Scene is a complete routing request.
type Scene struct {
	Shapes  []diagram.Shape `json:"shapes" toml:"shapes"`
	Anchors []Anchor        `json:"anchors,omitempty" toml:"anchors"`
	Links   []Link          `json:"links" toml:"links"`
}

// Format identifies a scene encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scene file %q: want .json or .toml", path)
	}
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode scene: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scene format %q", format)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks shape extents and name uniqueness.
func (s *Scene) Validate() error {
	names := make(map[string]bool)
	for i, sh := range s.Shapes {
		if sh.Width <= 0 || sh.Height <= 0 {
			return fmt.Errorf("shape %d (%q) has non-positive size %gx%g", i, sh.ID, sh.Width, sh.Height)
		}
		if sh.ID == "" {
			continue
		}
		if names[sh.ID] {
			return fmt.Errorf("duplicate name %q", sh.ID)
		}
		names[sh.ID] = true
	}
	for _, a := range s.Anchors {
		if a.Name == "" {
			return errors.New("anchor without a name")
		}
		if names[a.Name] {
			return fmt.Errorf("duplicate name %q", a.Name)
		}
		names[a.Name] = true
	}
	return nil
}

// Lookup resolves a name to a point: an anchor's position, or the centre of
// the shape with that ID.
func (s *Scene) Lookup(name string) (diagram.Point, bool) {
	for _, a := range s.Anchors {
		if a.Name == name {
			return a.Position(), true
		}
	}
	for _, sh := range s.Shapes {
		if sh.ID != "" && sh.ID == name {
			return sh.Center(), true
		}
	}
	return diagram.Point{}, false
}

// Connections resolves the links in declaration order. Links naming an
// unknown anchor are skipped; the returned error joins one ErrUnknownAnchor
// per skipped link and is nil when every link resolved.
func (s *Scene) Connections() ([]diagram.Connection, error) {
	conns := make([]diagram.Connection, 0, len(s.Links))
	var errs []error
	for i, l := range s.Links {
		start, ok := s.Lookup(l.From)
		if !ok {
			errs = append(errs, fmt.Errorf("link %d: %w %q", i, ErrUnknownAnchor, l.From))
			continue
		}
		end, ok := s.Lookup(l.To)
		if !ok {
			errs = append(errs, fmt.Errorf("link %d: %w %q", i, ErrUnknownAnchor, l.To))
			continue
		}
		conns = append(conns, diagram.Connection{Start: start, End: end, Direction: l.Direction})
	}
	return conns, errors.Join(errs...)
}
