package render

import (
	"context"
	"encoding/json"
	"io"

	"linetrace/pathfinding"
)

// Document is the JSON form of a routed drawing.
type Document struct {
	Session string              `json:"session,omitempty"`
	Routes  []pathfinding.Route `json:"routes"`
}

// JSONRenderer writes the routes as an indented JSON document.
type JSONRenderer struct{}

func (JSONRenderer) Format() string { return "json" }

func (JSONRenderer) Render(_ context.Context, w io.Writer, d Drawing) error {
	routes := d.Routes
	if routes == nil {
		routes = []pathfinding.Route{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Session: d.Session, Routes: routes})
}
