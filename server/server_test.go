package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"linetrace/config"
	"linetrace/diagram"
)

const boxScene = `{
  "shapes": [{"id": "box", "x": 80, "y": 100, "width": 100, "height": 50}],
  "anchors": [{"name": "a", "x": 100, "y": 100}, {"name": "b", "x": 100, "y": 300}],
  "links": [{"from": "a", "to": "b", "direction": "left"}]
}`

var boxRoute = []diagram.Point{{X: 100, Y: 100}, {X: 79, Y: 100}, {X: 79, Y: 171}, {X: 100, Y: 171}, {X: 100, Y: 300}}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(config.Default(), nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decodeReply(t *testing.T, r io.Reader) Reply {
	t.Helper()
	var reply Reply
	if err := json.NewDecoder(r).Decode(&reply); err != nil {
		t.Fatalf("invalid reply: %v", err)
	}
	return reply
}

func samePoints(a, b []diagram.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status %d, want 200", resp.StatusCode)
	}
}

func TestRoute(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/route", "application/json", strings.NewReader(boxScene))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}

	reply := decodeReply(t, resp.Body)
	if reply.Error != "" || reply.Session == "" {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if len(reply.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(reply.Routes))
	}
	if got := reply.Routes[0]; !samePoints(got.Points, boxRoute) || got.Strategy != config.StrategyOrthogonal {
		t.Errorf("got route %+v", got)
	}
}

func TestRoute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		body   string
		status int
	}{
		{"malformed JSON", "", `{"shapes": [`, http.StatusBadRequest},
		{"invalid shape", "", `{"shapes": [{"x": 0, "y": 0, "width": 0, "height": 5}]}`, http.StatusBadRequest},
		{"unknown anchor", "", `{"links": [{"from": "nope", "to": "nada"}]}`, http.StatusBadRequest},
		{"unknown strategy", "?strategy=teleport", boxScene, http.StatusBadRequest},
		{
			"no source obstacle", "",
			`{"anchors": [{"name": "a", "x": 0, "y": 0}, {"name": "b", "x": 10, "y": 10}], "links": [{"from": "a", "to": "b"}]}`,
			http.StatusUnprocessableEntity,
		},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/route"+tt.query, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status %d, want %d", resp.StatusCode, tt.status)
			}
			if reply := decodeReply(t, resp.Body); reply.Error == "" {
				t.Error("reply has no error message")
			}
		})
	}
}

func TestRoute_Strategy(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/route?strategy=grid", "application/json", strings.NewReader(boxScene))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	reply := decodeReply(t, resp.Body)
	if len(reply.Routes) != 1 || reply.Routes[0].Strategy != config.StrategyGrid {
		t.Errorf("unexpected reply %+v", reply)
	}
}

func TestWebsocket(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	// Sessions are per message, so the same scene routes the same way twice.
	for i := range 2 {
		if err := conn.Write(ctx, websocket.MessageText, []byte(boxScene)); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		reply := decodeReply(t, strings.NewReader(string(data)))
		if len(reply.Routes) != 1 || !samePoints(reply.Routes[0].Points, boxRoute) {
			t.Errorf("message %d: unexpected reply %+v", i, reply)
		}
	}

	if err := conn.Write(ctx, websocket.MessageText, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if reply := decodeReply(t, strings.NewReader(string(data))); reply.Error == "" {
		t.Error("expected an error reply for a malformed scene")
	}
}

func TestRun_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(config.Default(), nil).Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
