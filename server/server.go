// Package server exposes the router over HTTP and websockets.
//
// Every request routes its scene in a fresh session, so concurrent requests
// share nothing but the configuration.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linetrace/config"
	"linetrace/pathfinding"
	"linetrace/render"
	"linetrace/scene"
)

// maxSceneBytes bounds a request body or websocket message.
const maxSceneBytes = 1 << 20

// Reply is the body of every routing response. On failure Error is set and
// Routes holds whatever was routed before it.
type Reply struct {
	render.Document
	Error string `json:"error,omitempty"`
}

// Server routes scenes posted to it.
type Server struct {
	cfg    config.Config
	logger *log.Logger
}

// New creates a server. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{cfg: cfg, logger: logger}
}

// Handler returns the HTTP routes:
//
//	GET  /healthz
//	POST /route?strategy=astar
//	GET  /ws
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Post("/route", s.handleRoute)
	r.Get("/ws", s.handleWebsocket)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Run serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSceneBytes))
	if err != nil {
		status := http.StatusBadRequest
		if tooLarge := (*http.MaxBytesError)(nil); errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeReply(w, status, Reply{Error: err.Error()})
		return
	}

	reply, err := s.route(data, r.URL.Query().Get("strategy"))
	writeReply(w, statusFor(err), reply)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("websocket accept failed", "err", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	conn.SetReadLimit(maxSceneBytes)

	ctx := r.Context()
	strategy := r.URL.Query().Get("strategy")
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		reply, _ := s.route(data, strategy)
		out, err := json.Marshal(reply)
		if err != nil {
			s.logger.Error("encode reply", "err", err)
			return
		}

		writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = conn.Write(writeCtx, websocket.MessageText, out)
		cancel()
		if err != nil {
			return
		}
	}
}

// badRequest marks errors caused by the request itself.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func statusFor(err error) int {
	var br badRequest
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &br):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// route parses a JSON scene and routes all of its links in a new session.
func (s *Server) route(data []byte, strategy string) (Reply, error) {
	sc, err := scene.Parse(data, scene.FormatJSON)
	if err == nil {
		err = sc.Validate()
	}
	if err != nil {
		return Reply{Error: err.Error()}, badRequest{err}
	}

	conns, err := sc.Connections()
	if err != nil {
		return Reply{Error: err.Error()}, badRequest{err}
	}

	cfg := s.cfg
	if strategy != "" {
		cfg.Routing.Strategy = config.Strategy(strategy)
	}
	session, err := pathfinding.NewSession(cfg, sc.Shapes, pathfinding.WithLogger(s.logger))
	if err != nil {
		return Reply{Error: err.Error()}, badRequest{err}
	}

	routes, err := session.RouteAll(conns)
	if routes == nil {
		routes = []pathfinding.Route{}
	}
	reply := Reply{Document: render.Document{Session: session.ID, Routes: routes}}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, err
}

func writeReply(w http.ResponseWriter, status int, reply Reply) {
	if reply.Routes == nil {
		reply.Routes = []pathfinding.Route{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(reply)
}
