// Package server exposes the event stream and the gamepad snapshot over
// HTTP: a WebSocket endpoint, a JSON API, and the embedded frontend.
package server

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/inputkit/padbridge/internal/hub"
)

type Server struct {
	log         *slog.Logger
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	lister      hub.Lister
	frontendFS  fs.FS
	addr        string
	httpServer  *http.Server
}

func New(log *slog.Logger, h *hub.Hub, b *hub.Broadcaster, lister hub.Lister, frontendFS fs.FS, addr string) *Server {
	return &Server{
		log:         log,
		hub:         h,
		broadcaster: b,
		lister:      lister,
		frontendFS:  frontendFS,
		addr:        addr,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket(s.log, s.hub, s.broadcaster, s.lister))
	mux.HandleFunc("/api/gamepads", s.handleGamepads)

	// Static frontend, minified on the way out.
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("application/javascript", js.Minify)
	mux.Handle("/", m.Middleware(http.FileServer(http.FS(s.frontendFS))))

	return mux
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.log.Info("http server listening", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) handleGamepads(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.lister.ListGamepads()); err != nil {
		s.log.Error("encode gamepad list", "error", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.log.Info("shutting down http server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
