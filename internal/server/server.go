package server

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

//go:embed index.html
var indexPage []byte

// Server serves the aligned-series dashboard.
type Server struct {
	store *Store
	hub   *Hub
	http  *http.Server
}

// New wires the router over the store and hub.
func New(addr string, store *Store, hub *Hub) *Server {
	s := &Server{store: store, hub: hub}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/api/series", s.handleSeries)
	r.Get("/ws", hub.ServeWS)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown or failure.
func (s *Server) Start() error {
	log.Printf("[INFO] dashboard listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.store.Payloads())
}
