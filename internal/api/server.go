// Package api serves QT readings over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Server represents the HTTP API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new API server on port. Requests without a timezone use
// defaultTimezone.
func NewServer(port string, readings ReadingService, defaultTimezone string) *Server {
	handler := NewHandler(readings, defaultTimezone)

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           NewRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter wires the routes and middleware around handler.
func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.HandleFunc("/metrics", handler.Metrics).Methods("GET")

	// Path kept for existing clients.
	router.HandleFunc("/get-qt-bible-data", handler.GetQTBibleData).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/schedule/{year:[0-9]{4}}/{month:[0-9]{1,2}}", handler.GetSchedule).Methods("GET")

	return router
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
