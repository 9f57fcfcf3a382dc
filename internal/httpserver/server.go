// Package httpserver wires the REST routes and runs the HTTP server.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/yujinlab/authgate/internal/config"
	"github.com/yujinlab/authgate/internal/handler"
	"github.com/yujinlab/authgate/internal/middleware"
)

// Server is the HTTP server of this application.
type Server struct {
	Config     config.Config
	Middleware middleware.Middleware
	Handler    *handler.Handler
	httpServer *http.Server
}

// Start sets up all the routes on the server and calls ListenAndServe on it.
//
// This is a blocking call and will panic if the server is unable to start.
func (s *Server) Start() {
	// Create the HTTP server.
	s.httpServer = &http.Server{
		Addr:              s.Config.HTTPServer.Addr,
		ReadHeaderTimeout: time.Minute,
		Handler:           s.getHandler(),
	}

	// Gracefully shut down upon interruption.
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		slog.Info("interruption detected, gracefully shutting down the server")
		if err := s.httpServer.Shutdown(context.Background()); err != nil {
			slog.Error("failed to gracefully shutdown the server", "err", err)
		}
	}()

	slog.Info("starting http server", "name", s.Config.Application.Name, "addr", s.Config.HTTPServer.Addr)
	// Start the HTTP server.
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error in ListenAndServe call", "err", err)
		panic(err)
	}
}

// getHandler attaches middleware and REST methods to the router.
func (s *Server) getHandler() http.Handler {
	router := mux.NewRouter()

	// Attach middleware.
	router.Use(s.Middleware.Recovery)
	router.Use(s.Middleware.CORS)
	router.Use(s.Middleware.Security)
	router.Use(s.Middleware.AccessLogger)

	// Auth URL route.
	router.HandleFunc("/api/auth/{provider}/login", s.Handler.Login).Methods(http.MethodGet)
	// Provider callback route.
	router.HandleFunc("/api/auth/{provider}/callback", s.Handler.Callback).Methods(http.MethodGet)

	// Health check.
	router.HandleFunc("/api/health", s.Handler.Health).Methods(http.MethodGet, http.MethodHead)

	// Handle 404.
	router.PathPrefix("/").HandlerFunc(s.Handler.NotFound)

	return router
}
