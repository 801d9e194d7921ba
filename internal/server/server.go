package server

import (
	"file-vault/internal/infrastructure/config"
	"file-vault/internal/middleware"

	"github.com/gorilla/mux"
)

// Server represents the HTTP server with configured middleware
type Server struct {
	Router *mux.Router
}

// New creates a new server instance and attaches middlewares.
// Order matters: request id first, CORS for preflight, panic recovery,
// then authentication, authorization and logging.
func New(cfg *config.Config) *Server {
	router := mux.NewRouter()

	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CorsMiddleware)
	router.Use(middleware.ErrorHandlerMiddleware)
	router.Use(middleware.AuthMiddleware([]byte(cfg.Security.JWTSecret)))
	router.Use(middleware.Authorize())
	router.Use(middleware.LoggingMiddleware)

	return &Server{Router: router}
}
