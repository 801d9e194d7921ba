package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"file-vault/internal/authz"
	"file-vault/internal/infrastructure/config"
	"file-vault/internal/infrastructure/di"
	"file-vault/internal/logger"
	"file-vault/internal/server"
)

func main() {
	cfg := config.Load()

	container, err := di.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer container.Close()

	if err := logger.InitLogger(container.DB); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := authz.Init(cfg.Security.CasbinModel, cfg.Security.CasbinPolicy); err != nil {
		log.Fatalf("Failed to initialize authorization: %v", err)
	}

	srv := server.New(cfg)
	container.Handler.RegisterRoutes(srv.Router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		l := logger.GetLogger()
		l.Info(logger.EventSystemStart, fmt.Sprintf("Server starting on %s", addr), map[string]interface{}{
			"addr":    addr,
			"version": cfg.Application.Version,
			"storage": cfg.Storage.Backend,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.GetLogger().Info(logger.EventSystemStop, "Server exited", nil)
}
