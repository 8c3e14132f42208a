package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/attendlink/attendlink/internal/bootstrap"
	"github.com/attendlink/attendlink/internal/config"
	"github.com/attendlink/attendlink/internal/db"
	"github.com/attendlink/attendlink/internal/pkg/logger"
)

// Server bundles the HTTP router with the resources it owns.
type Server struct {
	router   *gin.Engine
	database *db.PostgresDB
	deps     *bootstrap.Dependencies
	config   *config.Config
}

// NewServer loads configuration, connects to the database and wires the
// application together.
func NewServer() (*Server, error) {
	cfg, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		return nil, err
	}

	deps := bootstrap.BuildDependencies(cfg, database)
	router := bootstrap.SetupRouter(cfg, deps)

	return &Server{
		router:   router,
		database: database,
		deps:     deps,
		config:   cfg,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("port", s.config.Server.Port).Msg("Starting HTTP server")
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
			if closeErr := httpServer.Close(); closeErr != nil {
				return fmt.Errorf("could not stop server: %w", closeErr)
			}
		}

		s.close()
		logger.Info().Msg("Server stopped")
	}

	return nil
}

func (s *Server) close() {
	if s.deps != nil && s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing redis client")
		}
	}
	if s.database != nil {
		s.database.Close()
	}
}
