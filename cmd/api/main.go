package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/attendlink/attendlink/internal/pkg/logger"
	"github.com/attendlink/attendlink/internal/server"
)

// @title AttendLink API
// @version 1.0
// @description College attendance tracking backend: courses, attendance marking, shortage alerts, dashboards and reports.

// @contact.name AttendLink Team
// @contact.email support@attendlink.app

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	// .env is optional; real deployments use environment variables
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using environment variables")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
