package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/univera/univera/internal/pkg/logger"
	"github.com/univera/univera/internal/server"
)

// @title Univera API
// @version 1.0
// @description API for the Univera university resource planning backend

// @contact.name API Support
// @contact.email support@univera.edu

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A missing .env file is fine; configuration falls back to
	// configs/config.yaml and process environment.
	_ = godotenv.Load()

	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
