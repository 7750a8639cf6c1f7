package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/clubreview/club-review-service/config"
	"github.com/clubreview/club-review-service/database"
	"github.com/clubreview/club-review-service/handlers"
	"github.com/clubreview/club-review-service/middleware"
	"github.com/clubreview/club-review-service/utils"
)

const serviceName = "club-review-service"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	utils.SetupLogging(cfg.Server.LogFormat, cfg.Server.LogLevel)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Seed(db, cfg.Seed.ClubsFile); err != nil {
		slog.Error("Failed to seed database", "error", err)
		os.Exit(1)
	}

	apiServer := handlers.NewAPIServer(db)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", utils.HealthHandler(serviceName))
	apiServer.SetupRoutes(mux)

	handler := middleware.CORSMiddleware()(middleware.RequestIDMiddleware(mux))

	server := utils.CreateServer(utils.DefaultServerConfig(cfg.Server.Port), handler)
	if err := utils.StartServerWithGracefulShutdown(server, serviceName); err != nil {
		os.Exit(1)
	}
}
