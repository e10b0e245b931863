package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/ziz0u9/MillesBTP-sub000/internal/amendment"
	amendmentStore "github.com/ziz0u9/MillesBTP-sub000/internal/amendment/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/categorize"
	categorizeStore "github.com/ziz0u9/MillesBTP-sub000/internal/categorize/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/client"
	clientStore "github.com/ziz0u9/MillesBTP-sub000/internal/client/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/config"
	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	costStore "github.com/ziz0u9/MillesBTP-sub000/internal/cost/store"
	"github.com/ziz0u9/MillesBTP-sub000/internal/database"
	"github.com/ziz0u9/MillesBTP-sub000/internal/event"
	eventStore "github.com/ziz0u9/MillesBTP-sub000/internal/event/store"
	btpHttp "github.com/ziz0u9/MillesBTP-sub000/internal/http"
	amendmentHandler "github.com/ziz0u9/MillesBTP-sub000/internal/http/amendment"
	categorizeHandler "github.com/ziz0u9/MillesBTP-sub000/internal/http/categorize"
	clientHandler "github.com/ziz0u9/MillesBTP-sub000/internal/http/client"
	costHandler "github.com/ziz0u9/MillesBTP-sub000/internal/http/cost"
	eventHandler "github.com/ziz0u9/MillesBTP-sub000/internal/http/event"
	importHandler "github.com/ziz0u9/MillesBTP-sub000/internal/http/importcosts"
	worksiteHandler "github.com/ziz0u9/MillesBTP-sub000/internal/http/worksite"
	"github.com/ziz0u9/MillesBTP-sub000/internal/importer"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
	worksiteStore "github.com/ziz0u9/MillesBTP-sub000/internal/worksite/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		worksiteService   = worksite.NewService(worksiteStore.New(db))
		costService       = cost.NewService(costStore.New(db))
		amendmentService  = amendment.NewService(amendmentStore.New(db))
		eventService      = event.NewService(eventStore.New(db))
		clientService     = client.NewService(clientStore.New(db))
		categorizeService = categorize.NewService(categorizeStore.New(db))
		importService     = importer.NewService()
	)

	var (
		clientH     = clientHandler.NewHandler(clientService)
		worksiteH   = worksiteHandler.NewHandler(worksiteService)
		costH       = costHandler.NewHandler(costService)
		amendmentH  = amendmentHandler.NewHandler(amendmentService)
		eventH      = eventHandler.NewHandler(eventService)
		importH     = importHandler.NewHandler(importService, costService, categorizeService)
		categorizeH = categorizeHandler.NewHandler(categorizeService)
	)

	router := btpHttp.New(
		[]byte(cfg.Auth.JWTSecret),
		cfg.CORS.AllowedOrigins,
		clientH,
		worksiteH,
		costH,
		amendmentH,
		eventH,
		importH,
		categorizeH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
