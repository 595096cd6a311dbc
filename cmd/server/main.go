package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/Lucasbjorklund31/challengebot/internal/api"
	"github.com/Lucasbjorklund31/challengebot/internal/config"
	"github.com/Lucasbjorklund31/challengebot/internal/database"
	"github.com/Lucasbjorklund31/challengebot/internal/handler"
	"github.com/Lucasbjorklund31/challengebot/internal/ledger"
	"github.com/Lucasbjorklund31/challengebot/internal/logger"
	"github.com/Lucasbjorklund31/challengebot/internal/middleware"
	"github.com/Lucasbjorklund31/challengebot/internal/notifier"
	"github.com/Lucasbjorklund31/challengebot/internal/scheduler"
	"github.com/Lucasbjorklund31/challengebot/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}
	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.RunMigrations(ctx); err != nil {
		logger.Error("Migrations failed: %v", err)
		os.Exit(1)
	}
	if err := database.SeedBootstrapAdmin(ctx, cfg); err != nil {
		logger.Error("Bootstrap admin seed failed: %v", err)
		os.Exit(1)
	}

	// Annonces: webhook si configuré, sinon console
	var n notifier.Notifier = notifier.Console{}
	if cfg.NotifyWebhookURL != "" {
		n = notifier.NewWebhook(cfg.NotifyWebhookURL)
	}

	// Scheduler de cycle de vie sur la cadence configurée
	pg := store.PG{}
	sched := scheduler.New(pg, n, now)
	cronRunner, err := sched.Start(cfg.NotifyCron, loc)
	if err != nil {
		logger.Error("Scheduler start failed: %v", err)
		os.Exit(1)
	}
	defer cronRunner.Stop()

	// Une passe immédiate au démarrage: un redémarrage ne doit pas
	// attendre la prochaine cadence pour rattraper un événement manqué
	if err := sched.Tick(ctx); err != nil {
		logger.Warning("Startup lifecycle tick failed: %v", err)
	}

	handler.Init(ledger.New(pg, now), loc)

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	srv := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
