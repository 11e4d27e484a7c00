package main

import (
	"context"

	"github.com/pairup-app/pairup/internal/app"
	"github.com/pairup-app/pairup/internal/cache"
	"github.com/pairup-app/pairup/internal/config"
	"github.com/pairup-app/pairup/internal/db"
	"github.com/pairup-app/pairup/internal/logger"
	"github.com/pairup-app/pairup/internal/server"
	"github.com/pairup-app/pairup/internal/service/admin"
	"github.com/pairup-app/pairup/internal/service/connections"
	"github.com/pairup-app/pairup/internal/service/discovery"
	"github.com/pairup-app/pairup/internal/service/moderation"
	"github.com/pairup-app/pairup/internal/service/profile"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(cfg, database, redisCache, log)

	registrars := []server.Registrar{
		discovery.NewRegistrar(appCtx),
		connections.NewRegistrar(appCtx),
		moderation.NewRegistrar(appCtx),
		admin.NewRegistrar(appCtx),
		profile.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
