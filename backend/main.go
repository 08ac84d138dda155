package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/config"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/handlers"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/middleware"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/services"
	"github.com/lukeshafer/indigestion-cards-sub002/cardsite"
	"github.com/lukeshafer/indigestion-cards-sub002/cardsite/logger"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/catalog"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/notify"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/packs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/trades"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/users"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/repositories"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/eventbus"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/realtime"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/storage"
)

const catalogCacheSize = 512

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := cardsite.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(logger.New("Indigestion", cfg.Log.Format, cfg.Log.Level, cfg.Log.AddSource))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Starting Indigestion Cards API",
		slog.String("version", version),
		slog.String("commit", commit))

	webCfg := config.NewWebAppConfig(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...", slog.String("type", "db"))
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database",
			slog.String("type", "db"),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Database connected successfully", slog.String("type", "db"))

	bucket, err := storage.New(ctx, cfg.S3)
	if err != nil {
		slog.Error("Failed to create object storage client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	bus, err := eventbus.New(ctx, cfg.Events, cfg.S3)
	if err != nil {
		slog.Error("Failed to create event bus client",
			slog.String("type", "event"),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient, err := realtime.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	notifier := notify.NewFanout(realtime.NewRedisBroadcaster(redisClient, cfg.Realtime.Channel), bus)

	catalogRepo := repositories.NewCatalogRepository(db.BunDB())
	cache, err := catalog.NewCache(catalogRepo, catalogCacheSize)
	if err != nil {
		slog.Error("Failed to create catalog cache", slog.String("error", err.Error()))
		os.Exit(1)
	}

	twitch := services.NewTwitchService(webCfg)
	manager := session.NewManager(session.Config{
		Secret:         cfg.Session.Secret,
		TTL:            cfg.Session.TTL.Std(),
		CurrentVersion: cfg.Session.CurrentVersion,
		MinVersion:     cfg.Session.MinVersion,
	})

	webApp := &handlers.WebApp{
		Config:   webCfg,
		DB:       db,
		Catalog:  catalog.NewService(catalogRepo, bucket, cache),
		Packs:    packs.NewService(repositories.NewPackRepository(db.BunDB()), cache, twitch, notifier),
		Users:    users.NewService(repositories.NewUserRepository(db.BunDB())),
		Trades:   trades.NewService(repositories.NewTradeRepository(db.BunDB()), notifier),
		Twitch:   twitch,
		Sessions: services.NewSessionService(webCfg, manager),
		Version:  version,
		Commit:   commit,
	}

	app := fiber.New(fiber.Config{
		AppName:      "Indigestion Cards API",
		ServerHeader: "Indigestion",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    12 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(webCfg.AllowedOrigins(), ","),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cookie",
		AllowCredentials: true,
	}))
	app.Use(requestid.New())
	app.Use(middleware.LoggingMiddleware())

	handlers.Register(app, webApp)

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting backend server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down backend server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	notifier.Wait()

	slog.Info("Backend server shutdown complete")
}
