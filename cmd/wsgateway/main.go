package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lukeshafer/indigestion-cards-sub002/cardsite"
	"github.com/lukeshafer/indigestion-cards-sub002/cardsite/logger"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/realtime"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := cardsite.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(logger.New("Indigestion-WS", cfg.Log.Format, cfg.Log.Level, cfg.Log.AddSource))

	slog.Info("Starting websocket gateway",
		slog.String("type", "ws"),
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := realtime.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer client.Close()

	broadcaster := realtime.NewRedisBroadcaster(client, cfg.Realtime.Channel)
	registry := realtime.NewRedisRegistry(client, cfg.Realtime.SetKey)

	var origins []string
	for _, o := range strings.Split(cfg.Web.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	hub := realtime.NewHub(registry, broadcaster, origins)
	go hub.Run(ctx, broadcaster.Subscribe(ctx))

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		total, err := registry.Count(r.Context())
		if err != nil {
			http.Error(w, "redis unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":      "healthy",
			"version":     version,
			"local":       hub.Len(),
			"connections": total,
		})
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Realtime.Host, cfg.Realtime.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Websocket gateway listening",
			slog.String("type", "ws"),
			slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Gateway server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down websocket gateway...", slog.String("type", "ws"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Gateway shutdown error", slog.Any("error", err))
	}
	slog.Info("Websocket gateway shutdown complete", slog.String("type", "ws"))
}
