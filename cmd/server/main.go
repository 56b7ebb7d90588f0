package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fotogate/internal/photo/handler"
	"fotogate/internal/photo/metrics"
	"fotogate/internal/photo/service"
	"fotogate/internal/photo/store"
	"fotogate/internal/photo/store/memory"
	"fotogate/internal/photo/store/postgres"
	"fotogate/internal/platform/config"
	"fotogate/internal/platform/httpserver"
	"fotogate/internal/platform/logger"
	httptransport "fotogate/internal/transport/http"
	"fotogate/internal/watermark"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Env, cfg.LogLevel)

	var (
		st          store.Store
		storeHealth func(ctx context.Context) error
	)
	switch cfg.StoreBackend {
	case "postgres":
		pg, err := postgres.Connect(context.Background(), cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer pg.Close()
		st = pg
		storeHealth = pg.Ping
	default:
		st = memory.NewSeeded()
	}

	engine := watermark.New(watermark.Config{
		Caption:     cfg.WatermarkCaption,
		Position:    watermark.Position(cfg.WatermarkPosition),
		JPEGQuality: cfg.WatermarkJPEGQuality,
	})

	svc := service.New(st, engine,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:      log,
		Photo:       handler.New(svc, log),
		StoreHealth: storeHealth,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting fotogate", "addr", cfg.Addr, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("fotogate stopped")
}
