package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignisml/ignis/internal/api"
	"github.com/ignisml/ignis/internal/config"
	"github.com/ignisml/ignis/internal/logging"
	"github.com/ignisml/ignis/internal/model"
	"github.com/ignisml/ignis/internal/pipeline"
	"github.com/ignisml/ignis/internal/registry"
	"github.com/ignisml/ignis/internal/weather"
	"github.com/ignisml/ignis/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	// A missing or malformed model bundle is a configuration fault: the
	// service must not accept requests without it.
	bundle, err := model.Load(cfg.Model.BundlePath)
	if err != nil {
		logging.Fatalf("Failed to load model bundle: %v", err)
	}
	predictor := model.NewPredictor(bundle, cfg.Model.PrimaryWeight, cfg.Model.SecondaryWeight)
	slog.Info("model bundle loaded", "kind", bundle.Metadata.Kind, "accuracy", bundle.Metadata.Accuracy)

	var terrain registry.TerrainRegistry
	if cfg.Registry.DBPath != "" {
		sqlReg, err := registry.NewSQLiteRegistry(cfg.Registry.DBPath)
		if err != nil {
			logging.Fatalf("Failed to load terrain registry: %v", err)
		}
		slog.Info("terrain registry loaded", "path", cfg.Registry.DBPath, "entries", sqlReg.Len())
		terrain = sqlReg
	} else {
		terrain = registry.NewStaticRegistry()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(cfg.Batch.InferenceWorkers, cfg.Batch.InferenceBuffer, predictor)
	pool.Start(ctx)

	weatherClient := weather.NewClient(weather.Options{
		BaseURL:       cfg.Weather.BaseURL,
		HistoricalURL: cfg.Weather.HistoricalURL,
		Timeout:       cfg.Weather.Timeout,
		CacheTTL:      cfg.Weather.CacheTTL,
		MinInterval:   cfg.Weather.MinRequestInterval,
	})

	orchestrator := pipeline.New(weatherClient, terrain, pool, pipeline.Options{
		BatchSize: cfg.Batch.Size,
		Pacing:    cfg.Batch.Pacing,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler := api.NewHandler(orchestrator, weatherClient, bundle.Metadata)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	// Drain in-flight requests before tearing down the inference pool;
	// a live /api/predict must never race a stopping pool.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	pool.Stop()

	slog.Info("shutdown complete")
}
