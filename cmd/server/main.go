package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/cors"

	"github.com/waliags/tradermindset/internal/config"
	"github.com/waliags/tradermindset/internal/handlers"
	"github.com/waliags/tradermindset/internal/logger"
	"github.com/waliags/tradermindset/internal/middleware"
	"github.com/waliags/tradermindset/internal/monitoring"
	"github.com/waliags/tradermindset/internal/stats"
	"github.com/waliags/tradermindset/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.App.Env, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	st, err := buildStore(cfg)
	if err != nil {
		logg.Fatalw("Failed to initialize store", "backend", cfg.Store.Backend, "error", err)
	}

	statsService := stats.NewService(st)
	metrics := monitoring.NewMetrics(cfg.App.Name)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	router := handlers.Router(st, statsService, logg, metrics, limiter)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logg.Infow("Server starting", "port", cfg.App.Port, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatalw("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logg.Fatalw("Server forced to shutdown", "error", err)
	}

	logg.Info("Server stopped")
}

func buildStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.NewRedis(ctx, client)
	default:
		return store.NewMem(), nil
	}
}
