package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/smirnov-dev/presence_sync/internal/bus"
	"github.com/smirnov-dev/presence_sync/internal/config"
	v1 "github.com/smirnov-dev/presence_sync/internal/handler/http/v1"
	"github.com/smirnov-dev/presence_sync/internal/models"
	"github.com/smirnov-dev/presence_sync/internal/replicate"
	"github.com/smirnov-dev/presence_sync/internal/service"
	"github.com/smirnov-dev/presence_sync/internal/store"
	"github.com/smirnov-dev/presence_sync/pkg/logger"
	redisclient "github.com/smirnov-dev/presence_sync/pkg/redis"
)

// @title Presence Sync API
// @version 1.0
// @description Replicated attendance board: events, check-in locations and work schedules.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func newStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.KV, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemoryKV(), nil
	case config.BackendFile:
		return store.NewFileKV(cfg.StoreDir, log)
	case config.BackendBadger:
		return store.NewBadgerKV(cfg.BadgerDir)
	case config.BackendRedis:
		client, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return store.NewRedisKV(client, log), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация хранилища
	kv, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()
	log.Infof("Store backend %q ready", cfg.StoreBackend)

	ps := store.NewPersistent(kv, log)

	// Шина изменений: каждый процесс получает собственный origin,
	// чтобы не реагировать на свои же триггеры
	changeBus := bus.New(ps, uuid.NewString(), cfg.PollInterval, log)
	defer changeBus.Close()

	// Реплицируемые коллекции с данными по умолчанию
	events := replicate.New(ctx, ps, changeBus, "events", models.DefaultEvents(), log)
	defer events.Close()
	locations := replicate.New(ctx, ps, changeBus, "locations", models.DefaultLocations(), log)
	defer locations.Close()
	schedules := replicate.New(ctx, ps, changeBus, "schedules", models.DefaultSchedules(), log)
	defer schedules.Close()

	// Инициализация сервисов
	board := service.NewBoardService(events, locations, schedules, log, cfg)

	// Инициализация хэндлеров
	handler := v1.NewHandler(board, board, board, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	if len(cfg.APIKeys) > 0 {
		api.Use(v1.APIKeyAuthMiddleware(cfg, log))
	}
	handler.RegisterRoutes(api)

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
