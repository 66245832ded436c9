package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yeonsu/vocaflash/internal/api"
	"github.com/yeonsu/vocaflash/internal/config"
	"github.com/yeonsu/vocaflash/internal/db"
	"github.com/yeonsu/vocaflash/internal/logger"
	"github.com/yeonsu/vocaflash/internal/repository/sqlite"
	"github.com/yeonsu/vocaflash/internal/services"
	"github.com/yeonsu/vocaflash/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocaFlash Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("default_session_size=%d", cfg.DefaultSessionSize)
	log.Debug("default_time_limit_seconds=%d", cfg.DefaultTimeLimitSeconds)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	wordRepo := sqlite.NewWordRepository(database.DB)
	lessonRepo := sqlite.NewLessonRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB)

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)

	wordService := services.NewWordService(wordRepo)
	lessonService := services.NewLessonService(lessonRepo)
	practiceService := services.NewPracticeService(sessionRepo, wordRepo, settingsRepo, wordService, nil, nil)
	settingsService := services.NewSettingsService(settingsRepo)
	statsService := services.NewStatsService(wordRepo, lessonRepo, sessionRepo)
	importService := services.NewImportService(lessonRepo, wordRepo, importPool)

	srv := &api.Server{
		Lessons:  lessonService,
		Words:    wordService,
		Practice: practiceService,
		Settings: settingsService,
		Stats:    statsService,
		Imports:  importService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	importPool.Stop()

	log.Info("===========================================")
	log.Info("VocaFlash Server Stopped")
	log.Info("===========================================")
}
