package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/esatlab/insight-backend/internal/config"
	"github.com/esatlab/insight-backend/internal/database"
	"github.com/esatlab/insight-backend/internal/handler"
	"github.com/esatlab/insight-backend/internal/logger"
	"github.com/esatlab/insight-backend/internal/repository"
	"github.com/esatlab/insight-backend/internal/router"
	"github.com/esatlab/insight-backend/internal/service"
	"github.com/esatlab/insight-backend/internal/validator"
	"github.com/esatlab/insight-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Insight Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	paperRepo := repository.NewPaperRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	tableRepo := repository.NewTableRepository(pool)
	roadmapRepo := repository.NewRoadmapRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(studentRepo)
	adminService := service.NewAdminService(adminRepo)
	sessionService := service.NewSessionService(sessionRepo, paperRepo, rdb, log)
	reportService := service.NewReportService(cfg, sessionService, sessionRepo, tableRepo, rdb, log)
	paperService := service.NewPaperService(paperRepo, tableRepo)
	roadmapService := service.NewRoadmapService(roadmapRepo, rdb, log)
	leaderboardService := service.NewLeaderboardService(cfg, studentRepo, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, studentService, adminService),
		Session:     handler.NewSessionHandler(sessionService, reportService),
		Paper:       handler.NewPaperHandler(paperService),
		Roadmap:     handler.NewRoadmapHandler(roadmapService),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardService),
		StudentMgmt: handler.NewStudentManagementHandler(studentService, authService),
		WS:          handler.NewWSHandler(sessionService, reportService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	autosaveWorker := worker.NewAutosaveWorker(sessionRepo, rdb, log)
	summaryWorker := worker.NewSummaryWorker(rdb, log)

	go autosaveWorker.Start(workerCtx)
	go summaryWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
