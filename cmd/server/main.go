package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/nthumods/mods-backend/internal/config"
	"github.com/nthumods/mods-backend/internal/database"
	"github.com/nthumods/mods-backend/internal/handler"
	"github.com/nthumods/mods-backend/internal/logger"
	"github.com/nthumods/mods-backend/internal/middleware"
	"github.com/nthumods/mods-backend/internal/repository"
	"github.com/nthumods/mods-backend/internal/router"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/nthumods/mods-backend/internal/validator"
	"github.com/nthumods/mods-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("semester", cfg.CurrentSemester).
		Msg("Starting NTHUMods Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	calendarZone, err := time.LoadLocation(cfg.CalendarZone)
	if err != nil {
		log.Fatal().Err(err).Str("zone", cfg.CalendarZone).Msg("Unknown calendar time zone")
	}

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

	// ─── Open Search Index ─────────────────────────────────────────────
	// Search degrades to 503 without credentials; everything else keeps working.
	var index *search.Index
	index, err = database.NewAlgoliaIndex(cfg, log)
	if errors.Is(err, database.ErrSearchNotConfigured) {
		log.Warn().Msg("Algolia is not configured, course search is disabled")
	} else if err != nil {
		log.Fatal().Err(err).Msg("Failed to open search index")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	courseRepo := repository.NewCourseRepository(pool)
	facetRepo := repository.NewFacetRepository(pool)
	facetCacheRepo := repository.NewFacetCacheRepository(rdb, cfg.FacetCacheTTL)
	timetableRepo := repository.NewTimetableRepository(rdb, cfg.TimetableTTL)
	rateLimitRepo := repository.NewRateLimitRepository(rdb)
	searchRepo := repository.NewSearchRepository(index)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	courseService := service.NewCourseService(courseRepo, searchRepo, log)
	facetService := service.NewFacetService(facetRepo, facetCacheRepo, log)
	timetableService := service.NewTimetableService(timetableRepo, courseRepo, cfg.PublicBaseURL, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Session:   handler.NewSessionHandler(authService, log),
		Course:    handler.NewCourseHandler(courseService),
		Facet:     handler.NewFacetHandler(facetService, cfg.FacetCacheTTL),
		Timetable: handler.NewTimetableHandler(timetableService, log),
		Export: handler.NewExportHandler(timetableService, handler.CalendarSettings{
			SemesterStart: cfg.SemesterStart,
			Weeks:         cfg.SemesterWeeks,
			Location:      calendarZone,
		}, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	facetWorker := worker.NewFacetWorker(facetCacheRepo, facetService, log)
	go func() {
		facetWorker.Start(workerCtx)
		close(workerDone)
	}()

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Facet lists are loaded before accepting traffic; a facet that fails
	// here is retried lazily on first request.
	if err := facetService.Warm(ctx); err != nil {
		log.Warn().Err(err).Msg("Facet prewarm incomplete")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	searchLimiter := middleware.NewRateLimiter(rateLimitRepo, "search", cfg.SearchRateLimit, time.Minute, log)
	r := router.SetupRouter(authService, handlers, searchLimiter, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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

	// 2. Stop the refresh worker; its in-flight BLPOP returns within a poll timeout.
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(worker.FacetPollTimeout + time.Second):
		log.Warn().Msg("Facet worker did not stop in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
