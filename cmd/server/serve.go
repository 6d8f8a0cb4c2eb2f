package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"citypulse/backend/internal/config"
	"citypulse/backend/internal/db"
	"citypulse/backend/internal/handler"
	ch "citypulse/backend/internal/http"
	"citypulse/backend/internal/repository"
	"citypulse/backend/internal/scheduler"
	"citypulse/backend/internal/sentiment"
	"citypulse/backend/internal/service"
	"citypulse/backend/internal/translate"
	"citypulse/backend/pkg/logger"
	"citypulse/backend/pkg/snowflake"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.SnowflakeNode); err != nil {
		return fmt.Errorf("init id generator: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	commentRepo := repository.NewCommentRepository(database)
	alertRepo := repository.NewServiceAlertRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)

	limiter := translate.NewRateLimiter(translate.DefaultRateLimit)

	settingsService := service.NewSettingsService(settingsRepo, limiter)
	translationService := service.NewTranslationService(settingsService, limiter)
	scorer := sentiment.NewScorer()
	commentService := service.NewCommentService(commentRepo, settingsService, translationService, scorer)
	analysisTasks := service.NewTaskService()
	analysisService := service.NewAnalysisService(commentRepo, translationService, scorer, analysisTasks)
	alertService := service.NewAlertService(alertRepo, settingsRepo, nil)
	exportService := service.NewExportService(commentRepo)
	chartService := service.NewChartService(commentRepo)
	importTasks := service.NewTaskService()
	importService := service.NewImportService(commentService, importTasks)
	authService := service.NewAuthService(settingsRepo)

	ctx := context.Background()

	// The limiter starts at the default; pick up whatever rate the admin
	// saved before the last restart.
	if ts, err := settingsService.GetTranslationSettings(ctx); err != nil {
		logger.Warn("load translation settings failed", "module", "server", "error", err)
	} else {
		limiter.SetLimit(ts.RateLimit)
	}

	seedAlertFeed(ctx, settingsService, cfg.AlertsFeedURL)

	if cfg.SeedExamples {
		if _, err := service.SeedExampleComments(ctx, commentRepo, commentService); err != nil {
			logger.Warn("seeding example comments failed", "module", "server", "error", err)
		}
	}

	e := ch.NewRouter(
		handler.NewCommentHandler(commentService),
		handler.NewDashboardHandler(commentService, chartService, alertService, analysisTasks),
		handler.NewAlertHandler(alertService),
		handler.NewSettingsHandler(settingsService),
		handler.NewAuthHandler(authService),
		handler.NewExportHandler(exportService),
		handler.NewAnalysisHandler(analysisService, analysisTasks),
		handler.NewImportHandler(importService, importTasks),
		authService,
		cfg.SubmitPerMinute,
		cfg.StaticDir,
		cfg.SwaggerEnabled,
	)

	sched := scheduler.New(alertService, analysisService, cfg.SchedulerInterval)
	sched.Start()

	go func() {
		logger.Info("server listening", "module", "server", "addr", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "module", "server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("received shutdown signal", "module", "server")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	logger.Info("server stopped", "module", "server")
	return nil
}

// seedAlertFeed stores the configured feed URL when none has been saved
// yet, so a fresh deployment can point at an agency feed without touching
// the admin UI. A feed saved through the UI always wins.
func seedAlertFeed(ctx context.Context, settings service.SettingsService, feedURL string) {
	if feedURL == "" {
		return
	}
	current, err := settings.GetAlertSettings(ctx)
	if err != nil {
		logger.Warn("load alert settings failed", "module", "server", "error", err)
		return
	}
	if current.FeedURL != "" {
		return
	}
	if err := settings.SetAlertSettings(ctx, &service.AlertSettings{FeedURL: feedURL}); err != nil {
		logger.Warn("seed alert feed url failed", "module", "server", "error", err)
	}
}
