package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"biceppump/backend/internal/api"
	"biceppump/backend/internal/cache"
	"biceppump/backend/internal/config"
	"biceppump/backend/internal/logging"
	"biceppump/backend/internal/metrics"
	"biceppump/backend/internal/repository/factory"
	"biceppump/backend/internal/service"
	"biceppump/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logging.Setup(logging.SetupParams{
			LogFileName:   cfg.Log.File,
			LogToStdout:   cfg.Log.ToStdout,
			LogLevel:      cfg.Log.Level,
			LogFormatJSON: cfg.Log.JSON,
		})
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	log.Infoln("starting BicepPump server ...")

	// --- Database ---
	store, err := factory.NewStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Errorf("close store: %s", err)
		}
	}()

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, reg)

	// --- Services ---
	tokens := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration)
	leaderboardService := service.NewLeaderboardService(
		store.Users,
		cache.NewLeaderboard(cfg.Leaderboard.CacheSizeMB, cfg.Leaderboard.CacheTTL),
	)
	authService := service.NewAuthService(store.Users, tokens, service.WithSignupObserver(leaderboardService))
	workoutService := service.NewWorkoutService(store.Workouts)
	exerciseService := service.NewExerciseService(store.Exercises, store.Workouts)

	analyticsOpts := []service.AnalyticsOption{service.WithScoreObserver(leaderboardService)}
	if cfg.S3.BucketName != "" {
		objects, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("init s3 storage: %w", err)
		}
		analyticsOpts = append(analyticsOpts, service.WithExportStorage(objects, cfg.S3.URLExpiration))
	} else {
		log.Warnln("s3.bucket_name not set, analytics export disabled")
	}
	analyticsService := service.NewAnalyticsService(
		store.Workouts, store.Users, cfg.Analytics.WindowDays, metricsManager, analyticsOpts...,
	)

	// --- Router ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, api.RouterConfig{
		AuthService:        authService,
		WorkoutService:     workoutService,
		ExerciseService:    exerciseService,
		AnalyticsService:   analyticsService,
		LeaderboardService: leaderboardService,
		Metrics:            metricsManager,
		Gatherer:           reg,
		CORSOrigins:        cfg.Server.CORSOrigins,
		SecureCookies:      cfg.Server.SecureCookies,
		CookieMaxAge:       cfg.JWT.CookieMaxAge,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Infof("received %s, shutting down ...", sig)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Infoln("server exiting")
	return nil
}
