package api

import (
	"net/http"
	"time"

	"biceppump/backend/internal/metrics"
	"biceppump/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything the routes need.
type RouterConfig struct {
	AuthService        service.AuthService
	WorkoutService     service.WorkoutService
	ExerciseService    service.ExerciseService
	AnalyticsService   service.AnalyticsService
	LeaderboardService service.LeaderboardService

	// Metrics and Gatherer are optional; /metrics is only mounted with a Gatherer.
	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer

	CORSOrigins   []string
	SecureCookies bool
	CookieMaxAge  time.Duration
}

func SetupRoutes(router *gin.Engine, cfg RouterConfig) {
	authHandler := NewAuthHandler(cfg.AuthService, cfg.SecureCookies, int(cfg.CookieMaxAge.Seconds()))
	workoutHandler := NewWorkoutHandler(cfg.WorkoutService)
	exerciseHandler := NewExerciseHandler(cfg.ExerciseService)
	analyticsHandler := NewAnalyticsHandler(cfg.AnalyticsService)
	leaderboardHandler := NewLeaderboardHandler(cfg.LeaderboardService)

	router.Use(RequestLogger(), CORSMiddleware(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		router.Use(RequestMetrics(cfg.Metrics))
	}

	authMiddleware := AuthMiddleware(cfg.AuthService)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "BicepPump Backend API is running!",
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/profile", authMiddleware, authHandler.GetProfile)
			authGroup.PUT("/profile", authMiddleware, authHandler.UpdateProfile)
		}

		// public
		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/:workoutId", exerciseHandler.ListExercises)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		analyticsGroup := protected.Group("/analytics")
		{
			analyticsGroup.GET("/progress", analyticsHandler.GetProgress)
			analyticsGroup.GET("/pump-score", analyticsHandler.GetPumpScore)
			analyticsGroup.GET("/prs", analyticsHandler.GetPersonalRecords)
			analyticsGroup.POST("/export", analyticsHandler.Export)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "Route not found")
	})
}
