package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/hash23code/foxwise-todo-sub001/internal/api/handlers"
	"github.com/hash23code/foxwise-todo-sub001/internal/api/routes"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/achievement"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/planner"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
	"github.com/hash23code/foxwise-todo-sub001/internal/infrastructure/cache"
	"github.com/hash23code/foxwise-todo-sub001/internal/infrastructure/persistence/postgres/connection"
	"github.com/hash23code/foxwise-todo-sub001/internal/infrastructure/persistence/postgres/migrations"
	"github.com/hash23code/foxwise-todo-sub001/internal/infrastructure/scheduler"
	"github.com/hash23code/foxwise-todo-sub001/pkg/config"
	"github.com/hash23code/foxwise-todo-sub001/pkg/logger"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	taskRepo := task.NewRepository(db)
	plannerRepo := planner.NewRepository(db)
	completionRepo := achievement.NewCompletionRepository(db)
	badgeRepo := achievement.NewBadgeRepository(db)

	// Initialize services
	taskService := task.NewService(taskRepo, log.Logger)
	plannerService := planner.NewService(plannerRepo, taskRepo, log.Logger)
	achievementService := achievement.NewService(
		completionRepo,
		badgeRepo,
		taskRepo,
		plannerRepo,
		redisClient,
		log.Logger,
	)

	// Initialize and start the badge scheduler
	if cfg.Scheduler.Enabled {
		schedulerLogger := logrus.New()
		schedulerLogger.SetFormatter(&logrus.JSONFormatter{})
		if cfg.Server.Mode == "production" {
			schedulerLogger.SetLevel(logrus.InfoLevel)
		} else {
			schedulerLogger.SetLevel(logrus.DebugLevel)
		}

		badgeScheduler, err := scheduler.NewScheduler(achievementService, completionRepo, cfg.Scheduler, schedulerLogger)
		if err != nil {
			log.Fatal("Failed to initialize scheduler", zap.Error(err))
		}
		badgeScheduler.Start()
		defer badgeScheduler.Stop()
	} else {
		log.Warn("Badge scheduler disabled by configuration")
	}

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService, achievementService, log.Logger)
	plannerHandler := handlers.NewPlannerHandler(plannerService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)

	// Health check routes (no /api prefix as these are system endpoints)
	routes.SetupHealthRoutes(router, db, redisClient)
	log.Info("Registered health check routes at /health and /health/ready")

	// Task routes (protected)
	taskRoutes := routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret)
	taskRoutes.RegisterRoutes(router)
	log.Info("Registered task routes at /api/tasks")

	// Planner routes (protected)
	plannerRoutes := routes.NewPlannerRoutes(plannerHandler, cfg.Auth.JWTSecret)
	plannerRoutes.RegisterRoutes(router)
	log.Info("Registered planner routes at /api/planner")

	// Achievement routes (protected)
	achievementRoutes := routes.NewAchievementRoutes(achievementHandler, cfg.Auth.JWTSecret)
	achievementRoutes.RegisterRoutes(router)
	log.Info("Registered achievement routes at /api/completions, /api/daily-check and /api/badges")

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
