package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hash23code/foxwise-todo-sub001/internal/api/handlers"
	"github.com/hash23code/foxwise-todo-sub001/internal/api/middleware"
)

// AchievementRoutes handles the setup of badge-related routes
type AchievementRoutes struct {
	handler   *handlers.AchievementHandler
	jwtSecret string
}

// NewAchievementRoutes creates a new AchievementRoutes instance
func NewAchievementRoutes(handler *handlers.AchievementHandler, jwtSecret string) *AchievementRoutes {
	return &AchievementRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all badge-related routes
func (r *AchievementRoutes) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	api.POST("/completions", r.handler.RecordCompletion)
	api.POST("/daily-check", r.handler.RunDailyCheck)
	api.GET("/badges", r.handler.ListBadges)
}
