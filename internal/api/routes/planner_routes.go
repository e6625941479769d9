package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hash23code/foxwise-todo-sub001/internal/api/handlers"
	"github.com/hash23code/foxwise-todo-sub001/internal/api/middleware"
)

// PlannerRoutes handles the setup of day-planner routes
type PlannerRoutes struct {
	handler   *handlers.PlannerHandler
	jwtSecret string
}

// NewPlannerRoutes creates a new PlannerRoutes instance
func NewPlannerRoutes(handler *handlers.PlannerHandler, jwtSecret string) *PlannerRoutes {
	return &PlannerRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all day-planner routes
func (r *PlannerRoutes) RegisterRoutes(router *gin.Engine) {
	planner := router.Group("/api/planner")
	planner.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	planner.POST("/entries", r.handler.PlanTask)
	planner.GET("/days/:date", r.handler.GetDayPlan)
	planner.DELETE("/entries/:id", r.handler.RemoveEntry)
}
