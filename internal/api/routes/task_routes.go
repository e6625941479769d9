package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hash23code/foxwise-todo-sub001/internal/api/handlers"
	"github.com/hash23code/foxwise-todo-sub001/internal/api/middleware"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all task-related routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine) {
	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	tasks.GET("", r.handler.ListTasks)
	tasks.GET("/:id", r.handler.GetTask)
	tasks.POST("", r.handler.CreateTask)
	tasks.PATCH("/:id/status", r.handler.UpdateTaskStatus)
	tasks.PATCH("/:id/complete", r.handler.CompleteTask)
	tasks.DELETE("/:id", r.handler.DeleteTask)

	lists := router.Group("/api/lists")
	lists.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	lists.GET("", r.handler.ListLists)
	lists.POST("", r.handler.CreateList)
}
