package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hash23code/foxwise-todo-sub001/internal/api/dto"
	"github.com/hash23code/foxwise-todo-sub001/internal/api/middleware"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/achievement"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

type TaskHandler struct {
	service      task.Service
	achievements achievement.Service
	logger       *zap.Logger
}

func NewTaskHandler(service task.Service, achievements achievement.Service, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, achievements: achievements, logger: logger}
}

// CreateTask creates a new task for the authenticated user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	priority := task.TaskPriority(req.Priority)
	if req.Priority != "" && !priority.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
		return
	}

	created, err := h.service.CreateTask(c.Request.Context(), task.CreateTaskInput{
		UserID:      userID,
		ListID:      req.ListID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, task.ErrInvalidInput):
			statusCode = http.StatusBadRequest
		case errors.Is(err, task.ErrListNotFound):
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": TaskToResponse(created)})
}

// GetTask returns one of the caller's tasks
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	found, err := h.service.GetTask(c.Request.Context(), userID, id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, task.ErrTaskNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(found)})
}

// ListTasks returns the caller's tasks with optional status and list filters
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter := task.TaskFilter{UserID: &userID}
	if raw := c.Query("status"); raw != "" {
		status := task.TaskStatus(raw)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("list_id"); raw != "" {
		listID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list ID"})
			return
		}
		filter.ListID = &listID
	}

	tasks, total, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, TaskToResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses, "total": total})
}

// UpdateTaskStatus changes a task's status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	status := task.TaskStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
		return
	}

	updated, err := h.service.UpdateTaskStatus(c.Request.Context(), userID, id, status)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, task.ErrInvalidTransition):
			statusCode = http.StatusConflict
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(updated)})
}

// CompleteTask marks a task completed and records the completion for badge
// evaluation in one request. Badge evaluation is best-effort: a completed
// task is never rolled back because a badge write failed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	// The body is optional: an empty request completes the task now.
	var req dto.CompleteTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	completedAt := time.Now()
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}

	completed, err := h.service.CompleteTask(c.Request.Context(), userID, id, completedAt)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, task.ErrInvalidTransition):
			statusCode = http.StatusConflict
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	// The task stays completed even if the completion record fails; the
	// transition cannot be retried through this endpoint, so the client must
	// know to repair via POST /api/completions.
	var badges []dto.BadgeResponse
	completionRecorded := true
	if _, awarded, err := h.achievements.RecordCompletion(c.Request.Context(), userID, id, completedAt); err != nil {
		completionRecorded = false
		h.logger.Error("failed to record task completion",
			zap.String("task_id", id.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
	} else {
		badges = BadgesToResponse(awarded)
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"task":                TaskToResponse(completed),
		"badges":              badges,
		"completion_recorded": completionRecorded,
	}})
}

// DeleteTask removes one of the caller's tasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), userID, id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, task.ErrTaskNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// CreateList creates a new task list for the caller
func (h *TaskHandler) CreateList(c *gin.Context) {
	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	list, err := h.service.CreateList(c.Request.Context(), task.CreateListInput{
		UserID:    userID,
		Name:      req.Name,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, task.ErrInvalidInput) {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ListToResponse(list)})
}

// ListLists returns all of the caller's task lists
func (h *TaskHandler) ListLists(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	lists, err := h.service.ListLists(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.ListResponse, 0, len(lists))
	for i := range lists {
		responses = append(responses, ListToResponse(&lists[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}
