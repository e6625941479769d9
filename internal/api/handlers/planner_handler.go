package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hash23code/foxwise-todo-sub001/internal/api/dto"
	"github.com/hash23code/foxwise-todo-sub001/internal/api/middleware"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/planner"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

type PlannerHandler struct {
	service planner.Service
}

func NewPlannerHandler(service planner.Service) *PlannerHandler {
	return &PlannerHandler{service: service}
}

// PlanTask schedules one of the caller's tasks into a day plan
func (h *PlannerHandler) PlanTask(c *gin.Context) {
	var req dto.PlanTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	entry, err := h.service.PlanTask(c.Request.Context(), planner.PlanTaskInput{
		UserID:        userID,
		TaskID:        req.TaskID,
		Date:          date,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, task.ErrTaskNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": EntryToResponse(entry)})
}

// GetDayPlan returns the caller's plan for one day
func (h *PlannerHandler) GetDayPlan(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	entries, err := h.service.GetDayPlan(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.PlannerEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, EntryToResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// RemoveEntry deletes one planner entry
func (h *PlannerHandler) RemoveEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.RemoveEntry(c.Request.Context(), userID, id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, planner.ErrEntryNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
