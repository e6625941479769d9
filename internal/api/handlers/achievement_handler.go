package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hash23code/foxwise-todo-sub001/internal/api/dto"
	"github.com/hash23code/foxwise-todo-sub001/internal/api/middleware"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/achievement"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

type AchievementHandler struct {
	service achievement.Service
}

func NewAchievementHandler(service achievement.Service) *AchievementHandler {
	return &AchievementHandler{service: service}
}

// RecordCompletion registers a task completion and returns any badges it
// earned on the spot. Retrying the same completion is safe; already-held
// badges simply come back empty.
func (h *AchievementHandler) RecordCompletion(c *gin.Context) {
	var req dto.RecordCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	record, awarded, err := h.service.RecordCompletion(c.Request.Context(), userID, req.TaskID, req.ActualCompletion)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, achievement.ErrInvalidInput):
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{
		"completion": CompletionToResponse(record),
		"badges":     BadgesToResponse(awarded),
	}})
}

// RunDailyCheck triggers one daily checkpoint for the caller. The scheduler
// uses the same service path; this endpoint exists for clients that want the
// evening summary on demand.
func (h *AchievementHandler) RunDailyCheck(c *gin.Context) {
	var req dto.DailyCheckRequest
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

	checkType := achievement.CheckType(req.CheckType)
	if !checkType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_type value"})
		return
	}

	awarded, err := h.service.RunDailyCheck(c.Request.Context(), userID, date, checkType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"badges": BadgesToResponse(awarded)}})
}

// ListBadges returns the caller's badges, optionally filtered by date
func (h *AchievementHandler) ListBadges(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	badges, err := h.service.ListBadges(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": BadgesToResponse(badges)})
}
