package dto

import (
	"time"

	"github.com/google/uuid"
)

// PlanTaskRequest schedules a task into a day plan
type PlanTaskRequest struct {
	TaskID        uuid.UUID `json:"task_id" binding:"required"`
	Date          string    `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime     time.Time `json:"start_time" binding:"required"`
	DurationHours float64   `json:"duration_hours" binding:"required,gt=0"`
}

// PlannerEntryResponse represents one scheduled slot in API responses
type PlannerEntryResponse struct {
	ID            uuid.UUID `json:"id"`
	TaskID        uuid.UUID `json:"task_id"`
	Date          string    `json:"date"`
	StartTime     time.Time `json:"start_time"`
	DurationHours float64   `json:"duration_hours"`
}
