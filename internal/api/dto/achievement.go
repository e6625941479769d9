package dto

import (
	"time"

	"github.com/google/uuid"
)

// RecordCompletionRequest reports that a task was finished at a specific time
type RecordCompletionRequest struct {
	TaskID           uuid.UUID `json:"task_id" binding:"required"`
	ActualCompletion time.Time `json:"actual_completion" binding:"required"`
}

// DailyCheckRequest triggers one daily badge checkpoint for the caller
type DailyCheckRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	CheckType string `json:"check_type" binding:"required"`
}

// CompletionResponse is the recorded completion returned to the caller
type CompletionResponse struct {
	ID                   uuid.UUID  `json:"id"`
	TaskID               uuid.UUID  `json:"task_id"`
	Date                 string     `json:"date"`
	ActualCompletion     time.Time  `json:"actual_completion"`
	PlannedStart         *time.Time `json:"planned_start,omitempty"`
	PlannedDurationHours *float64   `json:"planned_duration_hours,omitempty"`
	TimeSavedMinutes     *int       `json:"time_saved_minutes,omitempty"`
	WasInPlanner         bool       `json:"was_in_planner"`
	WasInCalendar        bool       `json:"was_in_calendar"`
	CompletedAfterHours  bool       `json:"completed_after_hours"`
}

// BadgeResponse is one awarded badge
type BadgeResponse struct {
	ID        uuid.UUID              `json:"id"`
	BadgeType string                 `json:"badge_type"`
	BadgeTier *string                `json:"badge_tier,omitempty"`
	Date      string                 `json:"date"`
	EarnedAt  time.Time              `json:"earned_at"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
