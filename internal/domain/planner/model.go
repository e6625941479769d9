package planner

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

var (
	ErrEntryNotFound = errors.New("planner entry not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// Entry is a day-planner slot: a task scheduled to start at a given time on a
// given calendar day, with an expected duration. The achievement engine reads
// entries to decide whether a completion had a plan to beat.
type Entry struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_planner_user_date"`
	TaskID        uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index:idx_planner_task"`
	Date          time.Time `json:"date" gorm:"type:date;not null;index:idx_planner_user_date"`
	StartTime     time.Time `json:"start_time" gorm:"not null"`
	DurationHours float64   `json:"duration_hours" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`

	Task task.Task `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Entry model
func (Entry) TableName() string {
	return "day_planner_entries"
}

func (e *Entry) Validate() error {
	if e.UserID == uuid.Nil || e.TaskID == uuid.Nil {
		return ErrInvalidInput
	}
	if e.DurationHours <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	return e.Validate()
}
