package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

type Service interface {
	PlanTask(ctx context.Context, input PlanTaskInput) (*Entry, error)
	GetDayPlan(ctx context.Context, userID uuid.UUID, date time.Time) ([]Entry, error)
	RemoveEntry(ctx context.Context, userID, id uuid.UUID) error
}

type PlanTaskInput struct {
	UserID        uuid.UUID `json:"user_id"`
	TaskID        uuid.UUID `json:"task_id"`
	Date          time.Time `json:"date"`
	StartTime     time.Time `json:"start_time"`
	DurationHours float64   `json:"duration_hours"`
}

type service struct {
	repo   EntryRepository
	tasks  task.TaskRepository
	logger *zap.Logger
}

func NewService(repo EntryRepository, tasks task.TaskRepository, logger *zap.Logger) Service {
	return &service{repo: repo, tasks: tasks, logger: logger}
}

func (s *service) PlanTask(ctx context.Context, input PlanTaskInput) (*Entry, error) {
	if input.DurationHours <= 0 {
		return nil, ErrInvalidInput
	}

	t, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != input.UserID {
		return nil, task.ErrTaskNotFound
	}

	// Date is stored midnight-truncated; StartTime keeps the full timestamp.
	y, m, d := input.Date.Date()
	entry := &Entry{
		ID:            uuid.New(),
		UserID:        input.UserID,
		TaskID:        input.TaskID,
		Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		StartTime:     input.StartTime,
		DurationHours: input.DurationHours,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("task planned",
		zap.String("task_id", entry.TaskID.String()),
		zap.Time("date", entry.Date),
		zap.Float64("duration_hours", entry.DurationHours))

	return entry, nil
}

func (s *service) GetDayPlan(ctx context.Context, userID uuid.UUID, date time.Time) ([]Entry, error) {
	y, m, d := date.Date()
	return s.repo.ListByUserAndDate(ctx, userID, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (s *service) RemoveEntry(ctx context.Context, userID, id uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return ErrEntryNotFound
	}
	return s.repo.Delete(ctx, id)
}
