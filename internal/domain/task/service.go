package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, userID, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	UpdateTaskStatus(ctx context.Context, userID, id uuid.UUID, status TaskStatus) (*Task, error)
	CompleteTask(ctx context.Context, userID, id uuid.UUID, completedAt time.Time) (*Task, error)
	DeleteTask(ctx context.Context, userID, id uuid.UUID) error

	CreateList(ctx context.Context, input CreateListInput) (*TaskList, error)
	ListLists(ctx context.Context, userID uuid.UUID) ([]TaskList, error)
	GetOrCreateDefaultList(ctx context.Context, userID uuid.UUID) (*TaskList, error)
}

type CreateTaskInput struct {
	UserID      uuid.UUID    `json:"user_id"`
	ListID      *uuid.UUID   `json:"list_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
}

type CreateListInput struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
}

type service struct {
	repo   TaskRepository
	logger *zap.Logger
}

func NewService(repo TaskRepository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, ErrInvalidInput
	}
	if input.Priority == "" {
		input.Priority = TaskPriorityMedium
	}

	var listID uuid.UUID
	if input.ListID != nil {
		list, err := s.repo.FindListByID(ctx, *input.ListID)
		if err != nil {
			return nil, err
		}
		if list.UserID != input.UserID {
			return nil, ErrListNotFound
		}
		listID = list.ID
	} else {
		list, err := s.GetOrCreateDefaultList(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		listID = list.ID
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      input.UserID,
		ListID:      listID,
		Title:       input.Title,
		Description: input.Description,
		Status:      TaskStatusPending,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) GetTask(ctx context.Context, userID, id uuid.UUID) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateTaskStatus(ctx context.Context, userID, id uuid.UUID, status TaskStatus) (*Task, error) {
	if !status.IsValid() {
		return nil, ErrInvalidInput
	}

	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !isValidStatusTransition(task.Status, status) {
		return nil, ErrInvalidTransition
	}

	task.Status = status
	if status == TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask transitions a task to completed at the supplied timestamp.
// Completion-time badge evaluation is wired on top of this in the API layer.
func (s *service) CompleteTask(ctx context.Context, userID, id uuid.UUID, completedAt time.Time) (*Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !isValidStatusTransition(task.Status, TaskStatusCompleted) {
		return nil, ErrInvalidTransition
	}

	task.Status = TaskStatusCompleted
	task.CompletedAt = &completedAt

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task completed",
		zap.String("task_id", task.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Time("completed_at", completedAt))

	return task, nil
}

func (s *service) DeleteTask(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetTask(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CreateList(ctx context.Context, input CreateListInput) (*TaskList, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	list := &TaskList{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Name:      input.Name,
		IsDefault: input.IsDefault,
	}
	if err := s.repo.CreateList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *service) ListLists(ctx context.Context, userID uuid.UUID) ([]TaskList, error) {
	return s.repo.FindListsByUser(ctx, userID)
}

func (s *service) GetOrCreateDefaultList(ctx context.Context, userID uuid.UUID) (*TaskList, error) {
	list, err := s.repo.FindDefaultList(ctx, userID)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, ErrListNotFound) {
		return nil, err
	}

	list = &TaskList{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Inbox",
		IsDefault: true,
	}
	if err := s.repo.CreateList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func isValidStatusTransition(current, next TaskStatus) bool {
	transitions := map[TaskStatus][]TaskStatus{
		TaskStatusPending: {
			TaskStatusInProgress,
			TaskStatusCompleted,
			TaskStatusCancelled,
		},
		TaskStatusInProgress: {
			TaskStatusCompleted,
			TaskStatusPending,
			TaskStatusCancelled,
		},
		TaskStatusCompleted: {
			TaskStatusPending,
			TaskStatusInProgress,
		},
		TaskStatusCancelled: {
			TaskStatusPending,
		},
	}

	allowed, exists := transitions[current]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}
