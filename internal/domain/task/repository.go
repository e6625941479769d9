package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hash23code/foxwise-todo-sub001/internal/infrastructure/persistence/postgres/connection"
)

// TaskFilter defines filtering options for tasks
type TaskFilter struct {
	UserID   *uuid.UUID
	ListID   *uuid.UUID
	Status   *TaskStatus
	DueStart *time.Time
	DueEnd   *time.Time
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List operations
	CreateList(ctx context.Context, list *TaskList) error
	FindListByID(ctx context.Context, id uuid.UUID) (*TaskList, error)
	FindListsByUser(ctx context.Context, userID uuid.UUID) ([]TaskList, error)
	FindDefaultList(ctx context.Context, userID uuid.UUID) (*TaskList, error)
	ListNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// Window counts used by the achievement batch evaluator
	CountPendingCreated(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)
	CountPendingCreatedByList(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[uuid.UUID]int64, error)
}

type taskRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var task Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *taskRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tasks []Task
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var tasks []Task
	var total int64

	query := r.db.WithContext(ctx).Model(&Task{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ListID != nil {
		query = query.Where("list_id = ?", filter.ListID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DueStart != nil {
		query = query.Where("due_date >= ?", *filter.DueStart)
	}
	if filter.DueEnd != nil {
		query = query.Where("due_date < ?", *filter.DueEnd)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 100
	}
	query = query.Offset(filter.Page * filter.PageSize).Limit(filter.PageSize)

	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) CreateList(ctx context.Context, list *TaskList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *taskRepository) FindListByID(ctx context.Context, id uuid.UUID) (*TaskList, error) {
	var list TaskList
	result := r.db.WithContext(ctx).First(&list, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, result.Error
	}
	return &list, nil
}

func (r *taskRepository) FindListsByUser(ctx context.Context, userID uuid.UUID) ([]TaskList, error) {
	var lists []TaskList
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *taskRepository) FindDefaultList(ctx context.Context, userID uuid.UUID) (*TaskList, error) {
	var list TaskList
	result := r.db.WithContext(ctx).First(&list, "user_id = ? AND is_default = true", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, result.Error
	}
	return &list, nil
}

func (r *taskRepository) ListNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	var results []struct {
		ID   uuid.UUID
		Name string
	}
	err := r.db.WithContext(ctx).Model(&TaskList{}).
		Select("id, name").
		Where("id IN ?", ids).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(results))
	for _, result := range results {
		names[result.ID] = result.Name
	}
	return names, nil
}

func (r *taskRepository) CountPendingCreated(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Task{}).
		Where("user_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			userID, TaskStatusPending, from, to).
		Count(&count).Error
	return count, err
}

func (r *taskRepository) CountPendingCreatedByList(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[uuid.UUID]int64, error) {
	var results []struct {
		ListID uuid.UUID
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Task{}).
		Select("list_id, count(*) as count").
		Where("user_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			userID, TaskStatusPending, from, to).
		Group("list_id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(results))
	for _, result := range results {
		counts[result.ListID] = result.Count
	}
	return counts, nil
}
