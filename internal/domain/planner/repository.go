package planner

import (
	"context"
	"errors"

	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hash23code/foxwise-todo-sub001/internal/infrastructure/persistence/postgres/connection"
)

// EntryRepository defines the interface for day-planner persistence
type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindByTaskAndDate(ctx context.Context, taskID uuid.UUID, date time.Time) (*Entry, error)
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entryRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepository) FindByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	var entry Entry
	result := r.db.WithContext(ctx).First(&entry, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

func (r *entryRepository) FindByTaskAndDate(ctx context.Context, taskID uuid.UUID, date time.Time) (*Entry, error) {
	var entry Entry
	result := r.db.WithContext(ctx).
		Where("task_id = ? AND date = ?", taskID, date).
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

func (r *entryRepository) ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("start_time ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Entry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
