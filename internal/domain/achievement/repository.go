package achievement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm/clause"

	"github.com/hash23code/foxwise-todo-sub001/internal/infrastructure/persistence/postgres/connection"
)

// AwardOutcome reports what the badge store did with a candidate
type AwardOutcome int

const (
	AwardUnchanged AwardOutcome = iota
	AwardInserted
	AwardUpgraded
)

// CompletionRepository persists completion-time records
type CompletionRepository interface {
	Create(ctx context.Context, record *CompletionRecord) error
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]CompletionRecord, error)
	SumTimeSaved(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)
	DistinctUserIDs(ctx context.Context, date time.Time) ([]uuid.UUID, error)
}

// BadgeRepository is the idempotency boundary for badge awards. Every
// read-then-write decision lives behind these two methods; callers only
// describe candidates and inspect the outcome.
type BadgeRepository interface {
	// Award inserts the candidate unless a badge with the same
	// (user_id, date, dedup_key) already exists. Duplicate keys are an
	// expected outcome, not an error.
	Award(ctx context.Context, badge *Badge) (bool, error)

	// AwardOrUpgradeTier inserts the candidate, or atomically replaces an
	// existing badge on the same dedup key when the candidate's tier rank is
	// strictly higher. There is never a window without a badge.
	AwardOrUpgradeTier(ctx context.Context, badge *Badge) (AwardOutcome, error)

	ListByUser(ctx context.Context, userID uuid.UUID, date *time.Time) ([]Badge, error)
}

type completionRepository struct {
	db *connection.Database
}

func NewCompletionRepository(db *connection.Database) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) Create(ctx context.Context, record *CompletionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *completionRepository) ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]CompletionRecord, error) {
	var records []CompletionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("actual_completion ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *completionRepository) SumTimeSaved(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&CompletionRecord{}).
		Select("COALESCE(SUM(time_saved_minutes), 0)").
		Where("user_id = ? AND date = ? AND time_saved_minutes IS NOT NULL", userID, date).
		Scan(&total).Error
	return total, err
}

func (r *completionRepository) DistinctUserIDs(ctx context.Context, date time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&CompletionRecord{}).
		Distinct("user_id").
		Where("date = ?", date).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

type badgeRepository struct {
	db *connection.Database
}

func NewBadgeRepository(db *connection.Database) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) Award(ctx context.Context, badge *Badge) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "dedup_key"}},
			DoNothing: true,
		}).
		Create(badge)
	if result.Error != nil {
		// ON CONFLICT absorbs the common race; a raw unique violation can
		// still surface through other write paths and means the same thing.
		if isUniqueViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *badgeRepository) AwardOrUpgradeTier(ctx context.Context, badge *Badge) (AwardOutcome, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "dedup_key"}},
			DoNothing: true,
		}).
		Create(badge)
	if result.Error != nil {
		if !isUniqueViolation(result.Error) {
			return AwardUnchanged, result.Error
		}
	} else if result.RowsAffected > 0 {
		return AwardInserted, nil
	}

	// A badge already holds the key: upgrade in place, but only to a
	// strictly higher tier. Equal or higher existing tiers leave zero rows
	// affected, which is the no-op case.
	update := r.db.WithContext(ctx).Model(&Badge{}).
		Where("user_id = ? AND date = ? AND dedup_key = ? AND tier_rank < ?",
			badge.UserID, badge.Date, badge.DedupKey, badge.TierRank).
		Updates(map[string]interface{}{
			"badge_type": badge.BadgeType,
			"badge_tier": badge.BadgeTier,
			"tier_rank":  badge.TierRank,
			"metadata":   badge.Metadata,
			"earned_at":  badge.EarnedAt,
		})
	if update.Error != nil {
		return AwardUnchanged, update.Error
	}
	if update.RowsAffected > 0 {
		return AwardUpgraded, nil
	}
	return AwardUnchanged, nil
}

func (r *badgeRepository) ListByUser(ctx context.Context, userID uuid.UUID, date *time.Time) ([]Badge, error) {
	var badges []Badge
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != nil {
		query = query.Where("date = ?", *date)
	}
	err := query.Order("earned_at DESC").Find(&badges).Error
	if err != nil {
		return nil, err
	}
	return badges, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
