package achievement

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidCheckType = errors.New("invalid check type")
)

// BadgeType is the closed set of awardable badges
type BadgeType string

const (
	BadgeTypePerfectDay          BadgeType = "perfect_day"
	BadgeTypeFlexible            BadgeType = "flexible"
	BadgeTypeSpeedTask           BadgeType = "speed_task"
	BadgeTypeSpeedDayBronze      BadgeType = "speed_day_bronze"
	BadgeTypeSpeedDaySilver      BadgeType = "speed_day_silver"
	BadgeTypeSpeedDayGold        BadgeType = "speed_day_gold"
	BadgeTypeAfterHours          BadgeType = "after_hours"
	BadgeTypeExceptionalCategory BadgeType = "exceptional_category"
	BadgeTypeExceptionalGlobal   BadgeType = "exceptional_global"
)

func (b BadgeType) IsValid() bool {
	switch b {
	case BadgeTypePerfectDay, BadgeTypeFlexible, BadgeTypeSpeedTask,
		BadgeTypeSpeedDayBronze, BadgeTypeSpeedDaySilver, BadgeTypeSpeedDayGold,
		BadgeTypeAfterHours, BadgeTypeExceptionalCategory, BadgeTypeExceptionalGlobal:
		return true
	}
	return false
}

// BadgeTier orders the speed_day family. Comparisons go through Rank so the
// upgrade rule (strictly higher only) is a single integer check in SQL too.
type BadgeTier string

const (
	TierBronze BadgeTier = "bronze"
	TierSilver BadgeTier = "silver"
	TierGold   BadgeTier = "gold"
)

func (t BadgeTier) Rank() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	}
	return 0
}

// SpeedDayType maps a tier to its badge type
func SpeedDayType(tier BadgeTier) BadgeType {
	switch tier {
	case TierSilver:
		return BadgeTypeSpeedDaySilver
	case TierGold:
		return BadgeTypeSpeedDayGold
	default:
		return BadgeTypeSpeedDayBronze
	}
}

// CheckType selects which daily checkpoint to evaluate. It is always passed
// in explicitly; the engine never reads the wall clock to pick one.
type CheckType string

const (
	CheckEvening  CheckType = "evening"
	CheckMidnight CheckType = "midnight"
)

func (c CheckType) IsValid() bool {
	return c == CheckEvening || c == CheckMidnight
}

// CompletionRecord captures the facts of one task completion event. Records
// are immutable once written; a correction is a new completion event.
type CompletionRecord struct {
	ID                   uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TaskID               uuid.UUID  `json:"task_id" gorm:"type:uuid;not null;index:idx_completion_task"`
	UserID               uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_completion_user_date"`
	Date                 time.Time  `json:"date" gorm:"type:date;not null;index:idx_completion_user_date"`
	PlannedStart         *time.Time `json:"planned_start,omitempty"`
	PlannedDurationHours *float64   `json:"planned_duration_hours,omitempty"`
	ActualCompletion     time.Time  `json:"actual_completion" gorm:"not null"`
	TimeSavedMinutes     *int       `json:"time_saved_minutes,omitempty"`
	WasInPlanner         bool       `json:"was_in_planner" gorm:"not null;default:false"`
	WasInCalendar        bool       `json:"was_in_calendar" gorm:"not null;default:false"`
	CompletedAfterHours  bool       `json:"completed_after_hours" gorm:"not null;default:false"`
	CreatedAt            time.Time  `json:"created_at" gorm:"not null;default:current_timestamp"`

	Task task.Task `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CompletionRecord model
func (CompletionRecord) TableName() string {
	return "task_completion_records"
}

func (r *CompletionRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.UserID == uuid.Nil || r.TaskID == uuid.Nil {
		return ErrInvalidInput
	}
	r.CreatedAt = time.Now()
	return nil
}

// Badge is an awarded achievement. The composite unique index on
// (user_id, date, dedup_key) is the idempotency boundary: concurrent
// evaluations racing on the same key collapse into one row at the storage
// layer instead of relying on a check-then-insert.
type Badge struct {
	ID        uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_badge_award"`
	Date      time.Time         `json:"date" gorm:"type:date;not null;uniqueIndex:idx_badge_award"`
	BadgeType BadgeType         `json:"badge_type" gorm:"type:varchar(32);not null"`
	BadgeTier *BadgeTier        `json:"badge_tier,omitempty" gorm:"type:varchar(16)"`
	TierRank  int               `json:"-" gorm:"not null;default:0"`
	DedupKey  string            `json:"-" gorm:"type:varchar(96);not null;uniqueIndex:idx_badge_award"`
	EarnedAt  time.Time         `json:"earned_at" gorm:"not null;default:current_timestamp"`
	Metadata  datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
}

// TableName specifies the table name for the Badge model
func (Badge) TableName() string {
	return "badges"
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if !b.BadgeType.IsValid() {
		return ErrInvalidInput
	}
	if b.DedupKey == "" {
		b.DedupKey = dedupKey(b.BadgeType, b.Metadata)
	}
	return nil
}

// NewBadge builds an award candidate for any non-tiered badge type. For
// speed_task the metadata must carry task_id and for exceptional_category it
// must carry category_id; both feed the dedup key.
func NewBadge(userID uuid.UUID, date time.Time, badgeType BadgeType, metadata map[string]interface{}) *Badge {
	return &Badge{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		BadgeType: badgeType,
		DedupKey:  dedupKey(badgeType, metadata),
		EarnedAt:  time.Now(),
		Metadata:  metadata,
	}
}

// NewSpeedDayBadge builds an award candidate for the speed_day family. All
// tiers share one dedup key so a day can never hold two of them.
func NewSpeedDayBadge(userID uuid.UUID, date time.Time, tier BadgeTier, metadata map[string]interface{}) *Badge {
	t := tier
	return &Badge{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		BadgeType: SpeedDayType(tier),
		BadgeTier: &t,
		TierRank:  tier.Rank(),
		DedupKey:  "speed_day",
		EarnedAt:  time.Now(),
		Metadata:  metadata,
	}
}

func dedupKey(badgeType BadgeType, metadata map[string]interface{}) string {
	switch badgeType {
	case BadgeTypeSpeedDayBronze, BadgeTypeSpeedDaySilver, BadgeTypeSpeedDayGold:
		return "speed_day"
	case BadgeTypeSpeedTask:
		return fmt.Sprintf("speed_task:%v", metadata["task_id"])
	case BadgeTypeExceptionalCategory:
		return fmt.Sprintf("exceptional_category:%v", metadata["category_id"])
	default:
		return string(badgeType)
	}
}
