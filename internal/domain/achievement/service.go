package achievement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hash23code/foxwise-todo-sub001/internal/domain/events"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/planner"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

// TaskReader is the slice of the task domain the engine consumes
type TaskReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]task.Task, error)
	ListNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	CountPendingCreated(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)
	CountPendingCreatedByList(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[uuid.UUID]int64, error)
}

// PlannerReader is the slice of the day-planner domain the engine consumes
type PlannerReader interface {
	FindByTaskAndDate(ctx context.Context, taskID uuid.UUID, date time.Time) (*planner.Entry, error)
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]planner.Entry, error)
}

// BadgeCache is the cache and event bus surface the engine uses. The redis
// client satisfies it; tests substitute an in-memory recorder.
type BadgeCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}) error
	DeletePattern(ctx context.Context, pattern string) error
	PublishBadgeEvent(ctx context.Context, event *events.BadgeEvent) error
}

type Service interface {
	// RecordCompletion writes one immutable completion record for a task and
	// runs the completion-scoped badge checks against it. A failed record
	// insert aborts the whole operation; badge failures never do.
	RecordCompletion(ctx context.Context, userID, taskID uuid.UUID, actualCompletion time.Time) (*CompletionRecord, []Badge, error)

	// RunDailyCheck evaluates the day-scoped badges for one checkpoint.
	// The checkpoint is an explicit parameter so callers (HTTP trigger,
	// cron runner, tests) share one code path with no clock reads inside.
	RunDailyCheck(ctx context.Context, userID uuid.UUID, date time.Time, check CheckType) ([]Badge, error)

	ListBadges(ctx context.Context, userID uuid.UUID, date *time.Time) ([]Badge, error)
}

type service struct {
	completions CompletionRepository
	badges      BadgeRepository
	tasks       TaskReader
	planner     PlannerReader
	cache       BadgeCache
	logger      *zap.Logger
}

func NewService(
	completions CompletionRepository,
	badges BadgeRepository,
	tasks TaskReader,
	plannerReader PlannerReader,
	badgeCache BadgeCache,
	logger *zap.Logger,
) Service {
	return &service{
		completions: completions,
		badges:      badges,
		tasks:       tasks,
		planner:     plannerReader,
		cache:       badgeCache,
		logger:      logger,
	}
}

// awardResult pairs a written badge with how the store wrote it, so the
// published event distinguishes a fresh award from a tier upgrade.
type awardResult struct {
	badge    Badge
	upgraded bool
}

func badgesOf(results []awardResult) []Badge {
	if len(results) == 0 {
		return nil
	}
	out := make([]Badge, 0, len(results))
	for _, r := range results {
		out = append(out, r.badge)
	}
	return out
}

func (s *service) RecordCompletion(ctx context.Context, userID, taskID uuid.UUID, actualCompletion time.Time) (*CompletionRecord, []Badge, error) {
	if taskID == uuid.Nil || actualCompletion.IsZero() {
		return nil, nil, ErrInvalidInput
	}

	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if t.UserID != userID {
		return nil, nil, task.ErrTaskNotFound
	}

	date := LocalDate(actualCompletion)
	record := &CompletionRecord{
		ID:                  uuid.New(),
		TaskID:              taskID,
		UserID:              userID,
		Date:                date,
		ActualCompletion:    actualCompletion,
		WasInCalendar:       t.DueDate != nil,
		CompletedAfterHours: IsAfterHours(actualCompletion),
	}

	entry, err := s.planner.FindByTaskAndDate(ctx, taskID, date)
	switch {
	case err == nil:
		record.WasInPlanner = true
		plannedStart := entry.StartTime
		duration := entry.DurationHours
		saved := MinutesSaved(plannedStart, duration, actualCompletion)
		record.PlannedStart = &plannedStart
		record.PlannedDurationHours = &duration
		record.TimeSavedMinutes = &saved
	case errors.Is(err, planner.ErrEntryNotFound):
		// No plan for this day; time-saved stays null.
	default:
		return nil, nil, err
	}

	if err := s.completions.Create(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("failed to record completion: %w", err)
	}

	results := s.evaluateCompletion(ctx, record)
	s.afterAward(ctx, userID, results)
	return record, badgesOf(results), nil
}

// evaluateCompletion runs the completion-scoped checks: speed_task,
// flexible, after_hours. Each candidate is handed to the store
// independently; the store's unique key suppresses same-day duplicates for
// flexible and after_hours, while speed_task keys on the completed task.
func (s *service) evaluateCompletion(ctx context.Context, record *CompletionRecord) []awardResult {
	var candidates []*Badge

	if record.TimeSavedMinutes != nil && *record.TimeSavedMinutes >= SpeedTaskThresholdMinutes {
		candidates = append(candidates, NewBadge(record.UserID, record.Date, BadgeTypeSpeedTask, map[string]interface{}{
			"task_id":       record.TaskID.String(),
			"minutes_saved": *record.TimeSavedMinutes,
		}))
	}

	if !record.WasInPlanner && !record.WasInCalendar {
		candidates = append(candidates, NewBadge(record.UserID, record.Date, BadgeTypeFlexible, map[string]interface{}{
			"task_id": record.TaskID.String(),
		}))
	}

	if record.CompletedAfterHours {
		candidates = append(candidates, NewBadge(record.UserID, record.Date, BadgeTypeAfterHours, map[string]interface{}{
			"completed_at": record.ActualCompletion.Format(time.RFC3339),
		}))
	}

	return s.awardAll(ctx, candidates)
}

func (s *service) RunDailyCheck(ctx context.Context, userID uuid.UUID, date time.Time, check CheckType) ([]Badge, error) {
	if !check.IsValid() {
		return nil, ErrInvalidCheckType
	}
	date = LocalDate(date)

	var results []awardResult
	switch check {
	case CheckEvening:
		results = append(results, s.checkPerfectDay(ctx, userID, date)...)
		results = append(results, s.checkSpeedDay(ctx, userID, date)...)
		results = append(results, s.checkExceptionalGlobal(ctx, userID, date)...)
		results = append(results, s.checkExceptionalCategory(ctx, userID, date)...)
	case CheckMidnight:
		results = append(results, s.checkAfterHoursCatchUp(ctx, userID, date)...)
	}

	s.afterAward(ctx, userID, results)
	return badgesOf(results), nil
}

func (s *service) ListBadges(ctx context.Context, userID uuid.UUID, date *time.Time) ([]Badge, error) {
	cacheKey := badgeCacheKey(userID, date)
	if s.cache != nil {
		var cached []Badge
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	badges, err := s.badges.ListByUser(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, badges); err != nil {
			s.logger.Warn("failed to cache badge list", zap.Error(err))
		}
	}
	return badges, nil
}

// checkPerfectDay awards perfect_day when every planned task of the day is
// completed. An empty plan never qualifies.
func (s *service) checkPerfectDay(ctx context.Context, userID uuid.UUID, date time.Time) []awardResult {
	entries, err := s.planner.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		s.logger.Error("perfect_day: failed to load day plan", zap.Error(err))
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(entries))
	var taskIDs []uuid.UUID
	for _, entry := range entries {
		if _, ok := seen[entry.TaskID]; ok {
			continue
		}
		seen[entry.TaskID] = struct{}{}
		taskIDs = append(taskIDs, entry.TaskID)
	}

	tasks, err := s.tasks.FindByIDs(ctx, taskIDs)
	if err != nil {
		s.logger.Error("perfect_day: failed to load planned tasks", zap.Error(err))
		return nil
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == task.TaskStatusCompleted {
			completed++
		}
	}
	// A planned task that has been deleted cannot be completed; the count
	// comparison against the planned set handles that implicitly.
	if completed != len(taskIDs) {
		return nil
	}

	badge := NewBadge(userID, date, BadgeTypePerfectDay, map[string]interface{}{
		"tasks_completed": completed,
		"tasks_total":     len(taskIDs),
	})
	return s.awardAll(ctx, []*Badge{badge})
}

// checkSpeedDay sums the day's saved minutes (late tasks subtract) and
// inserts or upgrades the single speed_day badge for the date.
func (s *service) checkSpeedDay(ctx context.Context, userID uuid.UUID, date time.Time) []awardResult {
	total, err := s.completions.SumTimeSaved(ctx, userID, date)
	if err != nil {
		s.logger.Error("speed_day: failed to sum time saved", zap.Error(err))
		return nil
	}

	tier, ok := SpeedDayTier(total)
	if !ok {
		return nil
	}

	badge := NewSpeedDayBadge(userID, date, tier, map[string]interface{}{
		"minutes_saved": total,
	})
	outcome, err := s.badges.AwardOrUpgradeTier(ctx, badge)
	if err != nil {
		s.logger.Error("speed_day: failed to award badge",
			zap.String("tier", string(tier)),
			zap.Error(err))
		return nil
	}
	switch outcome {
	case AwardInserted:
		return []awardResult{{badge: *badge}}
	case AwardUpgraded:
		s.logger.Info("speed_day badge upgraded",
			zap.String("user_id", userID.String()),
			zap.String("tier", string(tier)))
		return []awardResult{{badge: *badge, upgraded: true}}
	default:
		return nil
	}
}

func (s *service) checkExceptionalGlobal(ctx context.Context, userID uuid.UUID, date time.Time) []awardResult {
	currentFrom := date.AddDate(0, 0, -6)
	currentTo := date.AddDate(0, 0, 1)
	previousFrom := date.AddDate(0, 0, -13)
	previousTo := currentFrom

	previous, err := s.tasks.CountPendingCreated(ctx, userID, previousFrom, previousTo)
	if err != nil {
		s.logger.Error("exceptional_global: failed to count prior window", zap.Error(err))
		return nil
	}
	current, err := s.tasks.CountPendingCreated(ctx, userID, currentFrom, currentTo)
	if err != nil {
		s.logger.Error("exceptional_global: failed to count current window", zap.Error(err))
		return nil
	}

	decrease, comparable := percentageDecrease(previous, current)
	if !comparable || decrease < ExceptionalImprovementPercent {
		return nil
	}

	badge := NewBadge(userID, date, BadgeTypeExceptionalGlobal, map[string]interface{}{
		"previous_count":         previous,
		"current_count":          current,
		"percentage_improvement": decrease,
	})
	return s.awardAll(ctx, []*Badge{badge})
}

func (s *service) checkExceptionalCategory(ctx context.Context, userID uuid.UUID, date time.Time) []awardResult {
	currentFrom := date.AddDate(0, 0, -6)
	currentTo := date.AddDate(0, 0, 1)
	previousFrom := date.AddDate(0, 0, -13)
	previousTo := currentFrom

	previousCounts, err := s.tasks.CountPendingCreatedByList(ctx, userID, previousFrom, previousTo)
	if err != nil {
		s.logger.Error("exceptional_category: failed to count prior window", zap.Error(err))
		return nil
	}
	currentCounts, err := s.tasks.CountPendingCreatedByList(ctx, userID, currentFrom, currentTo)
	if err != nil {
		s.logger.Error("exceptional_category: failed to count current window", zap.Error(err))
		return nil
	}

	var qualifying []uuid.UUID
	decreases := make(map[uuid.UUID]float64)
	counts := make(map[uuid.UUID][2]int64)
	for listID, previous := range previousCounts {
		current := currentCounts[listID]
		decrease, comparable := percentageDecrease(previous, current)
		if !comparable || decrease < ExceptionalImprovementPercent {
			continue
		}
		qualifying = append(qualifying, listID)
		decreases[listID] = decrease
		counts[listID] = [2]int64{previous, current}
	}
	if len(qualifying) == 0 {
		return nil
	}

	names, err := s.tasks.ListNamesByIDs(ctx, qualifying)
	if err != nil {
		s.logger.Warn("exceptional_category: failed to resolve list names", zap.Error(err))
		names = map[uuid.UUID]string{}
	}

	candidates := make([]*Badge, 0, len(qualifying))
	for _, listID := range qualifying {
		candidates = append(candidates, NewBadge(userID, date, BadgeTypeExceptionalCategory, map[string]interface{}{
			"category_id":            listID.String(),
			"category_name":          names[listID],
			"previous_count":         counts[listID][0],
			"current_count":          counts[listID][1],
			"percentage_improvement": decreases[listID],
		}))
	}
	return s.awardAll(ctx, candidates)
}

// checkAfterHoursCatchUp re-checks the day's completions at midnight and
// ensures the after_hours badge exists if any qualified. Covers a failed or
// skipped real-time write; the store makes the re-award a no-op otherwise.
func (s *service) checkAfterHoursCatchUp(ctx context.Context, userID uuid.UUID, date time.Time) []awardResult {
	records, err := s.completions.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		s.logger.Error("after_hours catch-up: failed to load completions", zap.Error(err))
		return nil
	}

	for _, record := range records {
		if record.CompletedAfterHours {
			badge := NewBadge(userID, date, BadgeTypeAfterHours, map[string]interface{}{
				"completed_at": record.ActualCompletion.Format(time.RFC3339),
			})
			return s.awardAll(ctx, []*Badge{badge})
		}
	}
	return nil
}

// awardAll hands candidates to the store one by one. A failure on one badge
// is logged and skipped; it never blocks the siblings.
func (s *service) awardAll(ctx context.Context, candidates []*Badge) []awardResult {
	var results []awardResult
	for _, candidate := range candidates {
		ok, err := s.badges.Award(ctx, candidate)
		if err != nil {
			s.logger.Error("failed to award badge",
				zap.String("badge_type", string(candidate.BadgeType)),
				zap.String("user_id", candidate.UserID.String()),
				zap.Error(err))
			continue
		}
		if ok {
			results = append(results, awardResult{badge: *candidate})
		}
	}
	return results
}

// afterAward invalidates the cached badge lists and publishes events for
// the new awards. Both are best-effort.
func (s *service) afterAward(ctx context.Context, userID uuid.UUID, results []awardResult) {
	if len(results) == 0 || s.cache == nil {
		return
	}

	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("badges:%s:*", userID)); err != nil {
		s.logger.Warn("failed to invalidate badge cache", zap.Error(err))
	}

	for _, r := range results {
		eventType := events.BadgeEventAwarded
		if r.upgraded {
			eventType = events.BadgeEventUpgraded
		}
		event := &events.BadgeEvent{
			EventType: eventType,
			UserID:    userID,
			BadgeID:   r.badge.ID,
			BadgeType: string(r.badge.BadgeType),
			Date:      r.badge.Date,
			Timestamp: time.Now().UTC(),
		}
		if err := s.cache.PublishBadgeEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish badge event", zap.Error(err))
		}
	}
}

func badgeCacheKey(userID uuid.UUID, date *time.Time) string {
	if date == nil {
		return fmt.Sprintf("badges:%s:all", userID)
	}
	return fmt.Sprintf("badges:%s:%s", userID, date.Format("2006-01-02"))
}
