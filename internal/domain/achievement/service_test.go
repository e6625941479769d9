package achievement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hash23code/foxwise-todo-sub001/internal/domain/events"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/planner"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

type stubTasks struct {
	byID        map[uuid.UUID]*task.Task
	names       map[uuid.UUID]string
	countGlobal func(from, to time.Time) int64
	countByList func(from, to time.Time) map[uuid.UUID]int64
}

func (s *stubTasks) FindByID(_ context.Context, id uuid.UUID) (*task.Task, error) {
	if t, ok := s.byID[id]; ok {
		return t, nil
	}
	return nil, task.ErrTaskNotFound
}

func (s *stubTasks) FindByIDs(_ context.Context, ids []uuid.UUID) ([]task.Task, error) {
	var out []task.Task
	for _, id := range ids {
		if t, ok := s.byID[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *stubTasks) ListNamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if name, ok := s.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func (s *stubTasks) CountPendingCreated(_ context.Context, _ uuid.UUID, from, to time.Time) (int64, error) {
	if s.countGlobal == nil {
		return 0, nil
	}
	return s.countGlobal(from, to), nil
}

func (s *stubTasks) CountPendingCreatedByList(_ context.Context, _ uuid.UUID, from, to time.Time) (map[uuid.UUID]int64, error) {
	if s.countByList == nil {
		return map[uuid.UUID]int64{}, nil
	}
	return s.countByList(from, to), nil
}

type stubPlanner struct {
	entries []planner.Entry
}

func (s *stubPlanner) FindByTaskAndDate(_ context.Context, taskID uuid.UUID, date time.Time) (*planner.Entry, error) {
	for i := range s.entries {
		if s.entries[i].TaskID == taskID && s.entries[i].Date.Equal(date) {
			return &s.entries[i], nil
		}
	}
	return nil, planner.ErrEntryNotFound
}

func (s *stubPlanner) ListByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) ([]planner.Entry, error) {
	var out []planner.Entry
	for _, e := range s.entries {
		if e.UserID == userID && e.Date.Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memCompletions struct {
	mu      sync.Mutex
	records []CompletionRecord
}

func (m *memCompletions) Create(_ context.Context, record *CompletionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *memCompletions) ListByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) ([]CompletionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []CompletionRecord
	for _, r := range m.records {
		if r.UserID == userID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memCompletions) SumTimeSaved(_ context.Context, userID uuid.UUID, date time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, r := range m.records {
		if r.UserID == userID && r.Date.Equal(date) && r.TimeSavedMinutes != nil {
			total += *r.TimeSavedMinutes
		}
	}
	return total, nil
}

func (m *memCompletions) DistinctUserIDs(_ context.Context, date time.Time) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, r := range m.records {
		if !r.Date.Equal(date) {
			continue
		}
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		out = append(out, r.UserID)
	}
	return out, nil
}

// memBadges mirrors the database store's contract: a mutex-guarded map keyed
// by (user_id, date, dedup_key) plays the role of the unique index.
type memBadges struct {
	mu     sync.Mutex
	byKey  map[string]*Badge
	awards int
}

func newMemBadges() *memBadges {
	return &memBadges{byKey: make(map[string]*Badge)}
}

func (m *memBadges) keyFor(b *Badge) string {
	return fmt.Sprintf("%s|%s|%s", b.UserID, b.Date.Format("2006-01-02"), b.DedupKey)
}

func (m *memBadges) Award(_ context.Context, badge *Badge) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := m.keyFor(badge)
	if _, exists := m.byKey[key]; exists {
		return false, nil
	}
	stored := *badge
	m.byKey[key] = &stored
	m.awards++
	return true, nil
}

func (m *memBadges) AwardOrUpgradeTier(_ context.Context, badge *Badge) (AwardOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := m.keyFor(badge)
	existing, exists := m.byKey[key]
	if !exists {
		stored := *badge
		m.byKey[key] = &stored
		m.awards++
		return AwardInserted, nil
	}
	if existing.TierRank >= badge.TierRank {
		return AwardUnchanged, nil
	}
	existing.BadgeType = badge.BadgeType
	existing.BadgeTier = badge.BadgeTier
	existing.TierRank = badge.TierRank
	existing.Metadata = badge.Metadata
	existing.EarnedAt = badge.EarnedAt
	return AwardUpgraded, nil
}

func (m *memBadges) ListByUser(_ context.Context, userID uuid.UUID, date *time.Time) ([]Badge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Badge
	for _, b := range m.byKey {
		if b.UserID != userID {
			continue
		}
		if date != nil && !b.Date.Equal(*date) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBadges) all() []Badge {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Badge
	for _, b := range m.byKey {
		out = append(out, *b)
	}
	return out
}

// fakeCache records published events and invalidations; reads always miss.
type fakeCache struct {
	mu          sync.Mutex
	published   []events.BadgeEvent
	invalidated []string
}

func (f *fakeCache) GetJSON(_ context.Context, _ string, _ interface{}) error {
	return errCacheMiss
}

func (f *fakeCache) SetJSON(_ context.Context, _ string, _ interface{}) error {
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, pattern)
	return nil
}

func (f *fakeCache) PublishBadgeEvent(_ context.Context, event *events.BadgeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, *event)
	return nil
}

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	svc         Service
	tasks       *stubTasks
	planner     *stubPlanner
	completions *memCompletions
	badges      *memBadges
	userID      uuid.UUID
	date        time.Time
}

func newFixture() *fixture {
	f := &fixture{
		tasks:       &stubTasks{byID: map[uuid.UUID]*task.Task{}, names: map[uuid.UUID]string{}},
		planner:     &stubPlanner{},
		completions: &memCompletions{},
		badges:      newMemBadges(),
		userID:      uuid.New(),
		date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.completions, f.badges, f.tasks, f.planner, nil, zap.NewNop())
	return f
}

func (f *fixture) addTask(status task.TaskStatus, dueDate *time.Time) uuid.UUID {
	id := uuid.New()
	f.tasks.byID[id] = &task.Task{
		ID:      id,
		UserID:  f.userID,
		Title:   "test task",
		Status:  status,
		DueDate: dueDate,
	}
	return id
}

func (f *fixture) planTask(taskID uuid.UUID, startHour int, durationHours float64) {
	f.planner.entries = append(f.planner.entries, planner.Entry{
		ID:            uuid.New(),
		UserID:        f.userID,
		TaskID:        taskID,
		Date:          f.date,
		StartTime:     time.Date(2026, 3, 10, startHour, 0, 0, 0, time.UTC),
		DurationHours: durationHours,
	})
}

func TestRecordCompletionSpeedTask(t *testing.T) {
	f := newFixture()
	taskID := f.addTask(task.TaskStatusCompleted, nil)
	f.planTask(taskID, 14, 1) // planned end 15:00

	completedAt := time.Date(2026, 3, 10, 14, 40, 0, 0, time.UTC)
	record, awarded, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID, completedAt)
	require.NoError(t, err)

	require.NotNil(t, record.TimeSavedMinutes)
	assert.Equal(t, 20, *record.TimeSavedMinutes)
	assert.True(t, record.WasInPlanner)
	assert.False(t, record.WasInCalendar)
	assert.False(t, record.CompletedAfterHours)

	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypeSpeedTask, awarded[0].BadgeType)
	assert.Equal(t, taskID.String(), awarded[0].Metadata["task_id"])
	assert.Equal(t, 20, awarded[0].Metadata["minutes_saved"])
}

func TestRecordCompletionBelowSpeedThreshold(t *testing.T) {
	f := newFixture()
	taskID := f.addTask(task.TaskStatusCompleted, nil)
	f.planTask(taskID, 14, 1)

	// 14 minutes early is one short of the threshold. The plan still blocks
	// the flexible badge.
	completedAt := time.Date(2026, 3, 10, 14, 46, 0, 0, time.UTC)
	record, awarded, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID, completedAt)
	require.NoError(t, err)
	assert.Equal(t, 14, *record.TimeSavedMinutes)
	assert.Empty(t, awarded)
}

func TestRecordCompletionFlexible(t *testing.T) {
	f := newFixture()
	taskID := f.addTask(task.TaskStatusCompleted, nil)

	completedAt := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	record, awarded, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID, completedAt)
	require.NoError(t, err)

	assert.False(t, record.WasInPlanner)
	assert.False(t, record.WasInCalendar)
	assert.Nil(t, record.TimeSavedMinutes)

	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypeFlexible, awarded[0].BadgeType)
}

func TestRecordCompletionCalendarBlocksFlexible(t *testing.T) {
	f := newFixture()
	due := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	taskID := f.addTask(task.TaskStatusCompleted, &due)

	completedAt := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	record, awarded, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID, completedAt)
	require.NoError(t, err)
	assert.True(t, record.WasInCalendar)
	assert.Empty(t, awarded)
}

func TestRecordCompletionAfterHours(t *testing.T) {
	f := newFixture()
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	taskID := f.addTask(task.TaskStatusCompleted, &due)

	completedAt := time.Date(2026, 3, 10, 21, 15, 0, 0, time.UTC)
	record, awarded, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID, completedAt)
	require.NoError(t, err)
	assert.True(t, record.CompletedAfterHours)

	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypeAfterHours, awarded[0].BadgeType)

	// A second after-hours completion the same day awards nothing new.
	other := f.addTask(task.TaskStatusCompleted, &due)
	_, awarded, err = f.svc.RecordCompletion(context.Background(), f.userID, other, completedAt.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestRecordCompletionUnknownTask(t *testing.T) {
	f := newFixture()
	_, _, err := f.svc.RecordCompletion(context.Background(), f.userID, uuid.New(), time.Now())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestRecordCompletionForeignTask(t *testing.T) {
	f := newFixture()
	taskID := f.addTask(task.TaskStatusCompleted, nil)
	f.tasks.byID[taskID].UserID = uuid.New()

	_, _, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID, time.Now())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestRecordCompletionRetryIsIdempotent(t *testing.T) {
	f := newFixture()
	taskID := f.addTask(task.TaskStatusCompleted, nil)
	f.planTask(taskID, 14, 2)

	completedAt := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	_, first, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID, completedAt)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, second, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID, completedAt)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, f.badges.all(), 1)
}

func TestPerfectDay(t *testing.T) {
	f := newFixture()
	a := f.addTask(task.TaskStatusCompleted, nil)
	b := f.addTask(task.TaskStatusCompleted, nil)
	f.planTask(a, 9, 1)
	f.planTask(b, 11, 2)

	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypePerfectDay, awarded[0].BadgeType)
	assert.Equal(t, 2, awarded[0].Metadata["tasks_completed"])
	assert.Equal(t, 2, awarded[0].Metadata["tasks_total"])

	// Re-running the check is a no-op.
	again, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestPerfectDayEmptyPlan(t *testing.T) {
	f := newFixture()
	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestPerfectDayIncomplete(t *testing.T) {
	f := newFixture()
	a := f.addTask(task.TaskStatusCompleted, nil)
	b := f.addTask(task.TaskStatusPending, nil)
	f.planTask(a, 9, 1)
	f.planTask(b, 11, 2)

	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestSpeedDayTierUpgradeKeepsOneBadge(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	saved := 45
	f.completions.records = append(f.completions.records, CompletionRecord{
		UserID: f.userID, Date: f.date, TimeSavedMinutes: &saved,
	})

	awarded, err := f.svc.RunDailyCheck(ctx, f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypeSpeedDayBronze, awarded[0].BadgeType)

	// More savings later the same day push the total into silver.
	more := 30
	f.completions.records = append(f.completions.records, CompletionRecord{
		UserID: f.userID, Date: f.date, TimeSavedMinutes: &more,
	})

	awarded, err = f.svc.RunDailyCheck(ctx, f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypeSpeedDaySilver, awarded[0].BadgeType)

	all := f.badges.all()
	require.Len(t, all, 1)
	assert.Equal(t, BadgeTypeSpeedDaySilver, all[0].BadgeType)
	require.NotNil(t, all[0].BadgeTier)
	assert.Equal(t, TierSilver, *all[0].BadgeTier)

	// Same total again leaves the badge as is.
	awarded, err = f.svc.RunDailyCheck(ctx, f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestSpeedDayLateTasksSubtract(t *testing.T) {
	f := newFixture()
	early, late := 50, -30
	f.completions.records = append(f.completions.records,
		CompletionRecord{UserID: f.userID, Date: f.date, TimeSavedMinutes: &early},
		CompletionRecord{UserID: f.userID, Date: f.date, TimeSavedMinutes: &late},
	)

	// Net 20 minutes is below bronze.
	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestExceptionalGlobal(t *testing.T) {
	f := newFixture()
	currentFrom := f.date.AddDate(0, 0, -6)
	f.tasks.countGlobal = func(from, _ time.Time) int64 {
		if from.Equal(currentFrom) {
			return 7
		}
		return 10
	}

	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypeExceptionalGlobal, awarded[0].BadgeType)
	assert.EqualValues(t, 10, awarded[0].Metadata["previous_count"])
	assert.EqualValues(t, 7, awarded[0].Metadata["current_count"])
	assert.InDelta(t, 30.0, awarded[0].Metadata["percentage_improvement"], 0.001)
}

func TestExceptionalGlobalBelowThreshold(t *testing.T) {
	f := newFixture()
	currentFrom := f.date.AddDate(0, 0, -6)
	f.tasks.countGlobal = func(from, _ time.Time) int64 {
		if from.Equal(currentFrom) {
			return 9
		}
		return 10
	}

	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestExceptionalGlobalZeroBaseline(t *testing.T) {
	f := newFixture()
	f.tasks.countGlobal = func(_, _ time.Time) int64 { return 0 }

	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestExceptionalCategory(t *testing.T) {
	f := newFixture()
	improved := uuid.New()
	flat := uuid.New()
	f.tasks.names[improved] = "Work"
	f.tasks.names[flat] = "Errands"

	currentFrom := f.date.AddDate(0, 0, -6)
	f.tasks.countByList = func(from, _ time.Time) map[uuid.UUID]int64 {
		if from.Equal(currentFrom) {
			return map[uuid.UUID]int64{improved: 4, flat: 8}
		}
		return map[uuid.UUID]int64{improved: 8, flat: 8}
	}

	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypeExceptionalCategory, awarded[0].BadgeType)
	assert.Equal(t, improved.String(), awarded[0].Metadata["category_id"])
	assert.Equal(t, "Work", awarded[0].Metadata["category_name"])
	assert.InDelta(t, 50.0, awarded[0].Metadata["percentage_improvement"], 0.001)
}

func TestMidnightAfterHoursCatchUp(t *testing.T) {
	f := newFixture()
	f.completions.records = append(f.completions.records, CompletionRecord{
		UserID:              f.userID,
		Date:                f.date,
		ActualCompletion:    time.Date(2026, 3, 10, 22, 5, 0, 0, time.UTC),
		CompletedAfterHours: true,
	})

	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckMidnight)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, BadgeTypeAfterHours, awarded[0].BadgeType)

	// The catch-up converges: a second run changes nothing.
	again, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckMidnight)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestMidnightNoAfterHoursCompletions(t *testing.T) {
	f := newFixture()
	f.completions.records = append(f.completions.records, CompletionRecord{
		UserID:           f.userID,
		Date:             f.date,
		ActualCompletion: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
	})

	awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckMidnight)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestRunDailyCheckInvalidType(t *testing.T) {
	f := newFixture()
	_, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckType("noon"))
	assert.ErrorIs(t, err, ErrInvalidCheckType)
}

func TestConcurrentEveningChecksAwardOnce(t *testing.T) {
	f := newFixture()
	a := f.addTask(task.TaskStatusCompleted, nil)
	f.planTask(a, 9, 1)

	const workers = 16
	results := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			awarded, err := f.svc.RunDailyCheck(context.Background(), f.userID, f.date, CheckEvening)
			assert.NoError(t, err)
			results <- len(awarded)
		}()
	}
	wg.Wait()
	close(results)

	total := 0
	for n := range results {
		total += n
	}
	assert.Equal(t, 1, total, "exactly one goroutine should win the award")
	assert.Len(t, f.badges.all(), 1)
}

func TestBadgeEventsDistinguishUpgrades(t *testing.T) {
	f := newFixture()
	bus := &fakeCache{}
	svc := NewService(f.completions, f.badges, f.tasks, f.planner, bus, zap.NewNop())
	ctx := context.Background()

	saved := 45
	f.completions.records = append(f.completions.records, CompletionRecord{
		UserID: f.userID, Date: f.date, TimeSavedMinutes: &saved,
	})

	_, err := svc.RunDailyCheck(ctx, f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	require.Len(t, bus.published, 1)
	assert.Equal(t, events.BadgeEventAwarded, bus.published[0].EventType)
	assert.Equal(t, string(BadgeTypeSpeedDayBronze), bus.published[0].BadgeType)

	more := 30
	f.completions.records = append(f.completions.records, CompletionRecord{
		UserID: f.userID, Date: f.date, TimeSavedMinutes: &more,
	})

	_, err = svc.RunDailyCheck(ctx, f.userID, f.date, CheckEvening)
	require.NoError(t, err)
	require.Len(t, bus.published, 2)
	assert.Equal(t, events.BadgeEventUpgraded, bus.published[1].EventType)
	assert.Equal(t, string(BadgeTypeSpeedDaySilver), bus.published[1].BadgeType)

	// Each award round invalidates the user's cached badge lists.
	assert.Len(t, bus.invalidated, 2)
}

func TestListBadgesWithoutCache(t *testing.T) {
	f := newFixture()
	taskID := f.addTask(task.TaskStatusCompleted, nil)
	_, _, err := f.svc.RecordCompletion(context.Background(), f.userID, taskID,
		time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	badges, err := f.svc.ListBadges(context.Background(), f.userID, &f.date)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, BadgeTypeFlexible, badges[0].BadgeType)

	other := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	badges, err = f.svc.ListBadges(context.Background(), f.userID, &other)
	require.NoError(t, err)
	assert.Empty(t, badges)
}
