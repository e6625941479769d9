package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hash23code/foxwise-todo-sub001/internal/domain/achievement"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

type stubTaskService struct {
	completed *task.Task
}

func (s *stubTaskService) CreateTask(context.Context, task.CreateTaskInput) (*task.Task, error) {
	return nil, nil
}

func (s *stubTaskService) GetTask(context.Context, uuid.UUID, uuid.UUID) (*task.Task, error) {
	return nil, nil
}

func (s *stubTaskService) ListTasks(context.Context, task.TaskFilter) ([]task.Task, int64, error) {
	return nil, 0, nil
}

func (s *stubTaskService) UpdateTaskStatus(context.Context, uuid.UUID, uuid.UUID, task.TaskStatus) (*task.Task, error) {
	return nil, nil
}

func (s *stubTaskService) CompleteTask(_ context.Context, _, _ uuid.UUID, completedAt time.Time) (*task.Task, error) {
	t := *s.completed
	t.Status = task.TaskStatusCompleted
	t.CompletedAt = &completedAt
	return &t, nil
}

func (s *stubTaskService) DeleteTask(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (s *stubTaskService) CreateList(context.Context, task.CreateListInput) (*task.TaskList, error) {
	return nil, nil
}

func (s *stubTaskService) ListLists(context.Context, uuid.UUID) ([]task.TaskList, error) {
	return nil, nil
}

func (s *stubTaskService) GetOrCreateDefaultList(context.Context, uuid.UUID) (*task.TaskList, error) {
	return nil, nil
}

type stubAchievementService struct {
	recordErr error
	awarded   []achievement.Badge
}

func (s *stubAchievementService) RecordCompletion(context.Context, uuid.UUID, uuid.UUID, time.Time) (*achievement.CompletionRecord, []achievement.Badge, error) {
	if s.recordErr != nil {
		return nil, nil, s.recordErr
	}
	return &achievement.CompletionRecord{}, s.awarded, nil
}

func (s *stubAchievementService) RunDailyCheck(context.Context, uuid.UUID, time.Time, achievement.CheckType) ([]achievement.Badge, error) {
	return nil, nil
}

func (s *stubAchievementService) ListBadges(context.Context, uuid.UUID, *time.Time) ([]achievement.Badge, error) {
	return nil, nil
}

func completeTaskRequest(t *testing.T, handler *TaskHandler, userID, taskID uuid.UUID) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/tasks/"+taskID.String()+"/complete", nil)
	c.Params = gin.Params{{Key: "id", Value: taskID.String()}}
	c.Set("user_id", userID)

	handler.CompleteTask(c)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body.Data
}

func TestCompleteTaskReportsCompletionRecorded(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	taskSvc := &stubTaskService{completed: &task.Task{
		ID:     taskID,
		UserID: userID,
		ListID: uuid.New(),
		Title:  "test task",
		Status: task.TaskStatusPending,
	}}
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	achSvc := &stubAchievementService{
		awarded: []achievement.Badge{*achievement.NewBadge(userID, date, achievement.BadgeTypeFlexible, nil)},
	}

	handler := NewTaskHandler(taskSvc, achSvc, zap.NewNop())
	w, data := completeTaskRequest(t, handler, userID, taskID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, data["completion_recorded"])
	require.NotNil(t, data["badges"])
	assert.Len(t, data["badges"], 1)
}

// A failed completion record must not be silent: the task is already
// completed and this endpoint cannot be retried, so the response has to tell
// the client to repair via the completions endpoint.
func TestCompleteTaskSurfacesFailedCompletionRecord(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	taskSvc := &stubTaskService{completed: &task.Task{
		ID:     taskID,
		UserID: userID,
		ListID: uuid.New(),
		Title:  "test task",
		Status: task.TaskStatusPending,
	}}
	achSvc := &stubAchievementService{recordErr: errors.New("connection refused")}

	handler := NewTaskHandler(taskSvc, achSvc, zap.NewNop())
	w, data := completeTaskRequest(t, handler, userID, taskID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, data["completion_recorded"])
	assert.Empty(t, data["badges"])
}
