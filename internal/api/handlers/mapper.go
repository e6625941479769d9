package handlers

import (
	"github.com/hash23code/foxwise-todo-sub001/internal/api/dto"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/achievement"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/planner"
	"github.com/hash23code/foxwise-todo-sub001/internal/domain/task"
)

const dateLayout = "2006-01-02"

func TaskToResponse(t *task.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		ListID:      t.ListID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ListToResponse(l *task.TaskList) dto.ListResponse {
	return dto.ListResponse{
		ID:        l.ID,
		Name:      l.Name,
		IsDefault: l.IsDefault,
		CreatedAt: l.CreatedAt,
	}
}

func EntryToResponse(e *planner.Entry) dto.PlannerEntryResponse {
	return dto.PlannerEntryResponse{
		ID:            e.ID,
		TaskID:        e.TaskID,
		Date:          e.Date.Format(dateLayout),
		StartTime:     e.StartTime,
		DurationHours: e.DurationHours,
	}
}

func CompletionToResponse(r *achievement.CompletionRecord) dto.CompletionResponse {
	return dto.CompletionResponse{
		ID:                   r.ID,
		TaskID:               r.TaskID,
		Date:                 r.Date.Format(dateLayout),
		ActualCompletion:     r.ActualCompletion,
		PlannedStart:         r.PlannedStart,
		PlannedDurationHours: r.PlannedDurationHours,
		TimeSavedMinutes:     r.TimeSavedMinutes,
		WasInPlanner:         r.WasInPlanner,
		WasInCalendar:        r.WasInCalendar,
		CompletedAfterHours:  r.CompletedAfterHours,
	}
}

func BadgeToResponse(b *achievement.Badge) dto.BadgeResponse {
	var tier *string
	if b.BadgeTier != nil {
		t := string(*b.BadgeTier)
		tier = &t
	}
	return dto.BadgeResponse{
		ID:        b.ID,
		BadgeType: string(b.BadgeType),
		BadgeTier: tier,
		Date:      b.Date.Format(dateLayout),
		EarnedAt:  b.EarnedAt,
		Metadata:  b.Metadata,
	}
}

func BadgesToResponse(badges []achievement.Badge) []dto.BadgeResponse {
	out := make([]dto.BadgeResponse, 0, len(badges))
	for i := range badges {
		out = append(out, BadgeToResponse(&badges[i]))
	}
	return out
}
