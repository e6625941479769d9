package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BadgeEventType identifies what happened to a badge
type BadgeEventType string

const (
	BadgeEventAwarded  BadgeEventType = "badge_awarded"
	BadgeEventUpgraded BadgeEventType = "badge_upgraded"
)

// BadgeEvent is published on the cache bus whenever a badge is written, so
// connected clients can refresh their badge views without polling.
type BadgeEvent struct {
	EventType BadgeEventType         `json:"event_type"`
	UserID    uuid.UUID              `json:"user_id"`
	BadgeID   uuid.UUID              `json:"badge_id"`
	BadgeType string                 `json:"badge_type"`
	Date      time.Time              `json:"date"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Channel returns the pub/sub channel for the event's user
func (e *BadgeEvent) Channel() string {
	return fmt.Sprintf("badge_updates:%s", e.UserID)
}
