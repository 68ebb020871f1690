package entity

import (
	"database/sql"
	"time"
)

type Task struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Title string

	// DurationMinutes shrinks when the timer is paused mid-countdown: it
	// always holds the remaining countdown of an inactive task.
	DurationMinutes int

	// IsCompleted is terminal. IsActive is true while the server-side
	// countdown runs; at most one task per user is active at a time.
	IsCompleted bool
	IsActive    bool

	StartedAt          sql.NullTime
	ExpectedCompletion sql.NullTime
	CompletedAt        sql.NullTime
}

// RemainingSeconds reports the countdown a client should display.
func (t *Task) RemainingSeconds(now time.Time) int {
	if !t.IsActive || !t.ExpectedCompletion.Valid {
		return t.DurationMinutes * 60
	}

	remaining := t.ExpectedCompletion.Time.Sub(now).Seconds()
	if remaining < 0 {
		return 0
	}

	return int(remaining)
}

// IsExpired reports whether an active countdown has run out and the task is
// due for completion.
func (t *Task) IsExpired(now time.Time) bool {
	if t.IsCompleted || !t.IsActive {
		return false
	}

	return t.ExpectedCompletion.Valid && !now.Before(t.ExpectedCompletion.Time)
}
