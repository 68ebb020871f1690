package entity

import (
	"database/sql"
	"time"

	"github.com/shuuuu87/DarkFocus/pkg/enum"
)

type ChallengeStatus string

var (
	ChallengePending   = enum.New(ChallengeStatus("pending"))
	ChallengeActive    = enum.New(ChallengeStatus("active"))
	ChallengeCompleted = enum.New(ChallengeStatus("completed"))
	ChallengeDeclined  = enum.New(ChallengeStatus("declined"))
)

type Challenge struct {
	Base

	ChallengerID string
	Challenger   User `gorm:"foreignKey:ChallengerID"`

	ChallengedID string
	Challenged   User `gorm:"foreignKey:ChallengedID"`

	DurationDays int

	// The scoring window. Both are re-anchored at acceptance time; points
	// earned between proposal and acceptance are never credited.
	StartDate time.Time
	EndDate   time.Time

	// Points each side earned from tasks completed inside the window while
	// the challenge was active.
	ChallengerPoints float64
	ChallengedPoints float64

	Status ChallengeStatus

	// WinnerID stays unset on a tie. PointsGained is the absolute point
	// differential awarded to the winner at resolution.
	WinnerID     sql.NullString
	PointsGained float64
}

// InWindow reports whether a completion timestamp falls inside the scoring
// window [StartDate, EndDate).
func (c *Challenge) InWindow(at time.Time) bool {
	return !at.Before(c.StartDate) && at.Before(c.EndDate)
}
