package entity

import "database/sql"

type User struct {
	Base

	Name string `gorm:"unique"`

	// TotalPoints only grows. Task completions and challenge settlements
	// add points; nothing subtracts them.
	TotalPoints float64

	// CurrentStreak is the number of consecutive study days, where a day
	// counts once at least 120 minutes were studied in it. MaxStreak is the
	// highest CurrentStreak ever observed.
	CurrentStreak int
	MaxStreak     int

	// LastStudyDate is the last calendar date (app region) that counted as a
	// study day. Unset until the first qualifying session.
	LastStudyDate sql.NullTime

	// GraceDaysUsed counts forgiven single-day gaps in the current streak.
	// It resets whenever the streak breaks or restarts.
	GraceDaysUsed int

	// TotalStudyTime is in minutes.
	TotalStudyTime int
}
