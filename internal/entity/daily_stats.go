package entity

import "time"

// DailyStats is the per-user-per-day ledger of study activity. A row is
// created lazily on the first task completion of that day.
type DailyStats struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_user_date"`
	User   User   `gorm:"foreignKey:UserID"`

	// Date is a calendar date in the app region, normalized to midnight UTC.
	Date time.Time `gorm:"uniqueIndex:idx_user_date"`

	MinutesStudied int
	PointsEarned   float64
	TasksCompleted int
}
