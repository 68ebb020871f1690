// Package streak holds the consecutive-study-day state machine. It mutates
// user entities in memory only; persisting the result is the caller's job,
// inside whatever transaction wraps the triggering event.
package streak

import (
	"database/sql"

	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
)

const (
	// MinimumDailyMinutes is how much a user must study in a calendar day
	// for the day to count toward a streak.
	MinimumDailyMinutes = 120

	// MaxGraceDays is how many single-day gaps are forgiven per streak.
	MaxGraceDays = 3

	// BreakAfterDays is the absence after which a streak expires even
	// without a new study session.
	BreakAfterDays = 3
)

// Record re-evaluates the streak after a task completion. minutesToday must
// be the day's cumulative studied minutes, not just the finishing task's:
// callers invoke this on every completion, and the day starts counting the
// moment its total crosses the threshold.
//
// Reports whether the user record changed.
func Record(user *entity.User, minutesToday int) bool {
	if minutesToday < MinimumDailyMinutes {
		return false
	}

	today := dateutil.Today()

	if !user.LastStudyDate.Valid {
		// First qualifying session ever.
		user.CurrentStreak = 1
		user.GraceDaysUsed = 0
	} else {
		switch gap := dateutil.DaysBetween(user.LastStudyDate.Time, today); {
		case gap == 0:
			// Already counted today; only the date stamp refreshes.
		case gap == 1:
			user.CurrentStreak++
		case gap == 2:
			// A single missed day can be forgiven.
			if user.GraceDaysUsed < MaxGraceDays {
				user.GraceDaysUsed++
			} else {
				user.CurrentStreak = 1
				user.GraceDaysUsed = 0
			}
		default:
			// Too large a gap for grace.
			user.CurrentStreak = 1
			user.GraceDaysUsed = 0
		}
	}

	user.LastStudyDate = sql.NullTime{Valid: true, Time: today}
	if user.CurrentStreak > user.MaxStreak {
		user.MaxStreak = user.CurrentStreak
	}

	return true
}

// CheckAndExpire zeroes the streak of a user who has been away for
// BreakAfterDays or more. It is the only path that can reset a streak
// without a study session, so absent users do not keep stale streaks until
// they return. Idempotent; reports whether the user record changed.
func CheckAndExpire(user *entity.User) bool {
	if !user.LastStudyDate.Valid {
		return false
	}

	if dateutil.DaysSince(user.LastStudyDate.Time) < BreakAfterDays {
		return false
	}

	if user.CurrentStreak == 0 && user.GraceDaysUsed == 0 {
		return false
	}

	user.CurrentStreak = 0
	user.GraceDaysUsed = 0
	return true
}
