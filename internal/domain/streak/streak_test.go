package streak

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/stretchr/testify/require"
)

func lastStudied(daysAgo int) sql.NullTime {
	return sql.NullTime{Valid: true, Time: dateutil.Today().AddDate(0, 0, -daysAgo)}
}

func TestRecordFirstSession(t *testing.T) {
	user := &entity.User{}
	require.True(t, Record(user, 120))

	require.Equal(t, 1, user.CurrentStreak)
	require.Equal(t, 1, user.MaxStreak)
	require.Equal(t, 0, user.GraceDaysUsed)
	require.True(t, user.LastStudyDate.Valid)
	require.Equal(t, dateutil.Today(), user.LastStudyDate.Time)
}

func TestRecordBelowThreshold(t *testing.T) {
	user := &entity.User{CurrentStreak: 5, MaxStreak: 7, GraceDaysUsed: 1, LastStudyDate: lastStudied(1)}
	before := *user

	require.False(t, Record(user, 119))
	require.Equal(t, before, *user)
}

func TestRecordSameDay(t *testing.T) {
	user := &entity.User{CurrentStreak: 5, MaxStreak: 7, LastStudyDate: lastStudied(0)}
	require.True(t, Record(user, 200))

	require.Equal(t, 5, user.CurrentStreak)
	require.Equal(t, 7, user.MaxStreak)
}

func TestRecordConsecutiveDay(t *testing.T) {
	user := &entity.User{CurrentStreak: 5, MaxStreak: 5, LastStudyDate: lastStudied(1)}
	require.True(t, Record(user, 150))

	require.Equal(t, 6, user.CurrentStreak)
	require.Equal(t, 6, user.MaxStreak)
}

func TestRecordGraceDay(t *testing.T) {
	user := &entity.User{CurrentStreak: 5, MaxStreak: 9, GraceDaysUsed: 0, LastStudyDate: lastStudied(2)}
	require.True(t, Record(user, 150))

	// The missed day is forgiven: streak unchanged, one grace spent.
	require.Equal(t, 5, user.CurrentStreak)
	require.Equal(t, 1, user.GraceDaysUsed)
}

func TestRecordGraceExhausted(t *testing.T) {
	user := &entity.User{CurrentStreak: 5, MaxStreak: 9, GraceDaysUsed: MaxGraceDays, LastStudyDate: lastStudied(2)}
	require.True(t, Record(user, 150))

	require.Equal(t, 1, user.CurrentStreak)
	require.Equal(t, 0, user.GraceDaysUsed)
	require.Equal(t, 9, user.MaxStreak)
}

func TestRecordLongGap(t *testing.T) {
	for _, daysAgo := range []int{3, 4, 30} {
		user := &entity.User{CurrentStreak: 10, MaxStreak: 10, GraceDaysUsed: 2, LastStudyDate: lastStudied(daysAgo)}
		require.True(t, Record(user, 150))

		require.Equal(t, 1, user.CurrentStreak)
		require.Equal(t, 0, user.GraceDaysUsed)
	}
}

func TestRecordTimeOfDayIrrelevant(t *testing.T) {
	// A timestamp late in yesterday must still count as a 1-day gap.
	y, m, d := dateutil.Today().Date()
	yesterdayEvening := time.Date(y, m, d-1, 23, 0, 0, 0, dateutil.Location())
	user := &entity.User{
		CurrentStreak: 2,
		MaxStreak:     2,
		LastStudyDate: sql.NullTime{Valid: true, Time: yesterdayEvening},
	}
	require.True(t, Record(user, 150))
	require.Equal(t, 3, user.CurrentStreak)
}

func TestMaxStreakInvariant(t *testing.T) {
	user := &entity.User{}
	for day := 0; day < 5; day++ {
		if user.LastStudyDate.Valid {
			user.LastStudyDate.Time = user.LastStudyDate.Time.AddDate(0, 0, -1)
		}
		Record(user, 150)
		require.GreaterOrEqual(t, user.MaxStreak, user.CurrentStreak)
	}
}

func TestCheckAndExpire(t *testing.T) {
	user := &entity.User{CurrentStreak: 4, MaxStreak: 4, GraceDaysUsed: 2, LastStudyDate: lastStudied(3)}
	require.True(t, CheckAndExpire(user))

	require.Equal(t, 0, user.CurrentStreak)
	require.Equal(t, 0, user.GraceDaysUsed)
	require.Equal(t, 4, user.MaxStreak)

	// Idempotent.
	require.False(t, CheckAndExpire(user))
}

func TestCheckAndExpireRecentUser(t *testing.T) {
	user := &entity.User{CurrentStreak: 4, MaxStreak: 4, LastStudyDate: lastStudied(2)}
	require.False(t, CheckAndExpire(user))
	require.Equal(t, 4, user.CurrentStreak)
}

func TestCheckAndExpireNeverStudied(t *testing.T) {
	user := &entity.User{}
	require.False(t, CheckAndExpire(user))
}
