package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	// 22:00 UTC already belongs to the next calendar day in the app region.
	lateUTC := time.Date(2023, 6, 1, 22, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC), DateOf(lateUTC))

	morning := time.Date(2023, 6, 2, 9, 30, 0, 0, Location())
	require.Equal(t, time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC), DateOf(morning))
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2023, 6, 1, 23, 59, 0, 0, Location())
	to := time.Date(2023, 6, 2, 0, 1, 0, 0, Location())

	// Two minutes apart, but a day boundary in between.
	require.Equal(t, 1, DaysBetween(from, to))
	require.Equal(t, 0, DaysBetween(from, from))
	require.Equal(t, -1, DaysBetween(to, from))

	require.Equal(t, 31, DaysBetween(
		time.Date(2023, 5, 2, 12, 0, 0, 0, Location()),
		time.Date(2023, 6, 2, 6, 0, 0, 0, Location()),
	))
}

func TestBeginningOfDay(t *testing.T) {
	noon := time.Date(2023, 6, 2, 12, 17, 3, 0, Location())
	begin := BeginningOfDay(noon)
	require.Equal(t, 0, begin.Hour())
	require.Equal(t, noon.Day(), begin.Day())
	require.Equal(t, Location(), begin.Location())
}
