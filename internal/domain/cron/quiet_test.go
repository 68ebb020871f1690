package cron

import (
	"testing"
	"time"

	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2023, 6, 1, hour, 30, 0, 0, dateutil.Location())
}

func TestInQuietWindow(t *testing.T) {
	require.True(t, inQuietWindow(at(0), 0, 6))
	require.True(t, inQuietWindow(at(5), 0, 6))
	require.False(t, inQuietWindow(at(6), 0, 6))
	require.False(t, inQuietWindow(at(12), 0, 6))
	require.False(t, inQuietWindow(at(23), 0, 6))
}

func TestInQuietWindowWrapsMidnight(t *testing.T) {
	require.True(t, inQuietWindow(at(23), 22, 4))
	require.True(t, inQuietWindow(at(2), 22, 4))
	require.False(t, inQuietWindow(at(4), 22, 4))
	require.False(t, inQuietWindow(at(12), 22, 4))
}

func TestInQuietWindowDisabled(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		require.False(t, inQuietWindow(at(hour), 0, 0))
	}
}

func TestInQuietWindowUsesRegionHour(t *testing.T) {
	// 22:00 UTC is 03:30 of the next day in the app region.
	utcEvening := time.Date(2023, 6, 1, 22, 0, 0, 0, time.UTC)
	require.True(t, inQuietWindow(utcEvening, 0, 6))
}
