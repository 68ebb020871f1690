package cron

import (
	"time"

	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
)

// inQuietWindow reports whether the app-region hour of t falls inside
// [startHour, endHour), the nightly span where sweeps are suspended. A
// window wrapping past midnight (startHour > endHour) is supported. Equal
// bounds mean no quiet window at all.
func inQuietWindow(t time.Time, startHour, endHour int) bool {
	if startHour == endHour {
		return false
	}

	hour := t.In(dateutil.Location()).Hour()
	if startHour < endHour {
		return hour >= startHour && hour < endHour
	}

	return hour >= startHour || hour < endHour
}
