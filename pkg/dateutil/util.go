package dateutil

import "time"

// Streaks and daily stats are bucketed by calendar days in the app's home
// region, not by the host timezone and not by UTC.
const regionName = "Asia/Kolkata"

var region *time.Location

func init() {
	var err error
	region, err = time.LoadLocation(regionName)
	if err != nil {
		panic(err)
	}
}

func Location() *time.Location {
	return region
}

// DateOf returns the calendar date of t in the app region, normalized to
// midnight UTC so dates compare and store consistently regardless of the
// time-of-day they were derived from.
func DateOf(t time.Time) time.Time {
	y, m, d := t.In(region).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in the app region.
func Today() time.Time {
	return DateOf(time.Now())
}

// DaysBetween returns the number of whole calendar days from an earlier date
// to a later one. Both arguments are normalized first, so the result never
// depends on time-of-day.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

// DaysSince returns the number of whole calendar days from d until today.
func DaysSince(d time.Time) int {
	return DaysBetween(d, time.Now())
}

func BeginningOfDay(t time.Time) time.Time {
	y, m, d := t.In(region).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, region)
}

// Next returns the next multiple-of-interval instant after now, used for
// scheduling fixed-interval cron jobs.
func Next(interval time.Duration) time.Time {
	return time.Now().Add(interval)
}
