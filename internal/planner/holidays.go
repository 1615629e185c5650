package planner

import "time"

// usHolidays returns the observed US federal holidays for a year, keyed by
// ISO date. Fixed-date holidays falling on a Saturday are observed the
// Friday before, on a Sunday the Monday after.
func usHolidays(year int) map[string]bool {
	days := []time.Time{
		observed(time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC)),   // New Year's Day
		nthWeekday(year, time.January, time.Monday, 3),                      // MLK Day
		nthWeekday(year, time.February, time.Monday, 3),                     // Washington's Birthday
		lastWeekday(year, time.May, time.Monday),                            // Memorial Day
		observed(time.Date(year, time.June, 19, 12, 0, 0, 0, time.UTC)),     // Juneteenth
		observed(time.Date(year, time.July, 4, 12, 0, 0, 0, time.UTC)),      // Independence Day
		nthWeekday(year, time.September, time.Monday, 1),                    // Labor Day
		nthWeekday(year, time.October, time.Monday, 2),                      // Columbus Day
		observed(time.Date(year, time.November, 11, 12, 0, 0, 0, time.UTC)), // Veterans Day
		nthWeekday(year, time.November, time.Thursday, 4),                   // Thanksgiving
		observed(time.Date(year, time.December, 25, 12, 0, 0, 0, time.UTC)), // Christmas
	}
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[formatDate(d)] = true
	}
	return set
}

func observed(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+7*(n-1))
}

func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	d := time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC) // last day of month
	offset := (int(d.Weekday()) - int(wd) + 7) % 7
	return d.AddDate(0, 0, -offset)
}
