package planner

import (
	"time"

	"github.com/installo/bnpl-planner/internal/planerr"
)

const isoDate = "2006-01-02"

// loadLocation resolves an IANA timezone identifier, rejecting the empty
// string (which time.LoadLocation would silently treat as UTC).
func loadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, planerr.Validation("timeZone", "timezone is required")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, planerr.Validation("timeZone", "unknown IANA timezone %q", tz)
	}
	return loc, nil
}

// parseDate interprets an ISO YYYY-MM-DD string in loc, anchored at noon.
// Noon anchoring keeps day arithmetic stable across DST transitions: adding
// 24h-multiples to a midnight-anchored time can land on the previous or
// next calendar day when the offset changes overnight.
func parseDate(field, s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(isoDate, s, loc)
	if err != nil {
		return time.Time{}, planerr.Validation(field, "invalid date %q, want YYYY-MM-DD", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc), nil
}

// formatDate renders a time back to the ISO date it represents in its own
// location.
func formatDate(t time.Time) string {
	return t.Format(isoDate)
}

// addDays advances a noon-anchored date by whole calendar days.
func addDays(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, 12, 0, 0, 0, t.Location())
}

// dateOnly truncates an instant to its calendar date in loc, noon-anchored.
func dateOnly(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 12, 0, 0, 0, loc)
}

// isWeekend reports whether the date falls on Saturday or Sunday.
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
