package planner

import (
	"time"

	"github.com/installo/bnpl-planner/internal/models"
	"github.com/installo/bnpl-planner/internal/planerr"
)

// paydayCount is how many future paydays the calculator derives in
// cadence mode. Explicit-list mode may return one fewer; the result is
// always 3 or 4 dates.
const paydayCount = 4

// CalculatePaydays derives the upcoming payday dates. When explicit dates
// are supplied they win: each must be a valid ISO date and the list must
// be ascending; the first four are returned unchanged. Otherwise the
// cadence and anchor (nextPayday) drive the derivation.
func CalculatePaydays(explicit []string, cadence, anchor, tz string) ([]string, error) {
	if len(explicit) > 0 {
		return explicitPaydays(explicit)
	}

	loc, err := loadLocation(tz)
	if err != nil {
		return nil, err
	}
	if anchor == "" {
		return nil, planerr.Validation("nextPayday", "required when paycheckDates are not supplied")
	}
	start, err := parseDate("nextPayday", anchor, loc)
	if err != nil {
		return nil, err
	}

	switch cadence {
	case models.CadenceWeekly:
		return everyNDays(start, 7), nil
	case models.CadenceBiweekly:
		return everyNDays(start, 14), nil
	case models.CadenceSemimonthly:
		return semimonthly(start), nil
	case models.CadenceMonthly:
		return monthly(start), nil
	case "":
		return nil, planerr.Validation("payCadence", "required when paycheckDates are not supplied")
	default:
		return nil, planerr.Validation("payCadence", "unknown cadence %q", cadence)
	}
}

func explicitPaydays(dates []string) ([]string, error) {
	if len(dates) < 3 {
		return nil, planerr.Validation("paycheckDates", "need at least 3 dates, got %d", len(dates))
	}
	prev := ""
	for _, d := range dates {
		// Format-only validation; explicit dates are compared as ISO
		// strings so no timezone can skew them.
		if _, err := time.Parse(isoDate, d); err != nil {
			return nil, planerr.Validation("paycheckDates", "invalid date %q, want YYYY-MM-DD", d)
		}
		if prev != "" && d <= prev {
			return nil, planerr.Validation("paycheckDates", "dates must be strictly ascending, %q follows %q", d, prev)
		}
		prev = d
	}
	if len(dates) > paydayCount {
		dates = dates[:paydayCount]
	}
	out := make([]string, len(dates))
	copy(out, dates)
	return out, nil
}

func everyNDays(start time.Time, n int) []string {
	out := make([]string, 0, paydayCount)
	for i := 0; i < paydayCount; i++ {
		out = append(out, formatDate(addDays(start, n*i)))
	}
	return out
}

// semimonthly alternates between the 1st and the 15th. An anchor on
// neither day snaps to the nearest prior rule day: the 2nd through the
// 14th behave as the 1st, the 16th onward behave as the 15th.
func semimonthly(start time.Time) []string {
	year, month, day := start.Date()
	loc := start.Location()
	onFirst := day < 15

	out := make([]string, 0, paydayCount)
	for i := 0; i < paydayCount; i++ {
		if onFirst {
			out = append(out, formatDate(time.Date(year, month, 1, 12, 0, 0, 0, loc)))
		} else {
			out = append(out, formatDate(time.Date(year, month, 15, 12, 0, 0, 0, loc)))
			month++
		}
		onFirst = !onFirst
	}
	return out
}

// monthly repeats the anchor's day-of-month, clamped to the last valid day
// of shorter months (an anchor on the 31st pays on Feb 28/29).
func monthly(start time.Time) []string {
	year, month, day := start.Date()
	loc := start.Location()

	out := make([]string, 0, paydayCount)
	for i := 0; i < paydayCount; i++ {
		m := month + time.Month(i)
		d := day
		if last := lastDayOfMonth(year, m, loc); d > last {
			d = last
		}
		out = append(out, formatDate(time.Date(year, m, d, 12, 0, 0, 0, loc)))
	}
	return out
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	// Day zero of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, loc).Day()
}
