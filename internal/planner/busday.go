package planner

import (
	"time"

	"github.com/installo/bnpl-planner/internal/models"
	"github.com/installo/bnpl-planner/internal/planerr"
)

// maxShiftDays bounds the forward search for a business day. No sane
// holiday calendar blocks more than a week in a row, so hitting the bound
// means the skip-date configuration is pathological.
const maxShiftDays = 7

// ShiftConfig controls business-day shifting.
type ShiftConfig struct {
	BusinessDayMode bool
	Country         string // "US" enables the federal holiday calendar, "None" disables it
	CustomSkipDates []string
}

// ShiftBusinessDays advances every due date that lands on a weekend,
// holiday or custom skip date to the next valid business day, recording a
// MovedDate for each relocation. With BusinessDayMode off the installments
// pass through untouched. The returned slice is a copy; inputs are never
// mutated. This is the only place in the pipeline allowed to change a due
// date.
func ShiftBusinessDays(items []models.Installment, tz string, cfg ShiftConfig) ([]models.Installment, []models.MovedDate, error) {
	out := make([]models.Installment, len(items))
	copy(out, items)
	moved := []models.MovedDate{}
	if !cfg.BusinessDayMode {
		return out, moved, nil
	}

	loc, err := loadLocation(tz)
	if err != nil {
		return nil, nil, err
	}
	skip := make(map[string]bool, len(cfg.CustomSkipDates))
	for _, d := range cfg.CustomSkipDates {
		if _, err := time.Parse(isoDate, d); err != nil {
			return nil, nil, planerr.Validation("customSkipDates", "invalid date %q, want YYYY-MM-DD", d)
		}
		skip[d] = true
	}
	useHolidays := cfg.Country == "US"

	for i := range out {
		date, err := parseDate("dueDate", out[i].DueDate, loc)
		if err != nil {
			return nil, nil, err
		}
		reason := blockReason(date, useHolidays, skip)
		if reason == "" {
			continue
		}
		shifted := date
		for n := 0; ; n++ {
			if n >= maxShiftDays {
				return nil, nil, &planerr.UnresolvableShiftError{Date: out[i].DueDate, Horizon: maxShiftDays}
			}
			shifted = addDays(shifted, 1)
			if blockReason(shifted, useHolidays, skip) == "" {
				break
			}
		}
		moved = append(moved, models.MovedDate{
			Installment:  out[i].Ref(),
			OriginalDate: out[i].DueDate,
			ShiftedDate:  formatDate(shifted),
			Reason:       reason,
		})
		out[i].DueDate = formatDate(shifted)
	}

	// Shifting can reorder neighbors; restore the sort invariant.
	sortByDueDate(out)
	return out, moved, nil
}

// blockReason classifies a date, returning "" when it is a valid business
// day. Weekend wins over holiday wins over custom skip when several apply.
func blockReason(d time.Time, useHolidays bool, skip map[string]bool) string {
	if isWeekend(d) {
		return models.MoveReasonWeekend
	}
	if useHolidays && usHolidays(d.Year())[formatDate(d)] {
		return models.MoveReasonHoliday
	}
	if skip[formatDate(d)] {
		return models.MoveReasonCustomSkip
	}
	return ""
}
