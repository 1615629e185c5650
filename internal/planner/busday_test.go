package planner

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/installo/bnpl-planner/internal/models"
	"github.com/installo/bnpl-planner/internal/planerr"
)

func item(provider string, n int, due string) models.Installment {
	return models.Installment{
		Provider:          provider,
		InstallmentNumber: n,
		DueDate:           due,
		Amount:            decimal.NewFromInt(50),
		Currency:          "USD",
		LateFee:           decimal.Zero,
	}
}

func TestShiftBusinessDaysOffIsPassthrough(t *testing.T) {
	items := []models.Installment{item("Klarna", 1, "2025-03-01")} // Saturday
	got, moved, err := ShiftBusinessDays(items, "America/New_York", ShiftConfig{BusinessDayMode: false})
	if err != nil {
		t.Fatalf("ShiftBusinessDays() unexpected error: %v", err)
	}
	if got[0].DueDate != "2025-03-01" {
		t.Fatalf("ShiftBusinessDays() moved date with mode off: %q", got[0].DueDate)
	}
	if len(moved) != 0 {
		t.Fatalf("ShiftBusinessDays() recorded %d moves with mode off, want 0", len(moved))
	}
}

func TestShiftBusinessDaysWeekend(t *testing.T) {
	items := []models.Installment{item("Klarna", 1, "2025-03-01")} // Saturday
	got, moved, err := ShiftBusinessDays(items, "America/New_York", ShiftConfig{BusinessDayMode: true, Country: "US"})
	if err != nil {
		t.Fatalf("ShiftBusinessDays() unexpected error: %v", err)
	}
	if got[0].DueDate != "2025-03-03" {
		t.Fatalf("ShiftBusinessDays() = %q, want Monday 2025-03-03", got[0].DueDate)
	}
	if len(moved) != 1 {
		t.Fatalf("ShiftBusinessDays() recorded %d moves, want 1", len(moved))
	}
	m := moved[0]
	if m.OriginalDate != "2025-03-01" || m.ShiftedDate != "2025-03-03" || m.Reason != models.MoveReasonWeekend {
		t.Fatalf("ShiftBusinessDays() moved = %+v", m)
	}
}

func TestShiftBusinessDaysHoliday(t *testing.T) {
	items := []models.Installment{item("Affirm", 2, "2025-07-04")} // Independence Day, a Friday
	got, moved, err := ShiftBusinessDays(items, "America/Chicago", ShiftConfig{BusinessDayMode: true, Country: "US"})
	if err != nil {
		t.Fatalf("ShiftBusinessDays() unexpected error: %v", err)
	}
	if got[0].DueDate != "2025-07-07" {
		t.Fatalf("ShiftBusinessDays() = %q, want 2025-07-07", got[0].DueDate)
	}
	if moved[0].Reason != models.MoveReasonHoliday {
		t.Fatalf("ShiftBusinessDays() reason = %q, want %q", moved[0].Reason, models.MoveReasonHoliday)
	}
}

func TestShiftBusinessDaysIgnoresHolidaysForCountryNone(t *testing.T) {
	items := []models.Installment{item("Affirm", 2, "2025-07-04")}
	got, moved, err := ShiftBusinessDays(items, "America/Chicago", ShiftConfig{BusinessDayMode: true, Country: "None"})
	if err != nil {
		t.Fatalf("ShiftBusinessDays() unexpected error: %v", err)
	}
	if got[0].DueDate != "2025-07-04" || len(moved) != 0 {
		t.Fatalf("ShiftBusinessDays() = %q with %d moves, want no shift", got[0].DueDate, len(moved))
	}
}

func TestShiftBusinessDaysCustomSkip(t *testing.T) {
	items := []models.Installment{item("Zip", 1, "2025-03-05")} // Wednesday
	cfg := ShiftConfig{BusinessDayMode: true, Country: "None", CustomSkipDates: []string{"2025-03-05"}}
	got, moved, err := ShiftBusinessDays(items, "UTC", cfg)
	if err != nil {
		t.Fatalf("ShiftBusinessDays() unexpected error: %v", err)
	}
	if got[0].DueDate != "2025-03-06" {
		t.Fatalf("ShiftBusinessDays() = %q, want 2025-03-06", got[0].DueDate)
	}
	if moved[0].Reason != models.MoveReasonCustomSkip {
		t.Fatalf("ShiftBusinessDays() reason = %q, want %q", moved[0].Reason, models.MoveReasonCustomSkip)
	}
}

func TestShiftBusinessDaysResortsAfterShifting(t *testing.T) {
	items := []models.Installment{
		item("Klarna", 1, "2025-03-01"), // Saturday, shifts to 03-03
		item("Affirm", 1, "2025-03-03"), // already a Monday
	}
	got, _, err := ShiftBusinessDays(items, "UTC", ShiftConfig{BusinessDayMode: true, Country: "US"})
	if err != nil {
		t.Fatalf("ShiftBusinessDays() unexpected error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].DueDate < got[i-1].DueDate {
			t.Fatalf("ShiftBusinessDays() output not sorted: %v", got)
		}
	}
}

func TestShiftBusinessDaysUnresolvable(t *testing.T) {
	// A Saturday due date with the whole following week blocked.
	cfg := ShiftConfig{
		BusinessDayMode: true,
		Country:         "None",
		CustomSkipDates: []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07"},
	}
	_, _, err := ShiftBusinessDays([]models.Installment{item("Klarna", 1, "2025-03-01")}, "UTC", cfg)
	var sErr *planerr.UnresolvableShiftError
	if !errors.As(err, &sErr) {
		t.Fatalf("ShiftBusinessDays() error = %v, want UnresolvableShiftError", err)
	}
}

func TestShiftBusinessDaysRejectsBadSkipDate(t *testing.T) {
	cfg := ShiftConfig{BusinessDayMode: true, CustomSkipDates: []string{"not-a-date"}}
	_, _, err := ShiftBusinessDays([]models.Installment{item("Klarna", 1, "2025-03-05")}, "UTC", cfg)
	var vErr *planerr.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("ShiftBusinessDays() error = %v, want ValidationError", err)
	}
}

func TestUSHolidaysObservedShifts(t *testing.T) {
	// July 4 2026 is a Saturday, observed Friday July 3.
	h := usHolidays(2026)
	if !h["2026-07-03"] {
		t.Fatal("usHolidays(2026) missing observed Independence Day on 2026-07-03")
	}
	// Thanksgiving 2025: fourth Thursday of November.
	h = usHolidays(2025)
	if !h["2025-11-27"] {
		t.Fatal("usHolidays(2025) missing Thanksgiving on 2025-11-27")
	}
	if !h["2025-05-26"] {
		t.Fatal("usHolidays(2025) missing Memorial Day on 2025-05-26")
	}
}
