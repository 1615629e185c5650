package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/installo/bnpl-planner/internal/models"
)

// DetectRisks inspects the shifted installments against the payday
// schedule and flags timing and affordability hazards. Flags are
// informational: they never abort the plan. The result is sorted by date
// then type so identical input always yields identical output.
func DetectRisks(items []models.Installment, paydays []string, minBuffer decimal.Decimal, moved []models.MovedDate, loc *time.Location, now time.Time) []models.RiskFlag {
	flags := []models.RiskFlag{}
	flags = append(flags, collisionFlags(items)...)
	if f := cashCrunchFlag(items, paydays, minBuffer, loc, now); f != nil {
		flags = append(flags, *f)
	}
	flags = append(flags, weekendAutopayFlags(items, moved)...)

	sort.SliceStable(flags, func(a, b int) bool {
		if flags[a].Date != flags[b].Date {
			return flags[a].Date < flags[b].Date
		}
		return flags[a].Type < flags[b].Type
	})
	return flags
}

// collisionFlags reports every due date carrying two or more debits.
func collisionFlags(items []models.Installment) []models.RiskFlag {
	byDate := map[string][]models.Installment{}
	dates := []string{}
	for _, it := range items {
		if _, seen := byDate[it.DueDate]; !seen {
			dates = append(dates, it.DueDate)
		}
		byDate[it.DueDate] = append(byDate[it.DueDate], it)
	}
	sort.Strings(dates)

	var flags []models.RiskFlag
	for _, d := range dates {
		group := byDate[d]
		if len(group) < 2 {
			continue
		}
		refs := make([]string, 0, len(group))
		total := decimal.Zero
		for _, it := range group {
			refs = append(refs, it.Ref())
			total = total.Add(it.Amount)
		}
		flags = append(flags, models.RiskFlag{
			Type:     models.RiskCollision,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("%d payments totaling %s are all due on %s",
				len(group), total.StringFixed(2), d),
			AffectedInstallments: refs,
			Date:                 d,
		})
	}
	return flags
}

// cashCrunchFlag totals the obligations falling due before the next
// payday. When that total exceeds the minimum cash buffer the user set,
// the stretch between now and the paycheck is flagged.
func cashCrunchFlag(items []models.Installment, paydays []string, minBuffer decimal.Decimal, loc *time.Location, now time.Time) *models.RiskFlag {
	if len(paydays) == 0 {
		return nil
	}
	today := formatDate(dateOnly(now, loc))
	nextPayday := ""
	for _, p := range paydays {
		if p >= today {
			nextPayday = p
			break
		}
	}
	if nextPayday == "" {
		return nil
	}

	total := decimal.Zero
	var refs []string
	for _, it := range items {
		if it.DueDate >= today && it.DueDate < nextPayday {
			total = total.Add(it.Amount)
			refs = append(refs, it.Ref())
		}
	}
	if len(refs) == 0 || total.LessThanOrEqual(minBuffer) {
		return nil
	}
	return &models.RiskFlag{
		Type:     models.RiskCashCrunch,
		Severity: models.SeverityCritical,
		Message: fmt.Sprintf("%s due before your %s payday exceeds your %s buffer",
			total.StringFixed(2), nextPayday, minBuffer.StringFixed(2)),
		AffectedInstallments: refs,
		Date:                 nextPayday,
	}
}

// weekendAutopayFlags warns when an autopay charge was scheduled for a
// non-business day and got moved: the provider may still debit on the
// original date, or on the shifted one, and the user should confirm which.
func weekendAutopayFlags(items []models.Installment, moved []models.MovedDate) []models.RiskFlag {
	autopay := map[string]bool{}
	for _, it := range items {
		if it.Autopay {
			autopay[it.Ref()] = true
		}
	}

	var flags []models.RiskFlag
	for _, m := range moved {
		if !autopay[m.Installment] {
			continue
		}
		reason := strings.ReplaceAll(m.Reason, "_", " ")
		flags = append(flags, models.RiskFlag{
			Type:     models.RiskWeekendAutopay,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("autopay for %s was due %s (%s) and is now planned for %s; confirm the actual charge date with the provider",
				m.Installment, m.OriginalDate, reason, m.ShiftedDate),
			AffectedInstallments: []string{m.Installment},
			Date:                 m.ShiftedDate,
		})
	}
	return flags
}
