package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/installo/bnpl-planner/internal/models"
)

// actionWindowDays is the lookahead for "due soon" items.
const actionWindowDays = 7

// ActionsThisWeek selects the installments due within the next seven days
// of now (inclusive on both ends, evaluated in loc) and orders them most
// costly-to-miss first: highest late fee, then smallest amount, the idea
// being that a cheap payment with a steep penalty is the thing to clear
// first.
func ActionsThisWeek(items []models.Installment, loc *time.Location, now time.Time) []models.Installment {
	today := formatDate(dateOnly(now, loc))
	horizon := formatDate(addDays(dateOnly(now, loc), actionWindowDays))

	actions := []models.Installment{}
	for _, it := range items {
		if it.DueDate >= today && it.DueDate <= horizon {
			actions = append(actions, it)
		}
	}
	sort.SliceStable(actions, func(a, b int) bool {
		if !actions[a].LateFee.Equal(actions[b].LateFee) {
			return actions[a].LateFee.GreaterThan(actions[b].LateFee)
		}
		if !actions[a].Amount.Equal(actions[b].Amount) {
			return actions[a].Amount.LessThan(actions[b].Amount)
		}
		return actions[a].DueDate < actions[b].DueDate
	})
	return actions
}

// FormatRiskFlags renders risk flags as single user-facing lines.
func FormatRiskFlags(flags []models.RiskFlag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, fmt.Sprintf("[%s] %s: %s", strings.ToUpper(f.Severity), f.Type, f.Message))
	}
	return out
}

// GenerateSummary composes a short plain-language digest of the plan.
// Everything is derived from the arguments, so a fixed input always
// produces the same text.
func GenerateSummary(items, actions []models.Installment, flags []models.RiskFlag, paydays []string, moved []models.MovedDate) string {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	weekTotal := decimal.Zero
	for _, it := range actions {
		weekTotal = weekTotal.Add(it.Amount)
	}

	autopayCount := 0
	for _, it := range items {
		if it.Autopay {
			autopayCount++
		}
	}

	lines := []string{
		fmt.Sprintf("You have %s across %s.", money(total), plural(len(items), "installment")),
	}
	if len(items) > 0 {
		lines = append(lines, fmt.Sprintf("The schedule runs through %s.", items[len(items)-1].DueDate))
	}
	lines = append(lines, fmt.Sprintf("%d on autopay, %d need manual payment.", autopayCount, len(items)-autopayCount))
	if len(paydays) > 0 {
		lines = append(lines, fmt.Sprintf("Next payday: %s.", paydays[0]))
	}
	if len(actions) > 0 {
		lines = append(lines, fmt.Sprintf("Due in the next 7 days: %s totaling %s.",
			plural(len(actions), "payment"), money(weekTotal)))
		top := actions[0]
		lines = append(lines, fmt.Sprintf("Handle %s first: %s due %s, %s late fee.",
			top.Ref(), money(top.Amount), top.DueDate, money(top.LateFee)))
	} else {
		lines = append(lines, "Nothing is due in the next 7 days.")
	}
	if len(moved) > 0 {
		lines = append(lines, fmt.Sprintf("%s moved to the next business day.", plural(len(moved), "due date")))
	}
	if len(flags) > 0 {
		lines = append(lines, fmt.Sprintf("%s: %s.", plural(len(flags), "risk flag"), riskBreakdown(flags)))
	} else {
		lines = append(lines, "No payment risks detected.")
	}
	return strings.Join(lines, "\n")
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func riskBreakdown(flags []models.RiskFlag) string {
	counts := map[string]int{}
	for _, f := range flags {
		counts[f.Type]++
	}
	parts := []string{}
	for _, t := range []string{models.RiskCollision, models.RiskCashCrunch, models.RiskWeekendAutopay} {
		if counts[t] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[t], strings.ToLower(strings.ReplaceAll(t, "_", " "))))
		}
	}
	return strings.Join(parts, ", ")
}
