package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/installo/bnpl-planner/internal/models"
	"github.com/installo/bnpl-planner/internal/planerr"
)

// Normalize coerces raw installment records into the canonical form and
// sorts them ascending by due date. ISO dates compare correctly as
// strings, so the sort key is the date string itself. The input slice is
// never modified.
func Normalize(raw []models.RawInstallment, loc *time.Location) ([]models.Installment, error) {
	out := make([]models.Installment, 0, len(raw))
	for i, r := range raw {
		amount, err := coerceDecimal(r.Amount)
		if err != nil {
			return nil, &planerr.MalformedInstallmentError{Index: i, Field: "amount", Reason: err.Error()}
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, &planerr.MalformedInstallmentError{Index: i, Field: "amount", Reason: "must be positive"}
		}
		lateFee := decimal.Zero
		if len(r.LateFee) > 0 {
			lateFee, err = coerceDecimal(r.LateFee)
			if err != nil {
				return nil, &planerr.MalformedInstallmentError{Index: i, Field: "lateFee", Reason: err.Error()}
			}
			if lateFee.IsNegative() {
				return nil, &planerr.MalformedInstallmentError{Index: i, Field: "lateFee", Reason: "must not be negative"}
			}
		}
		if len(r.Currency) != 3 {
			return nil, &planerr.MalformedInstallmentError{Index: i, Field: "currency", Reason: "must be a 3-letter code"}
		}
		if r.InstallmentNumber < 1 {
			return nil, &planerr.MalformedInstallmentError{Index: i, Field: "installmentNumber", Reason: "must be >= 1"}
		}
		if _, err := parseDate("dueDate", r.DueDate, loc); err != nil {
			return nil, &planerr.MalformedInstallmentError{Index: i, Field: "dueDate", Reason: err.Error()}
		}
		out = append(out, models.Installment{
			Provider:          strings.TrimSpace(r.Provider),
			InstallmentNumber: r.InstallmentNumber,
			DueDate:           r.DueDate,
			Amount:            amount,
			Currency:          strings.ToUpper(r.Currency),
			Autopay:           r.Autopay,
			LateFee:           lateFee,
		})
	}
	sortByDueDate(out)
	return out, nil
}

// coerceDecimal accepts a JSON number or a quoted numeric string.
func coerceDecimal(raw []byte) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	return decimal.NewFromString(s)
}

// sortByDueDate sorts installments ascending by due date, breaking ties by
// provider and installment number so equal-date output stays stable across
// runs.
func sortByDueDate(items []models.Installment) {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].DueDate != items[b].DueDate {
			return items[a].DueDate < items[b].DueDate
		}
		if items[a].Provider != items[b].Provider {
			return items[a].Provider < items[b].Provider
		}
		return items[a].InstallmentNumber < items[b].InstallmentNumber
	})
}
