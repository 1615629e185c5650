// Package planner implements the payment-plan pipeline: installment
// normalization, payday derivation, business-day shifting, risk
// detection, weekly action prioritization and calendar generation. Every
// stage is a pure function; the pipeline holds no state between calls and
// never mutates its inputs, so callers may run it concurrently across
// requests without coordination.
package planner

import (
	"time"

	"github.com/installo/bnpl-planner/internal/ics"
	"github.com/installo/bnpl-planner/internal/models"
)

// GeneratePlan runs the full pipeline for one request. now is the only
// ambient input and must be injected by the caller: the core never reads
// the system clock, which keeps output byte-identical for a fixed request
// and instant.
func GeneratePlan(req *models.PlanRequest, now time.Time) (*models.PlanResponse, error) {
	loc, err := loadLocation(req.TimeZone)
	if err != nil {
		return nil, err
	}

	normalized, err := Normalize(req.Items, loc)
	if err != nil {
		return nil, err
	}

	paydays, err := CalculatePaydays(req.PaycheckDates, req.PayCadence, req.NextPayday, req.TimeZone)
	if err != nil {
		return nil, err
	}

	shifted, moved, err := ShiftBusinessDays(normalized, req.TimeZone, ShiftConfig{
		BusinessDayMode: req.BusinessDayMode,
		Country:         req.Country,
		CustomSkipDates: req.CustomSkipDates,
	})
	if err != nil {
		return nil, err
	}

	flags := DetectRisks(shifted, paydays, req.MinBuffer, moved, loc, now)
	actions := ActionsThisWeek(shifted, loc, now)
	summary := GenerateSummary(shifted, actions, flags, paydays, moved)

	doc, err := ics.Generate(shifted, req.TimeZone, now)
	if err != nil {
		return nil, err
	}
	xcal, err := ics.GenerateXCal(shifted, req.TimeZone, now)
	if err != nil {
		return nil, err
	}

	return &models.PlanResponse{
		Summary:         summary,
		ActionsThisWeek: actions,
		RiskFlags:       FormatRiskFlags(flags),
		ICS:             ics.EncodeBase64(doc),
		XCal:            xcal,
		Normalized:      shifted,
		MovedDates:      moved,
		Paydays:         paydays,
	}, nil
}
