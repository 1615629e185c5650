package models

import "github.com/shopspring/decimal"

// Pay cadences accepted by the payday calculator.
const (
	CadenceWeekly      = "weekly"
	CadenceBiweekly    = "biweekly"
	CadenceSemimonthly = "semimonthly"
	CadenceMonthly     = "monthly"
)

// Risk flag types.
const (
	RiskCollision      = "COLLISION"
	RiskCashCrunch     = "CASH_CRUNCH"
	RiskWeekendAutopay = "WEEKEND_AUTOPAY"
)

// Risk severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// RiskFlag is one timing or affordability hazard detected for the plan.
type RiskFlag struct {
	Type                 string   `json:"type"`
	Severity             string   `json:"severity"`
	Message              string   `json:"message"`
	AffectedInstallments []string `json:"affectedInstallments"`
	Date                 string   `json:"date"`
}

// PlanRequest is the payment-plan request body. The handler enforces the
// outer bounds (1..100 items and so on); the planner enforces semantic
// validity of dates, cadence and timezone.
type PlanRequest struct {
	Items           []RawInstallment `json:"items"`
	PaycheckDates   []string         `json:"paycheckDates,omitempty"`
	PayCadence      string           `json:"payCadence,omitempty"`
	NextPayday      string           `json:"nextPayday,omitempty"`
	MinBuffer       decimal.Decimal  `json:"minBuffer"`
	TimeZone        string           `json:"timeZone"`
	BusinessDayMode bool             `json:"businessDayMode,omitempty"`
	Country         string           `json:"country,omitempty"`
	CustomSkipDates []string         `json:"customSkipDates,omitempty"`
	EmailTo         string           `json:"emailTo,omitempty"`
}

// PlanResponse is the full plan produced for one request.
type PlanResponse struct {
	Summary         string        `json:"summary"`
	ActionsThisWeek []Installment `json:"actionsThisWeek"`
	RiskFlags       []string      `json:"riskFlags"`
	ICS             string        `json:"ics"`
	XCal            string        `json:"xcal"`
	Normalized      []Installment `json:"normalized"`
	MovedDates      []MovedDate   `json:"movedDates"`
	Paydays         []string      `json:"paydays"`
}
