package models

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// RawInstallment is one installment record as received from the client.
// Amount and LateFee are kept raw because providers emit them either as
// JSON numbers or as numeric strings; the planner coerces them.
type RawInstallment struct {
	Provider          string          `json:"provider"`
	InstallmentNumber int             `json:"installmentNumber"`
	DueDate           string          `json:"dueDate"`
	Amount            json.RawMessage `json:"amount"`
	Currency          string          `json:"currency"`
	Autopay           bool            `json:"autopay"`
	LateFee           json.RawMessage `json:"lateFee,omitempty"`
}

// Installment is a normalized contractual payment. DueDate is an ISO
// YYYY-MM-DD date interpreted in the request timezone. After business-day
// shifting DueDate may differ from the date the provider quoted; the
// original value is retained in a MovedDate record.
type Installment struct {
	Provider          string          `json:"provider"`
	InstallmentNumber int             `json:"installmentNumber"`
	DueDate           string          `json:"dueDate"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Autopay           bool            `json:"autopay"`
	LateFee           decimal.Decimal `json:"lateFee"`
}

// Ref returns a short stable identifier for the installment, used when
// risk flags and moved-date records need to point back at it.
func (i Installment) Ref() string {
	return i.Provider + " #" + strconv.Itoa(i.InstallmentNumber)
}

// MovedDate records a due date relocated by the business-day shifter.
type MovedDate struct {
	Installment  string `json:"installment"`
	OriginalDate string `json:"originalDate"`
	ShiftedDate  string `json:"shiftedDate"`
	Reason       string `json:"reason"`
}

// Reasons recorded on a MovedDate.
const (
	MoveReasonWeekend    = "weekend"
	MoveReasonHoliday    = "holiday"
	MoveReasonCustomSkip = "custom_skip"
)
