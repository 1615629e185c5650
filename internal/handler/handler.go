package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/installo/bnpl-planner/internal/models"
	"github.com/installo/bnpl-planner/internal/planerr"
	"github.com/installo/bnpl-planner/internal/problem"
	"github.com/installo/bnpl-planner/internal/service"
)

const (
	maxItems     = 100
	maxSkipDates = 100
	maxBodyBytes = 1 << 20
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// GeneratePlan handles POST /v1/plan
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req models.PlanRequest
	if err := dec.Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if detail := validateBounds(&req); detail != "" {
		problem.Write(w, r, http.StatusBadRequest, "Invalid Request", detail)
		return
	}

	resp, err := h.svc.GeneratePlan(&req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Healthz handles GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// validateBounds enforces the outer request bounds. Semantic validation
// (dates, cadence, timezone) belongs to the planner.
func validateBounds(req *models.PlanRequest) string {
	switch {
	case len(req.Items) == 0:
		return "items must contain at least 1 installment"
	case len(req.Items) > maxItems:
		return "items must contain at most 100 installments"
	case len(req.CustomSkipDates) > maxSkipDates:
		return "customSkipDates must contain at most 100 dates"
	case req.TimeZone == "":
		return "timeZone is required"
	case req.MinBuffer.IsNegative():
		return "minBuffer must be >= 0"
	case req.Country != "" && req.Country != "US" && req.Country != "None":
		return `country must be "US" or "None"`
	}
	return ""
}

// writeError maps pipeline errors onto problem responses. The typed
// planner errors are caller-correctable and carry client-safe messages;
// anything else is logged and returned as an opaque 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr  *planerr.ValidationError
		mErr  *planerr.MalformedInstallmentError
		sErr  *planerr.UnresolvableShiftError
		tzErr *planerr.InvalidTimezoneError
	)
	switch {
	case errors.As(err, &vErr):
		problem.Write(w, r, http.StatusBadRequest, "Validation Failed", vErr.Error())
	case errors.As(err, &mErr):
		problem.Write(w, r, http.StatusBadRequest, "Malformed Installment", mErr.Error())
	case errors.As(err, &sErr):
		problem.Write(w, r, http.StatusBadRequest, "Unresolvable Business-Day Shift", sErr.Error())
	case errors.As(err, &tzErr):
		problem.Write(w, r, http.StatusBadRequest, "Invalid Timezone", tzErr.Error())
	default:
		h.log.Errorf("plan generation failed: %v", err)
		problem.Write(w, r, http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred")
	}
}
