package service

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/installo/bnpl-planner/internal/cache"
	"github.com/installo/bnpl-planner/internal/models"
)

type fakeMailer struct {
	calls []string
	err   error
}

func (f *fakeMailer) SendPlan(to, summary string, icsDoc []byte) error {
	f.calls = append(f.calls, to)
	return f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func request() *models.PlanRequest {
	return &models.PlanRequest{
		Items: []models.RawInstallment{{
			Provider:          "Klarna",
			InstallmentNumber: 1,
			DueDate:           "2025-03-12",
			Amount:            json.RawMessage(`45`),
			Currency:          "USD",
		}},
		PayCadence: "weekly",
		NextPayday: "2025-03-07",
		MinBuffer:  decimal.NewFromInt(100),
		TimeZone:   "UTC",
	}
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
}

func TestGeneratePlanCachesBySemanticKey(t *testing.T) {
	svc := NewService(cache.New(time.Minute), nil, quietLogger()).WithNow(fixedNow)

	first, err := svc.GeneratePlan(request())
	if err != nil {
		t.Fatalf("GeneratePlan() unexpected error: %v", err)
	}
	second, err := svc.GeneratePlan(request())
	if err != nil {
		t.Fatalf("GeneratePlan() unexpected error on repeat: %v", err)
	}
	if first != second {
		t.Fatal("repeated identical request did not return the cached response")
	}

	other := request()
	other.MinBuffer = decimal.NewFromInt(10)
	third, err := svc.GeneratePlan(other)
	if err != nil {
		t.Fatalf("GeneratePlan() unexpected error for changed request: %v", err)
	}
	if third == first {
		t.Fatal("a different request returned the cached response")
	}
}

func TestGeneratePlanSendsEmailWhenRequested(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(cache.New(time.Minute), mailer, quietLogger()).WithNow(fixedNow)

	req := request()
	req.EmailTo = "user@example.com"
	if _, err := svc.GeneratePlan(req); err != nil {
		t.Fatalf("GeneratePlan() unexpected error: %v", err)
	}
	if len(mailer.calls) != 1 || mailer.calls[0] != "user@example.com" {
		t.Fatalf("mailer calls = %v, want one to user@example.com", mailer.calls)
	}
}

func TestGeneratePlanSurvivesMailerFailure(t *testing.T) {
	mailer := &fakeMailer{err: io.ErrClosedPipe}
	svc := NewService(cache.New(time.Minute), mailer, quietLogger()).WithNow(fixedNow)

	req := request()
	req.EmailTo = "user@example.com"
	resp, err := svc.GeneratePlan(req)
	if err != nil {
		t.Fatalf("GeneratePlan() failed because of the mailer: %v", err)
	}
	if resp == nil || resp.ICS == "" {
		t.Fatal("GeneratePlan() returned no plan despite mailer failure being best effort")
	}
}

func TestGeneratePlanNoEmailWithoutRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(cache.New(time.Minute), mailer, quietLogger()).WithNow(fixedNow)

	if _, err := svc.GeneratePlan(request()); err != nil {
		t.Fatalf("GeneratePlan() unexpected error: %v", err)
	}
	if len(mailer.calls) != 0 {
		t.Fatalf("mailer calls = %v, want none without emailTo", mailer.calls)
	}
}
