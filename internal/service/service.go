package service

import (
	"encoding/base64"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/installo/bnpl-planner/internal/cache"
	"github.com/installo/bnpl-planner/internal/models"
	"github.com/installo/bnpl-planner/internal/planner"
)

// Mailer delivers a finished plan. Satisfied by delivery/email.Sender.
type Mailer interface {
	SendPlan(to, summary string, icsDoc []byte) error
}

// Service orchestrates the planning pipeline: idempotency lookup, core
// invocation, optional email delivery.
type Service struct {
	cache  *cache.Cache
	mailer Mailer
	log    *logrus.Logger
	now    func() time.Time
}

// NewService initializes a new service. mailer may be nil when SMTP is
// not configured.
func NewService(c *cache.Cache, mailer Mailer, log *logrus.Logger) *Service {
	return &Service{cache: c, mailer: mailer, log: log, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// GeneratePlan produces the payment plan for one request. Identical
// requests within the cache TTL return the cached response without
// re-running the pipeline.
func (s *Service) GeneratePlan(req *models.PlanRequest) (*models.PlanResponse, error) {
	now := s.now()
	key := cache.Key(req)
	if resp, ok := s.cache.Get(key, now); ok {
		s.log.WithField("key", key[:12]).Debug("idempotency cache hit")
		return resp, nil
	}

	resp, err := planner.GeneratePlan(req, now)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, resp, now)
	s.log.WithFields(logrus.Fields{
		"installments": len(resp.Normalized),
		"moved":        len(resp.MovedDates),
		"risks":        len(resp.RiskFlags),
	}).Info("plan generated")

	if req.EmailTo != "" && s.mailer != nil {
		// Delivery is best effort: a dead SMTP relay must not fail the plan.
		doc, decErr := base64.StdEncoding.DecodeString(resp.ICS)
		if decErr == nil {
			if mailErr := s.mailer.SendPlan(req.EmailTo, resp.Summary, doc); mailErr != nil {
				s.log.Warnf("plan email delivery failed: %v", mailErr)
			}
		}
	}

	return resp, nil
}
