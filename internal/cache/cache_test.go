package cache

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/installo/bnpl-planner/internal/models"
)

func request(tz string) *models.PlanRequest {
	return &models.PlanRequest{
		Items: []models.RawInstallment{{
			Provider:          "Klarna",
			InstallmentNumber: 1,
			DueDate:           "2025-03-15",
			Amount:            []byte(`45`),
			Currency:          "USD",
		}},
		PayCadence: "weekly",
		NextPayday: "2025-03-07",
		MinBuffer:  decimal.NewFromInt(100),
		TimeZone:   tz,
	}
}

func TestKeyStableAndContentSensitive(t *testing.T) {
	a := Key(request("UTC"))
	b := Key(request("UTC"))
	if a != b {
		t.Fatalf("Key() not stable: %q vs %q", a, b)
	}
	if c := Key(request("America/New_York")); c == a {
		t.Fatal("Key() identical for different requests")
	}
}

func TestCacheHitWithinTTL(t *testing.T) {
	c := New(5 * time.Minute)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	key := Key(request("UTC"))
	resp := &models.PlanResponse{Summary: "cached"}

	c.Set(key, resp, now)
	got, ok := c.Get(key, now.Add(time.Minute))
	if !ok {
		t.Fatal("Get() missed within TTL")
	}
	if got.Summary != "cached" {
		t.Fatalf("Get() = %q, want %q", got.Summary, "cached")
	}
}

func TestCacheMissAfterTTL(t *testing.T) {
	c := New(5 * time.Minute)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	key := Key(request("UTC"))
	c.Set(key, &models.PlanResponse{}, now)

	if _, ok := c.Get(key, now.Add(6*time.Minute)); ok {
		t.Fatal("Get() hit after TTL expired")
	}
}

func TestCacheEvict(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	c.Set("a", &models.PlanResponse{}, now)
	c.Set("b", &models.PlanResponse{}, now.Add(5*time.Minute))

	if n := c.Evict(now.Add(2 * time.Minute)); n != 1 {
		t.Fatalf("Evict() removed %d entries, want 1", n)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d after eviction, want 1", c.Len())
	}
	if _, ok := c.Get("b", now.Add(5*time.Minute+time.Second)); !ok {
		t.Fatal("Evict() dropped an unexpired entry")
	}
}
