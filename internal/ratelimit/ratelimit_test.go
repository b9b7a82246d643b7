package ratelimit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/adscalemedia/adsite-backend/internal/models"
)

// stubCounter returns canned inquiries and records the query it received.
type stubCounter struct {
	rows     []models.Inquiry
	err      error
	gotIP    string
	gotSince time.Time
}

func (s *stubCounter) GetInquiriesByIPSince(_ context.Context, ip string, since time.Time) ([]models.Inquiry, error) {
	s.gotIP = ip
	s.gotSince = since
	return s.rows, s.err
}

func inquiries(n int) []models.Inquiry {
	rows := make([]models.Inquiry, n)
	return rows
}

func TestAllowUnderLimit(t *testing.T) {
	t.Parallel()

	counter := &stubCounter{rows: inquiries(4)}
	limiter := New(counter, nil)

	allowed, policy, err := limiter.Allow(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !allowed {
		t.Fatal("expected 5th submission to be allowed with 4 prior")
	}
	if policy.MaxSubmissions != DefaultMaxSubmissions || policy.WindowDays != DefaultWindowDays {
		t.Fatalf("unexpected policy %+v", policy)
	}
	if counter.gotIP != "203.0.113.7" {
		t.Fatalf("limiter queried ip %q", counter.gotIP)
	}
}

func TestBlockAtLimit(t *testing.T) {
	t.Parallel()

	limiter := New(&stubCounter{rows: inquiries(5)}, nil)

	allowed, _, err := limiter.Allow(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatal("expected 6th submission to be blocked with 5 prior")
	}
}

func TestWindowStartUsesPolicyDays(t *testing.T) {
	t.Parallel()

	counter := &stubCounter{}
	limiter := New(counter, func() Policy { return Policy{MaxSubmissions: 2, WindowDays: 3} })

	before := time.Now().UTC().AddDate(0, 0, -3)
	if _, _, err := limiter.Allow(context.Background(), "203.0.113.7"); err != nil {
		t.Fatalf("allow: %v", err)
	}
	after := time.Now().UTC().AddDate(0, 0, -3)

	if counter.gotSince.Before(before) || counter.gotSince.After(after) {
		t.Fatalf("window start %v outside expected range [%v, %v]", counter.gotSince, before, after)
	}
}

func TestRuntimePolicyOverride(t *testing.T) {
	t.Parallel()

	limiter := New(&stubCounter{rows: inquiries(2)}, func() Policy {
		return Policy{MaxSubmissions: 2, WindowDays: 1}
	})

	allowed, policy, err := limiter.Allow(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatal("expected block with override limit 2 and 2 prior")
	}
	if !strings.Contains(policy.Message(), "2 inquiries per 1 days") {
		t.Fatalf("unexpected message %q", policy.Message())
	}
}
