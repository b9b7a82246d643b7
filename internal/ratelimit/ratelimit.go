// Package ratelimit caps public inquiry submissions per IP over a trailing
// window. The count is derived from stored inquiries on every attempt, so
// the window slides and self-corrects without any reset job.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/adscalemedia/adsite-backend/internal/models"
)

// Defaults applied when no runtime override is configured.
const (
	DefaultMaxSubmissions = 5
	DefaultWindowDays     = 7
)

// InquiryCounter is the slice of storage the limiter needs.
type InquiryCounter interface {
	GetInquiriesByIPSince(ctx context.Context, ip string, since time.Time) ([]models.Inquiry, error)
}

// Policy holds the active limit parameters.
type Policy struct {
	MaxSubmissions int
	WindowDays     int
}

// DefaultPolicy returns the built-in limit parameters.
func DefaultPolicy() Policy {
	return Policy{MaxSubmissions: DefaultMaxSubmissions, WindowDays: DefaultWindowDays}
}

// Message is the client-facing explanation for a blocked submission.
func (p Policy) Message() string {
	return fmt.Sprintf("You have reached the limit of %d inquiries per %d days. Please try again later.",
		p.MaxSubmissions, p.WindowDays)
}

// Limiter evaluates the submission policy against stored inquiries.
type Limiter struct {
	counter InquiryCounter
	policy  func() Policy
}

// New constructs a Limiter. policy is consulted on every attempt so runtime
// settings changes take effect without a restart; nil means defaults.
func New(counter InquiryCounter, policy func() Policy) *Limiter {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Limiter{counter: counter, policy: policy}
}

// Allow reports whether ip may submit another inquiry right now. A prior
// submission exactly one window old still counts (inclusive boundary).
func (l *Limiter) Allow(ctx context.Context, ip string) (bool, Policy, error) {
	policy := l.policy()
	since := time.Now().UTC().AddDate(0, 0, -policy.WindowDays)

	recent, err := l.counter.GetInquiriesByIPSince(ctx, ip, since)
	if err != nil {
		return false, policy, err
	}
	return len(recent) < policy.MaxSubmissions, policy, nil
}
