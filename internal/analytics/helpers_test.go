// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"testing"
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

func ts(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// member builds an active periodic MEMBER subscription.
func member(email string, rate float64, created time.Time) models.Subscription {
	return models.Subscription{
		PlanName:    "Unlimited Membership",
		Category:    models.CategoryMember,
		Cadence:     models.CadencePeriodic,
		MonthlyRate: rate,
		State:       models.StateActive,
		PersonEmail: email,
		CreatedAt:   created,
	}
}

// canceled marks a copy of s as canceled at the given instant.
func canceled(s models.Subscription, at time.Time) models.Subscription {
	s.State = models.StateCanceled
	s.CanceledAt = &at
	return s
}

func TestWeekStartIsMondayUTC(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"Monday maps to itself", ts(2026, time.June, 1), ts(2026, time.June, 1)},
		{"Wednesday maps back", ts(2026, time.June, 3), ts(2026, time.June, 1)},
		{"Sunday maps back six days", ts(2026, time.June, 7), ts(2026, time.June, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("weekStart(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRatePctClampsAndZeroDenominator(t *testing.T) {
	if got := ratePct(1, 0); got != 0 {
		t.Errorf("ratePct(1, 0) = %v, expected 0", got)
	}
	if got := ratePct(3, 2); got != 100 {
		t.Errorf("ratePct(3, 2) = %v, expected clamp to 100", got)
	}
	if got := ratePct(1, 4); got != 25 {
		t.Errorf("ratePct(1, 4) = %v, expected 25", got)
	}
}

func TestRounding(t *testing.T) {
	if got := round2(208.3333); got != 208.33 {
		t.Errorf("round2 = %v, expected 208.33", got)
	}
	if got := round1(49.95); got != 50.0 {
		t.Errorf("round1 = %v, expected 50.0", got)
	}
}
