// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"sort"
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

const alertWindowDays = 7

// BuildAlerts lists upcoming renewal dates and tenure milestones across all
// active subscriptions: renewals due within seven days, and subscribers
// whose 3-month or 7-month anniversary falls within a week either side of
// now. Milestones matter because they bracket the commitment cliff where
// retention outreach pays off.
func BuildAlerts(subs []models.Subscription, now time.Time) []models.RenewalAlert {
	var alerts []models.RenewalAlert
	for i := range subs {
		s := &subs[i]
		if !s.ActiveAt(now) || s.IdentityKey() == "" {
			continue
		}

		if renewal, ok := nextRenewal(s, now); ok {
			days := daysBetween(now, renewal)
			if days >= 0 && days <= alertWindowDays {
				alerts = append(alerts, alertRow(s, models.AlertRenewal, renewal, days))
			}
		}

		for _, m := range []struct {
			months int
			kind   models.AlertKind
		}{{3, models.AlertMilestone3M}, {7, models.AlertMilestone7M}} {
			milestone := s.CreatedAt.AddDate(0, m.months, 0)
			days := daysBetween(now, milestone)
			if days >= -alertWindowDays && days <= alertWindowDays {
				alerts = append(alerts, alertRow(s, m.kind, milestone, days))
			}
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		if !alerts[i].Date.Equal(alerts[j].Date) {
			return alerts[i].Date.Before(alerts[j].Date)
		}
		return alerts[i].PersonEmail < alerts[j].PersonEmail
	})
	return alerts
}

// nextRenewal steps the billing anniversary forward from the creation date
// to the first occurrence at or after now. Annual plans renew yearly,
// periodic plans monthly.
func nextRenewal(s *models.Subscription, now time.Time) (time.Time, bool) {
	if s.CreatedAt.IsZero() {
		return time.Time{}, false
	}
	next := s.CreatedAt
	for i := 0; next.Before(now); i++ {
		if i > 1200 {
			return time.Time{}, false
		}
		if s.Cadence == models.CadenceAnnual {
			next = next.AddDate(1, 0, 0)
		} else {
			next = next.AddDate(0, 1, 0)
		}
	}
	return next, true
}

func alertRow(s *models.Subscription, kind models.AlertKind, date time.Time, days int) models.RenewalAlert {
	return models.RenewalAlert{
		Kind:        kind,
		PersonEmail: s.IdentityKey(),
		PersonName:  s.PersonName,
		PlanName:    s.PlanName,
		Category:    s.Category,
		Date:        date,
		DaysAway:    days,
	}
}
