// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

// daysPerMonth converts between day spans and fractional months (365.25/12).
const daysPerMonth = 30.4375

// round2 rounds to 2 decimal places (currency).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place (percentages, month counts).
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ratePct returns part/whole as a percentage clamped to [0, 100], and 0 when
// the denominator is zero.
func ratePct(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	pct := part / whole * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// monthStart returns the first instant of t's calendar month, UTC.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday 00:00 UTC that starts t's ISO week.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// monthLabel formats a month bucket key, e.g. "2026-08".
func monthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// weekLabel formats a week bucket key by its Monday, e.g. "2026-08-24".
func weekLabel(t time.Time) string {
	return t.Format("2006-01-02")
}

// tenureMonths returns the span between two instants in fractional months.
func tenureMonths(from, to time.Time) float64 {
	if to.Before(from) {
		return 0
	}
	return to.Sub(from).Hours() / 24 / daysPerMonth
}

// daysBetween returns whole days from a to b, negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// byCategory filters subscriptions to one category.
func byCategory(subs []models.Subscription, category models.Category) []models.Subscription {
	var out []models.Subscription
	for i := range subs {
		if subs[i].Category == category {
			out = append(out, subs[i])
		}
	}
	return out
}

// firstInStudioSubscription returns, per identity, the earliest subscription
// start among in-studio categories. Shared by the cohort and pool engines.
func firstInStudioSubscription(subs []models.Subscription) map[string]time.Time {
	first := make(map[string]time.Time)
	for i := range subs {
		s := &subs[i]
		if !s.Category.InStudio() || s.CreatedAt.IsZero() {
			continue
		}
		key := s.IdentityKey()
		if key == "" {
			continue
		}
		if cur, ok := first[key]; !ok || s.CreatedAt.Before(cur) {
			first[key] = s.CreatedAt
		}
	}
	return first
}
