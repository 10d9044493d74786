// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

// bucketKeyFunc maps an event instant onto its bucket's start.
type bucketKeyFunc func(time.Time) time.Time

// buildBuckets accumulates subscription movement into period buckets keyed
// by keyFn, returning a bucket per period start covering [from, to] even
// when a period saw no movement (flat weeks still appear in trend charts).
func buildBuckets(subs []models.Subscription, from, to time.Time, keyFn bucketKeyFunc, step func(time.Time) time.Time) []models.PeriodBucket {
	byStart := make(map[time.Time]*models.PeriodBucket)
	for cur := keyFn(from); !cur.After(to); cur = step(cur) {
		byStart[cur] = &models.PeriodBucket{PeriodStart: cur}
	}

	for i := range subs {
		s := &subs[i]
		if !s.CreatedAt.IsZero() && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			if b, ok := byStart[keyFn(s.CreatedAt)]; ok {
				b.NewCount++
				b.NewMRR += s.MonthlyRate
			}
		}
		if s.CanceledAt != nil && !s.CanceledAt.Before(from) && s.CanceledAt.Before(to) {
			if b, ok := byStart[keyFn(*s.CanceledAt)]; ok {
				b.ChurnCount++
				b.ChurnedMRR += s.MonthlyRate
			}
		}
	}

	out := make([]models.PeriodBucket, 0, len(byStart))
	for cur := keyFn(from); !cur.After(to); cur = step(cur) {
		out = append(out, *byStart[cur])
	}
	return out
}

// WeekBuckets groups subscription movement for one category into trailing
// week buckets, oldest first, including the current partial week.
func WeekBuckets(subs []models.Subscription, category models.Category, now time.Time, weeks int) []models.PeriodBucket {
	latest := weekStart(now)
	from := latest.AddDate(0, 0, -7*(weeks-1))
	return buildBuckets(byCategory(subs, category), from, now,
		weekStart, func(t time.Time) time.Time { return t.AddDate(0, 0, 7) })
}

// MonthBuckets groups subscription movement for one category into trailing
// month buckets, oldest first, including the current partial month.
func MonthBuckets(subs []models.Subscription, category models.Category, now time.Time, months int) []models.PeriodBucket {
	latest := monthStart(now)
	from := latest.AddDate(0, -(months - 1), 0)
	return buildBuckets(byCategory(subs, category), from, now,
		monthStart, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) })
}
