// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package analytics

import (
	"time"

	"github.com/studiopulse/studiopulse/internal/models"
)

// BuildCategoryTrends produces the weekly and monthly trend tables for one
// category. Returns nil when the category has no subscription events at all.
func BuildCategoryTrends(subs []models.Subscription, category models.Category, now time.Time, weeks, months int) *models.CategoryTrends {
	if len(byCategory(subs, category)) == 0 {
		return nil
	}
	return &models.CategoryTrends{
		Category: category,
		Weekly:   trendRows(WeekBuckets(subs, category, now, weeks), weekLabel),
		Monthly:  trendRows(MonthBuckets(subs, category, now, months), monthLabel),
	}
}

// trendRows converts buckets into reported rows with period-over-period
// deltas. Percentage deltas are nil when the prior period value is zero.
func trendRows(buckets []models.PeriodBucket, label func(time.Time) string) []models.TrendRow {
	rows := make([]models.TrendRow, 0, len(buckets))
	for i, b := range buckets {
		row := models.TrendRow{
			PeriodStart:  b.PeriodStart,
			Label:        label(b.PeriodStart),
			NewCount:     b.NewCount,
			ChurnCount:   b.ChurnCount,
			NetGrowth:    b.NewCount - b.ChurnCount,
			RevenueDelta: round2(b.NewMRR - b.ChurnedMRR),
		}
		if i > 0 {
			prev := buckets[i-1]
			row.NewDeltaAbs = b.NewCount - prev.NewCount
			row.NewDeltaPct = pctDelta(float64(b.NewCount), float64(prev.NewCount))
			row.ChurnDeltaAbs = b.ChurnCount - prev.ChurnCount
			row.ChurnDeltaPct = pctDelta(float64(b.ChurnCount), float64(prev.ChurnCount))
			prevDelta := prev.NewMRR - prev.ChurnedMRR
			curDelta := b.NewMRR - b.ChurnedMRR
			row.RevenueDeltaAbs = round2(curDelta - prevDelta)
			row.RevenueDeltaPct = pctDelta(curDelta, prevDelta)
		}
		rows = append(rows, row)
	}
	return rows
}

// pctDelta returns the period-over-period percentage change, or nil when no
// meaningful percentage exists (prior value zero).
func pctDelta(cur, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	v := round1((cur - prev) / prev * 100)
	return &v
}

// BuildSnapshots produces the current headcount/MRR/ARPU picture per
// category. Categories with no events are omitted; a category that had
// events but no longer has active subscribers still reports a zero row.
func BuildSnapshots(subs []models.Subscription, now time.Time) []models.CategorySnapshot {
	if len(subs) == 0 {
		return nil
	}

	var out []models.CategorySnapshot
	for _, category := range models.Categories {
		catSubs := byCategory(subs, category)
		if len(catSubs) == 0 {
			continue
		}

		emails := make(map[string]struct{})
		var mrr float64
		atRisk := 0
		for i := range catSubs {
			s := &catSubs[i]
			if s.State.AtRisk() {
				atRisk++
			}
			if !s.ActiveAt(now) {
				continue
			}
			mrr += s.MonthlyRate
			if key := s.IdentityKey(); key != "" {
				emails[key] = struct{}{}
			}
		}

		snap := models.CategorySnapshot{
			Category:  category,
			Headcount: len(emails),
			MRR:       round2(mrr),
			AtRisk:    atRisk,
		}
		if snap.Headcount > 0 {
			snap.ARPU = round2(mrr / float64(snap.Headcount))
		}
		out = append(out, snap)
	}
	return out
}
