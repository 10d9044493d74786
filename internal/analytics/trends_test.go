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

func TestTrendRowsDeltas(t *testing.T) {
	buckets := []models.PeriodBucket{
		{PeriodStart: ts(2026, time.June, 1), NewCount: 0, ChurnCount: 0},
		{PeriodStart: ts(2026, time.July, 1), NewCount: 4, ChurnCount: 1, NewMRR: 600, ChurnedMRR: 150},
		{PeriodStart: ts(2026, time.August, 1), NewCount: 6, ChurnCount: 1, NewMRR: 900, ChurnedMRR: 150},
	}

	rows := trendRows(buckets, monthLabel)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	july := rows[1]
	if july.NetGrowth != 3 {
		t.Errorf("net growth = %d, expected 3", july.NetGrowth)
	}
	if july.RevenueDelta != 450 {
		t.Errorf("revenue delta = %v, expected 450", july.RevenueDelta)
	}
	// Prior period had zero new subscriptions, so no percentage exists.
	if july.NewDeltaPct != nil {
		t.Errorf("new delta pct = %v, expected nil against a zero prior", *july.NewDeltaPct)
	}
	if july.NewDeltaAbs != 4 {
		t.Errorf("new delta abs = %d, expected 4", july.NewDeltaAbs)
	}

	august := rows[2]
	if august.NewDeltaPct == nil || *august.NewDeltaPct != 50.0 {
		t.Errorf("new delta pct = %v, expected 50.0", august.NewDeltaPct)
	}
	if august.RevenueDeltaAbs != 300 {
		t.Errorf("revenue delta abs = %v, expected 300", august.RevenueDeltaAbs)
	}
}

func TestBuildSnapshotsDedupsHeadcount(t *testing.T) {
	now := ts(2026, time.August, 15)
	subs := []models.Subscription{
		member("two.plans@x.com", 100, ts(2026, time.January, 1)),
		member("two.plans@x.com", 150, ts(2026, time.February, 1)),
		member("single@x.com", 150, ts(2026, time.March, 1)),
		canceled(member("gone@x.com", 200, ts(2026, time.January, 1)), ts(2026, time.May, 1)),
	}

	snaps := BuildSnapshots(subs, now)
	if len(snaps) != 1 {
		t.Fatalf("expected 1 category snapshot, got %d", len(snaps))
	}

	s := snaps[0]
	if s.Category != models.CategoryMember {
		t.Fatalf("category = %s, expected MEMBER", s.Category)
	}
	// Two people, three active plans: headcount dedups, MRR does not.
	if s.Headcount != 2 {
		t.Errorf("headcount = %d, expected 2", s.Headcount)
	}
	if s.MRR != 400 {
		t.Errorf("MRR = %v, expected 400", s.MRR)
	}
	if s.ARPU != 200 {
		t.Errorf("ARPU = %v, expected 200", s.ARPU)
	}
}

func TestBuildCategoryTrendsNilForEmptyCategory(t *testing.T) {
	subs := []models.Subscription{member("a@x.com", 100, ts(2026, time.January, 1))}
	if trends := BuildCategoryTrends(subs, models.CategoryTVEquivalent, ts(2026, time.August, 1), 4, 3); trends != nil {
		t.Error("expected nil trends for a category with no events")
	}
}

func TestBuildPacingExtrapolates(t *testing.T) {
	now := ts(2026, time.August, 10)
	subs := []models.Subscription{
		member("new@x.com", 100, ts(2026, time.August, 3)),
		canceled(member("gone@x.com", 150, ts(2026, time.January, 1)), ts(2026, time.August, 5)),
	}

	block := BuildPacing(subs, models.CategoryMember, now)
	if block == nil {
		t.Fatal("expected a pacing block")
	}
	if block.DaysElapsed != 10 || block.DaysInMonth != 31 {
		t.Fatalf("days = %d/%d, expected 10/31", block.DaysElapsed, block.DaysInMonth)
	}
	if block.ActualNew != 1 || block.ActualChurned != 1 {
		t.Errorf("actuals = %d new, %d churned, expected 1 and 1", block.ActualNew, block.ActualChurned)
	}
	if block.ActualNewMRR != 100 {
		t.Errorf("actual new MRR = %v, expected 100", block.ActualNewMRR)
	}
	if block.PacedNewMRR != 310 {
		t.Errorf("paced new MRR = %v, expected 310", block.PacedNewMRR)
	}
	if block.PacedNew != 3.1 {
		t.Errorf("paced new = %v, expected 3.1", block.PacedNew)
	}
}

func TestBuildAlerts(t *testing.T) {
	now := ts(2026, time.August, 30)

	renewing := member("renew@x.com", 150, ts(2026, time.June, 2))
	milestone7 := member("veteran@x.com", 150, ts(2026, time.January, 25))
	annual := member("annual@x.com", 200, ts(2025, time.September, 3))
	annual.Cadence = models.CadenceAnnual
	farOff := member("quiet@x.com", 150, ts(2026, time.August, 20))

	alerts := BuildAlerts([]models.Subscription{renewing, milestone7, annual, farOff}, now)

	kinds := make(map[string][]models.AlertKind)
	for _, a := range alerts {
		kinds[a.PersonEmail] = append(kinds[a.PersonEmail], a.Kind)
	}

	// Sep 2 is both the monthly renewal and the 3-month anniversary.
	if got := kinds["renew@x.com"]; len(got) != 2 {
		t.Errorf("renew@x.com alerts = %v, expected renewal plus 3-month milestone", got)
	}
	if got := kinds["veteran@x.com"]; len(got) != 1 || got[0] != models.AlertMilestone7M {
		t.Errorf("veteran@x.com alerts = %v, expected one 7-month milestone", got)
	}
	if got := kinds["annual@x.com"]; len(got) != 1 || got[0] != models.AlertRenewal {
		t.Errorf("annual@x.com alerts = %v, expected one annual renewal", got)
	}
	if _, ok := kinds["quiet@x.com"]; ok {
		t.Error("quiet@x.com has no dates within the window, expected no alerts")
	}

	for i := 1; i < len(alerts); i++ {
		if alerts[i].Date.Before(alerts[i-1].Date) {
			t.Fatal("alerts must be sorted by date")
		}
	}
}
