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

func TestSurvivalCurveMonotonic(t *testing.T) {
	now := ts(2026, time.January, 1)
	subs := []models.Subscription{
		member("alive1@x.com", 100, ts(2025, time.January, 1)),
		member("alive2@x.com", 100, ts(2025, time.January, 1)),
		canceled(member("gone1@x.com", 100, ts(2025, time.January, 1)), ts(2025, time.March, 1)),
		canceled(member("gone2@x.com", 100, ts(2025, time.January, 1)), ts(2025, time.March, 1)),
	}

	summary := BuildTenureSummary(subs, models.CategoryMember, now, 24)
	if summary == nil {
		t.Fatal("expected a summary")
	}
	if summary.SampleSize != 4 {
		t.Fatalf("sample size = %d, expected 4", summary.SampleSize)
	}
	if len(summary.Curve) != 24 {
		t.Fatalf("curve length = %d, expected 24", len(summary.Curve))
	}

	for i := 1; i < len(summary.Curve); i++ {
		if summary.Curve[i].RetainedPct > summary.Curve[i-1].RetainedPct {
			t.Fatalf("curve not monotonic at month %d: %v > %v",
				summary.Curve[i].Month, summary.Curve[i].RetainedPct, summary.Curve[i-1].RetainedPct)
		}
	}

	if summary.Curve[0].RetainedPct != 100.0 {
		t.Errorf("month 1 retained = %v, expected 100.0", summary.Curve[0].RetainedPct)
	}
	// Both churners left before the month-3 mark: survival 4/4 * 3/4 * 2/3.
	if summary.Curve[2].RetainedPct != 50.0 {
		t.Errorf("month 3 retained = %v, expected 50.0", summary.Curve[2].RetainedPct)
	}
}

func TestSurvivalCensoredSubscribersDoNotChurn(t *testing.T) {
	now := ts(2026, time.January, 1)
	// Everyone still active; the curve must hold at 100 across the horizon
	// even though the risk set shrinks as short tenures fall away.
	subs := []models.Subscription{
		member("a@x.com", 100, ts(2025, time.November, 1)),
		member("b@x.com", 100, ts(2025, time.January, 1)),
	}

	summary := BuildTenureSummary(subs, models.CategoryMember, now, 12)
	for _, p := range summary.Curve {
		if p.RetainedPct != 100.0 {
			t.Fatalf("month %d retained = %v, expected 100.0 with only censored observations",
				p.Month, p.RetainedPct)
		}
	}
}

func TestSurvivalMedianFallsBackToSampleMedian(t *testing.T) {
	now := ts(2026, time.January, 1)
	// Survival bottoms out at exactly 50%, never dropping below it, so the
	// median must come from the raw sample instead of the curve.
	subs := []models.Subscription{
		member("alive1@x.com", 100, ts(2025, time.January, 1)),
		member("alive2@x.com", 100, ts(2025, time.January, 1)),
		canceled(member("gone1@x.com", 100, ts(2025, time.January, 1)), ts(2025, time.March, 1)),
		canceled(member("gone2@x.com", 100, ts(2025, time.January, 1)), ts(2025, time.March, 1)),
	}

	summary := BuildTenureSummary(subs, models.CategoryMember, now, 24)
	if summary.MedianTenureMonths <= 0 {
		t.Fatalf("median tenure = %v, expected positive fallback", summary.MedianTenureMonths)
	}

	// Tenures are roughly 2, 2, 12, 12 months; the sample median sits near 7.
	if summary.MedianTenureMonths < 6 || summary.MedianTenureMonths > 8 {
		t.Errorf("median tenure = %v, expected sample median near 7", summary.MedianTenureMonths)
	}
}

func TestSurvivalCommitmentCliff(t *testing.T) {
	now := ts(2026, time.January, 1)
	subs := []models.Subscription{
		// Reached month 3 but not month 4.
		canceled(member("cliff@x.com", 100, ts(2025, time.June, 1)), ts(2025, time.September, 15)),
		// Survived well past the cliff.
		member("stayer@x.com", 100, ts(2025, time.January, 1)),
	}

	summary := BuildTenureSummary(subs, models.CategoryMember, now, 24)
	if summary.Month4RenewalPct != 50.0 {
		t.Errorf("month-4 renewal = %v, expected 50.0 (1 of 2 past the cliff)", summary.Month4RenewalPct)
	}
	if summary.AvgTenurePastCliff != 12.0 {
		t.Errorf("avg tenure past cliff = %v, expected 12.0", summary.AvgTenurePastCliff)
	}
}
