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

func TestBuildChurnReportReconstructsMonths(t *testing.T) {
	now := ts(2026, time.August, 15)
	subs := []models.Subscription{
		member("a@x.com", 200, ts(2025, time.January, 1)),
		canceled(member("b@x.com", 100, ts(2025, time.January, 1)), ts(2026, time.June, 10)),
	}

	report := BuildChurnReport(subs, models.CategoryMember, now, 2)
	if report == nil {
		t.Fatal("expected a report")
	}
	if len(report.Months) != 3 {
		t.Fatalf("expected 3 months (2 completed + partial), got %d", len(report.Months))
	}

	june := report.Months[0]
	if june.Label != "2026-06" {
		t.Fatalf("first month = %s, expected 2026-06", june.Label)
	}
	if june.ActiveAtStart != 2 {
		t.Errorf("june active = %d, expected 2 (cancel mid-month still active at start)", june.ActiveAtStart)
	}
	if june.Canceled != 1 {
		t.Errorf("june canceled = %d, expected 1", june.Canceled)
	}
	if june.UserChurnPct != 50.0 {
		t.Errorf("june user churn = %v, expected 50.0", june.UserChurnPct)
	}
	if june.MRRChurnPct != 33.3 {
		t.Errorf("june MRR churn = %v, expected 33.3", june.MRRChurnPct)
	}

	july := report.Months[1]
	if july.ActiveAtStart != 1 {
		t.Errorf("july active = %d, expected 1 after the june cancel", july.ActiveAtStart)
	}
	if july.Canceled != 0 {
		t.Errorf("july canceled = %d, expected 0", july.Canceled)
	}

	if !report.Months[2].Partial {
		t.Error("current month must be marked partial")
	}
	// Trailing averages over completed months only: (50 + 0) / 2.
	if report.AvgUserChurnPct != 25.0 {
		t.Errorf("avg user churn = %v, expected 25.0", report.AvgUserChurnPct)
	}
}

func TestChurnRateBounds(t *testing.T) {
	now := ts(2026, time.August, 15)
	// Person with two concurrent plans canceled the same month; rates must
	// stay within [0, 100] and headcount must dedup the person.
	subs := []models.Subscription{
		canceled(member("dup@x.com", 100, ts(2026, time.May, 1)), ts(2026, time.June, 5)),
		canceled(member("dup@x.com", 150, ts(2026, time.May, 2)), ts(2026, time.June, 6)),
	}

	report := BuildChurnReport(subs, models.CategoryMember, now, 3)
	for _, m := range report.Months {
		if m.UserChurnPct < 0 || m.UserChurnPct > 100 {
			t.Errorf("%s user churn %v out of bounds", m.Label, m.UserChurnPct)
		}
		if m.MRRChurnPct < 0 || m.MRRChurnPct > 100 {
			t.Errorf("%s MRR churn %v out of bounds", m.Label, m.MRRChurnPct)
		}
		if m.ActiveAtStart > 1 {
			t.Errorf("%s active = %d, expected headcount dedup to 1 person", m.Label, m.ActiveAtStart)
		}
	}
}

func TestEligibleChurnExcludesAnnualCancel(t *testing.T) {
	now := ts(2026, time.August, 15)

	annual := member("annual@x.com", 200, ts(2025, time.September, 1))
	annual.Cadence = models.CadenceAnnual
	annual.PlanName = "Annual Membership"

	subs := []models.Subscription{
		member("p1@x.com", 150, ts(2025, time.January, 1)),
		canceled(member("p2@x.com", 150, ts(2025, time.January, 1)), ts(2026, time.June, 20)),
		canceled(annual, ts(2026, time.June, 5)),
	}

	report := BuildChurnReport(subs, models.CategoryMember, now, 2)
	if len(report.ByCadence) != 3 {
		t.Fatalf("expected cadence split for 3 months, got %d", len(report.ByCadence))
	}

	june := report.ByCadence[0]
	if june.AnnualCanceled != 1 || june.PeriodicCanceled != 1 {
		t.Fatalf("june cancels annual=%d periodic=%d, expected 1 and 1",
			june.AnnualCanceled, june.PeriodicCanceled)
	}
	// The mid-term annual cancel must not leak into the eligible rate:
	// 1 periodic cancel over 2 periodic active.
	if june.EligibleChurnPct != 50.0 {
		t.Errorf("eligible churn = %v, expected 50.0", june.EligibleChurnPct)
	}
	if june.AnnualActive != 1 {
		t.Errorf("annual active = %d, expected 1", june.AnnualActive)
	}
}

func TestChurnReportNilForEmptyCategory(t *testing.T) {
	subs := []models.Subscription{member("a@x.com", 100, ts(2026, time.January, 1))}
	if report := BuildChurnReport(subs, models.CategorySky3, ts(2026, time.August, 1), 6); report != nil {
		t.Error("expected nil report for a category with no events")
	}
}

func TestChurnAtRiskSnapshot(t *testing.T) {
	pastDue := member("risk@x.com", 100, ts(2026, time.January, 1))
	pastDue.State = models.StatePastDue
	subs := []models.Subscription{
		member("ok@x.com", 100, ts(2026, time.January, 1)),
		pastDue,
	}
	report := BuildChurnReport(subs, models.CategoryMember, ts(2026, time.August, 1), 2)
	if report.AtRisk != 1 {
		t.Errorf("at risk = %d, expected 1", report.AtRisk)
	}
}
